// verify_simulation 无窗口运行模拟并打印统计
//
// 自动驾驶把球拍对准最低的下落球，用于长时间验证模拟的不变量。
//
// 使用方法:
//
//	go run ./cmd/verify_simulation -frames 36000 -seed 7
//	go run ./cmd/verify_simulation -tps 60 -verbose   # 按真实速度运行，Ctrl+C 中止
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/decker502/tennisbreak/pkg/components"
	"github.com/decker502/tennisbreak/pkg/config"
	"github.com/decker502/tennisbreak/pkg/ecs"
	"github.com/decker502/tennisbreak/pkg/embedded"
	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/decker502/tennisbreak/pkg/systems"
)

var (
	frames   = flag.Int("frames", 18000, "运行的帧数")
	seed     = flag.Uint64("seed", 1, "随机种子")
	tps      = flag.Int("tps", 0, "每秒帧数，0 表示不限速")
	restarts = flag.Bool("restart", true, "游戏结束后自动重新开始")
	dataRoot = flag.String("root", ".", "包含 data/ 目录的项目根目录")
	verbose  = flag.Bool("verbose", false, "显示详细日志")
)

// cueCounter 统计各类音效提示的次数
type cueCounter map[game.CueKind]int

func (c cueCounter) Emit(cue game.Cue) {
	c[cue.Kind]++
}

// report 运行结果
type report struct {
	frames    int
	games     int
	bestStage int
	bestScore int
	maxBalls  int
	stages    int
	lastStage int
	cues      cueCounter
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim, cues, err := newSimulation(*seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	r, err := run(ctx, sim, cues, *frames, *tps, *restarts)
	printReport(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	fmt.Println("✅ all invariants held")
}

func newSimulation(s uint64) (*systems.Simulation, cueCounter, error) {
	embedded.Init(os.DirFS(*dataRoot))
	data, err := embedded.ReadFile(config.BreakoutConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := config.ParseBreakoutConfig(data)
	if err != nil {
		return nil, nil, err
	}
	fsys, err := embedded.FS()
	if err != nil {
		return nil, nil, err
	}
	library, err := config.LoadTemplateLibrary(fsys, config.ShapeTemplatesDir)
	if err != nil {
		return nil, nil, err
	}

	cues := cueCounter{}
	sim, err := systems.NewSimulation(cfg, library, rand.New(rand.NewPCG(s, s+1)), cues, nil)
	if err != nil {
		return nil, nil, err
	}
	// 物理坐标与逻辑坐标一致，自动驾驶可以直接使用逻辑 X
	sim.Resize(int(cfg.Arena.Width), int(cfg.Arena.Height))
	return sim, cues, nil
}

// run 推进模拟，tps > 0 时由 time.Ticker 驱动
func run(ctx context.Context, sim *systems.Simulation, cues cueCounter, total, tps int, restart bool) (report, error) {
	r := report{cues: cues}

	var tick <-chan time.Time
	if tps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(tps))
		defer ticker.Stop()
		tick = ticker.C
	}

	for r.frames < total {
		if tick != nil {
			select {
			case <-ctx.Done():
				return r, nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return r, nil
		}

		switch sim.Phase() {
		case game.PhaseAwaitingStart:
			if err := sim.Start(); err != nil {
				return r, err
			}
			r.games++
		case game.PhaseGameOver:
			if !restart {
				return r, nil
			}
			if err := sim.Start(); err != nil {
				return r, err
			}
			r.games++
		}

		steer(sim)
		sim.Launch()
		sim.Step()
		r.frames++

		if err := checkInvariants(sim, &r); err != nil {
			return r, fmt.Errorf("frame %d: %w", r.frames, err)
		}
	}
	return r, nil
}

// steer 把球拍中心移到最低的下落球下方，没有下落球时对准任意活动球
func steer(sim *systems.Simulation) {
	em := sim.World().EntityManager
	targetX, bestY := -1.0, -1.0
	for _, id := range ecs.GetEntitiesWith3[*components.BallComponent, *components.PositionComponent, *components.VelocityComponent](em) {
		ball, _ := ecs.GetComponent[*components.BallComponent](em, id)
		if !ball.Active || ball.Resting {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		y := pos.Y
		if vel.VY < 0 {
			y -= sim.World().Config.Arena.Height
		}
		if y > bestY || targetX < 0 {
			targetX, bestY = pos.X, y
		}
	}
	if targetX >= 0 {
		sim.SetPointerX(targetX)
	}
}

func checkInvariants(sim *systems.Simulation, r *report) error {
	w := sim.World()
	s := w.Session
	if s.Lives < 0 {
		return fmt.Errorf("lives went negative: %d", s.Lives)
	}
	if s.HighScore < s.Score {
		return fmt.Errorf("high score %d below score %d", s.HighScore, s.Score)
	}

	balls := systems.ActiveBallCount(w.EntityManager)
	if balls > w.Config.Ball.MaxBalls {
		return fmt.Errorf("%d balls exceed the cap %d", balls, w.Config.Ball.MaxBalls)
	}
	width := w.PaddleWidth()
	if w.PaddleX < w.Config.Arena.WallInset-1e-9 || w.PaddleX+width > w.Config.Arena.Width-w.Config.Arena.WallInset+1e-9 {
		return fmt.Errorf("paddle outside the walls: x=%.2f width=%.2f", w.PaddleX, width)
	}

	if s.Phase == game.PhasePlaying && s.Stage != r.lastStage {
		r.lastStage = s.Stage
		r.stages++
		if err := checkStageRoundTrip(w); err != nil {
			return err
		}
	}

	if balls > r.maxBalls {
		r.maxBalls = balls
	}
	if s.Stage > r.bestStage {
		r.bestStage = s.Stage
	}
	if s.Score > r.bestScore {
		r.bestScore = s.Score
	}
	return nil
}

// checkStageRoundTrip 新关卡的砖块布局经过 gob 编码、解码后必须保持一致
func checkStageRoundTrip(w *game.World) error {
	serializer := game.NewStageSerializer()
	want := serializer.Collect(w.EntityManager, w.Session.Stage, w.TemplateID)

	var buf bytes.Buffer
	if err := serializer.Encode(&buf, w.EntityManager, w.Session.Stage, w.TemplateID); err != nil {
		return err
	}
	got, err := serializer.Decode(&buf)
	if err != nil {
		return err
	}
	if got.ActiveCount() != want.ActiveCount() || got.TotalHitPoints() != want.TotalHitPoints() {
		return fmt.Errorf("stage %d round-trip mismatch: active %d/%d hp %d/%d", w.Session.Stage,
			got.ActiveCount(), want.ActiveCount(), got.TotalHitPoints(), want.TotalHitPoints())
	}
	return nil
}

func printReport(r report) {
	fmt.Println("=== Simulation Report ===")
	fmt.Printf("Frames:      %d\n", r.frames)
	fmt.Printf("Games:       %d\n", r.games)
	fmt.Printf("Best stage:  %d\n", r.bestStage)
	fmt.Printf("Best score:  %d\n", r.bestScore)
	fmt.Printf("Peak balls:  %d\n", r.maxBalls)
	fmt.Printf("Stages seen: %d (gob round-trip checked)\n", r.stages)

	kinds := make([]game.CueKind, 0, len(r.cues))
	for k := range r.cues {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	fmt.Println("Cues:")
	for _, k := range kinds {
		fmt.Printf("  %-14s %d\n", k, r.cues[k])
	}
}
