// breakout-tui 在终端中运行同一套模拟
//
// 使用方法:
//
//	go run ./cmd/breakout-tui [-seed 42] [-mute] [-log tui.log]
//
// 操作: 鼠标或 ←/→ 移动球拍，空格/回车 开始或发射，m 静音，q/Esc 退出
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/decker502/tennisbreak/pkg/config"
	"github.com/decker502/tennisbreak/pkg/embedded"
	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/decker502/tennisbreak/pkg/systems"
)

var (
	seed             = flag.Uint64("seed", 0, "随机种子，0 表示使用当前时间")
	dataRoot         = flag.String("root", ".", "包含 data/ 目录的项目根目录")
	mute             = flag.Bool("mute", false, "关闭音效")
	logPath          = flag.String("log", "", "日志文件路径（终端被占用，默认不输出日志）")
	persistHighScore = flag.Bool("persist-highscore", false, "跨会话保存最高分")
)

func main() {
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	sim, err := newSimulation()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tg, err := newTerminalGame(sim.sim, sim.cues)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ failed to open terminal: %v\n", err)
		os.Exit(1)
	}
	tg.run(ctx)
	tg.close()

	if err := sim.sim.SaveHighScore(); err != nil {
		log.Printf("[TUI] Warning: Failed to save high score: %v", err)
	}
	fmt.Printf("score=%d high=%d stage=%d\n",
		sim.sim.World().Session.Score, sim.sim.World().Session.HighScore, sim.sim.World().Session.Stage)
}

type simulationBundle struct {
	sim  *systems.Simulation
	cues *speakerCueSink
}

// newSimulation 从磁盘上的 data/ 加载配置和模板并创建模拟
func newSimulation() (*simulationBundle, error) {
	embedded.Init(os.DirFS(*dataRoot))

	data, err := embedded.ReadFile(config.BreakoutConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := config.ParseBreakoutConfig(data)
	if err != nil {
		return nil, err
	}

	fsys, err := embedded.FS()
	if err != nil {
		return nil, err
	}
	library, err := config.LoadTemplateLibrary(fsys, config.ShapeTemplatesDir)
	if err != nil {
		return nil, err
	}

	cues := newSpeakerCueSink(cfg.Audio, *mute)

	var store game.HighScoreStore = game.NewMemoryHighScoreStore()
	if *persistHighScore {
		if gs, err := game.OpenGdataHighScoreStore("tennisbreak"); err != nil {
			log.Printf("[TUI] Warning: high score persistence unavailable: %v", err)
		} else {
			store = gs
		}
	}

	s := *seed
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	sim, err := systems.NewSimulation(cfg, library, rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)), cues, store)
	if err != nil {
		return nil, err
	}
	return &simulationBundle{sim: sim, cues: cues}, nil
}
