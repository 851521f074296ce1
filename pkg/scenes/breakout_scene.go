package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/decker502/tennisbreak/pkg/systems"
	"github.com/decker502/tennisbreak/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var colorBackground = color.RGBA{R: 0x09, G: 0x09, B: 0x0b, A: 0xff}

// BreakoutScene 唯一的游戏场景：竞技场、HUD 以及开场/结算界面
//
// 实现 game.Scene、game.Resizable 和 game.Saveable。
type BreakoutScene struct {
	sim      *systems.Simulation
	renderer *systems.RenderSystem
	hud      *systems.HUDRenderSystem
	audio    *game.AudioManager
	input    *utils.InputTracker

	// debug 显示 FPS/TPS
	debug bool
}

// NewBreakoutScene 创建游戏场景
//
// 参数:
//   - sim: 模拟（cue 接收者应为同一个 audio）
//   - renderer, hud: 渲染系统，测试中可为 nil
//   - audio: 音效管理器，可为 nil
//   - debug: 是否绘制调试信息
func NewBreakoutScene(sim *systems.Simulation, renderer *systems.RenderSystem, hud *systems.HUDRenderSystem,
	audio *game.AudioManager, debug bool) *BreakoutScene {
	return &BreakoutScene{
		sim:      sim,
		renderer: renderer,
		hud:      hud,
		audio:    audio,
		input:    utils.NewInputTracker(),
		debug:    debug,
	}
}

// Update 读取输入并推进一帧
func (s *BreakoutScene) Update(deltaTime float64) {
	s.applyInput(s.input.Poll())
}

// applyInput 处理一帧输入后调用 Step
//
// 开场和结算界面上的动作键开始新对局；进行中的动作键发射等待中的球。
// 同一次按键不会既开始对局又发射。
func (s *BreakoutScene) applyInput(in utils.InputFrame) {
	if in.ToggleMute && s.audio != nil {
		s.audio.SetMuted(!s.audio.Muted())
		log.Printf("[BreakoutScene] Muted: %v", s.audio.Muted())
	}

	switch s.sim.Phase() {
	case game.PhaseAwaitingStart, game.PhaseGameOver:
		if in.Action {
			if err := s.sim.Start(); err != nil {
				log.Printf("[BreakoutScene] Warning: Failed to start: %v", err)
			}
		}
		return
	case game.PhasePlaying:
		if in.PointerMoved {
			s.sim.SetPointerX(float64(in.PointerX))
		}
		if in.Action {
			s.sim.Launch()
		}
	}

	s.sim.Step()
}

// Draw 绘制竞技场和 HUD
func (s *BreakoutScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	snap := s.sim.Snapshot()
	if s.renderer != nil {
		s.renderer.Draw(screen, &snap, s.sim.World().Viewport)
	}
	if s.hud != nil {
		s.hud.Draw(screen, &snap)
	}

	if s.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
			screen.Bounds().Dx()-160, screen.Bounds().Dy()-20)
	}
}

// Resize 实现 game.Resizable
func (s *BreakoutScene) Resize(physicalWidth, physicalHeight int) {
	s.sim.Resize(physicalWidth, physicalHeight)
}

// SaveOnExit 实现 game.Saveable：退出时保存最高分
func (s *BreakoutScene) SaveOnExit() bool {
	if err := s.sim.SaveHighScore(); err != nil {
		log.Printf("[BreakoutScene] Warning: Failed to save high score: %v", err)
		return false
	}
	return true
}
