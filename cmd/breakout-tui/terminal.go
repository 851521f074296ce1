package main

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/decker502/tennisbreak/pkg/systems"
)

const (
	// frameInterval 60 TPS
	frameInterval = time.Second / 60
	// keyStep 方向键每次移动的终端列数
	keyStep = 2
	// hudRows 顶部状态栏占用的行数
	hudRows = 1
)

// terminalGame 终端宿主
//
// 事件由单独的 goroutine 读取后通过 channel 交给主循环，
// 模拟只在主循环的 goroutine 上推进。
type terminalGame struct {
	screen tcell.Screen
	sim    *systems.Simulation
	cues   *speakerCueSink
	canvas *canvas

	width, height int
	pointerX      int
	buttons       tcell.ButtonMask
}

func newTerminalGame(sim *systems.Simulation, cues *speakerCueSink) (*terminalGame, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	tg := &terminalGame{screen: screen, sim: sim, cues: cues}
	tg.resize()
	tg.pointerX = tg.width / 2
	return tg, nil
}

// resize 终端尺寸变化：每个字符格上下各算一个像素
func (tg *terminalGame) resize() {
	tg.width, tg.height = tg.screen.Size()
	rows := tg.height - hudRows
	if rows < 1 {
		rows = 1
	}
	tg.canvas = newCanvas(tg.width, rows*2)
	tg.sim.Resize(tg.canvas.width, tg.canvas.height)
}

func (tg *terminalGame) run(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := tg.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if !tg.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			tg.sim.Step()
			tg.draw()
		}
	}
}

// handleEvent 处理一个终端事件，返回 false 表示退出
func (tg *terminalGame) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			tg.movePointer(tg.pointerX - keyStep)
		case tcell.KeyRight:
			tg.movePointer(tg.pointerX + keyStep)
		case tcell.KeyEnter:
			tg.action()
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				tg.action()
			case 'm':
				tg.cues.toggleMute()
			}
		}

	case *tcell.EventMouse:
		x, _ := ev.Position()
		if x != tg.pointerX {
			tg.movePointer(x)
		}
		// 只在按下的那一刻触发，拖动时不重复
		pressed := ev.Buttons()&tcell.Button1 != 0 && tg.buttons&tcell.Button1 == 0
		tg.buttons = ev.Buttons()
		if pressed {
			tg.action()
		}

	case *tcell.EventResize:
		tg.resize()
		tg.screen.Sync()
	}
	return true
}

func (tg *terminalGame) movePointer(x int) {
	if x < 0 {
		x = 0
	} else if x >= tg.width {
		x = tg.width - 1
	}
	tg.pointerX = x
	if tg.sim.Phase() == game.PhasePlaying {
		tg.sim.SetPointerX(float64(x) + 0.5)
	}
}

// action 开始界面和结束界面中开始新对局，进行中发射
func (tg *terminalGame) action() {
	if err := applyAction(tg.sim); err != nil {
		log.Printf("[TUI] Warning: Failed to start: %v", err)
	}
}

// applyAction 按当前阶段执行动作键，返回开局失败的错误
func applyAction(sim *systems.Simulation) error {
	switch sim.Phase() {
	case game.PhaseAwaitingStart, game.PhaseGameOver:
		return sim.Start()
	case game.PhasePlaying:
		sim.Launch()
	}
	return nil
}

func (tg *terminalGame) draw() {
	snap := tg.sim.Snapshot()
	vp := tg.sim.World().Viewport

	tg.canvas.clear()
	tg.canvas.paint(&snap, vp)

	tg.screen.Clear()
	tg.canvas.blit(tg.screen, hudRows)
	drawPickupLabels(tg.screen, &snap, vp, hudRows)
	drawStatusLine(tg.screen, tg.width, snap.HUD)
	if snap.HUD.Phase != game.PhasePlaying {
		drawOverlay(tg.screen, tg.width, tg.height, snap.HUD)
	}
	tg.screen.Show()
}

func (tg *terminalGame) close() {
	tg.screen.Fini()
	tg.cues.close()
}
