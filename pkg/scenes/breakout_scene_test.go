package scenes

import (
	"math/rand/v2"
	"testing"

	"github.com/decker502/tennisbreak/pkg/config"
	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/decker502/tennisbreak/pkg/systems"
	"github.com/decker502/tennisbreak/pkg/utils"
)

func newTestScene(t *testing.T) (*BreakoutScene, *game.CueRecorder, *game.MemoryHighScoreStore) {
	t.Helper()
	tpl, err := config.ParseShapeTemplate([]byte("id: line\npalette:\n  R: \"#ef4444\"\nrows:\n  - \"RRRR\"\n"))
	if err != nil {
		t.Fatalf("ParseShapeTemplate() error = %v", err)
	}
	lib, err := config.NewTemplateLibrary(tpl)
	if err != nil {
		t.Fatalf("NewTemplateLibrary() error = %v", err)
	}

	cues := &game.CueRecorder{}
	store := game.NewMemoryHighScoreStore()
	sim, err := systems.NewSimulation(config.DefaultBreakoutConfig(), lib, rand.New(rand.NewPCG(1, 1)), cues, store)
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}
	return NewBreakoutScene(sim, nil, nil, nil, false), cues, store
}

// 确保 BreakoutScene 实现了场景相关接口
var (
	_ game.Scene     = (*BreakoutScene)(nil)
	_ game.Resizable = (*BreakoutScene)(nil)
	_ game.Saveable  = (*BreakoutScene)(nil)
)

// TestBreakoutSceneActionStartsThenLaunches 第一次动作开始对局，第二次发射
func TestBreakoutSceneActionStartsThenLaunches(t *testing.T) {
	scene, cues, _ := newTestScene(t)

	scene.applyInput(utils.InputFrame{})
	if scene.sim.Phase() != game.PhaseAwaitingStart {
		t.Fatalf("Expected awaiting start without action, got %s", scene.sim.Phase())
	}

	scene.applyInput(utils.InputFrame{Action: true})
	if scene.sim.Phase() != game.PhasePlaying {
		t.Fatalf("Expected playing after action, got %s", scene.sim.Phase())
	}
	if cues.Count(game.CueLaunch) != 0 {
		t.Error("The start action must not also launch the ball")
	}

	scene.applyInput(utils.InputFrame{Action: true})
	if cues.Count(game.CueLaunch) != 1 {
		t.Errorf("Expected launch on second action, got %d", cues.Count(game.CueLaunch))
	}
}

// TestBreakoutScenePointerMovesPaddle 只有移动中的指针才移动球拍
func TestBreakoutScenePointerMovesPaddle(t *testing.T) {
	scene, _, _ := newTestScene(t)
	scene.Resize(1000, 750)
	scene.applyInput(utils.InputFrame{Action: true})
	w := scene.sim.World()

	scene.applyInput(utils.InputFrame{PointerX: 250, PointerMoved: true})
	if w.PaddleCenterX() != 500 {
		t.Errorf("Expected paddle center 500, got %v", w.PaddleCenterX())
	}

	scene.applyInput(utils.InputFrame{PointerX: 400, PointerMoved: false})
	if w.PaddleCenterX() != 500 {
		t.Errorf("A still pointer must not move the paddle, got %v", w.PaddleCenterX())
	}
}

func TestBreakoutSceneSaveOnExit(t *testing.T) {
	scene, _, store := newTestScene(t)
	scene.applyInput(utils.InputFrame{Action: true})
	scene.sim.World().Session.AddScore(900)

	if !scene.SaveOnExit() {
		t.Fatal("SaveOnExit() should succeed with a memory store")
	}
	if best, _ := store.Load(); best != 900 {
		t.Errorf("Expected stored high score 900, got %d", best)
	}
}
