package app

import (
	"context"
	"errors"
	"testing"

	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
)

// recordingScene 记录调用次数
type recordingScene struct {
	updates int
	saves   int
	width   int
	height  int
}

func (s *recordingScene) Update(deltaTime float64) { s.updates++ }
func (s *recordingScene) Draw(screen *ebiten.Image) {}
func (s *recordingScene) Resize(w, h int) { s.width, s.height = w, h }
func (s *recordingScene) SaveOnExit() bool { s.saves++; return true }

func newTestApp(ctx context.Context) (*App, *recordingScene) {
	scene := &recordingScene{}
	sm := game.NewSceneManager()
	sm.SwitchTo(scene)
	return &App{sceneManager: sm, ctx: ctx}, scene
}

// TestUpdateTerminatesOnCancel ctx 取消后 Update 返回 ebiten.Termination 并只保存一次
func TestUpdateTerminatesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a, scene := newTestApp(ctx)

	for i := 0; i < 3; i++ {
		if err := a.Update(); !errors.Is(err, ebiten.Termination) {
			t.Fatalf("Expected ebiten.Termination, got %v", err)
		}
	}
	if scene.updates != 0 {
		t.Errorf("Scene should not update after cancellation, got %d updates", scene.updates)
	}
	if scene.saves != 1 {
		t.Errorf("Expected exactly one save, got %d", scene.saves)
	}
}

// TestLayoutForwardsPhysicalSize Layout 返回物理尺寸并转发给场景
func TestLayoutForwardsPhysicalSize(t *testing.T) {
	a, scene := newTestApp(context.Background())

	w, h := a.Layout(1600, 900)
	if w != 1600 || h != 900 {
		t.Errorf("Layout() = %dx%d, want 1600x900", w, h)
	}
	if scene.width != 1600 || scene.height != 900 {
		t.Errorf("Scene saw %dx%d, want 1600x900", scene.width, scene.height)
	}
}

func TestOpenHighScoreStoreDefaultsToMemory(t *testing.T) {
	if _, ok := openHighScoreStore(false).(*game.MemoryHighScoreStore); !ok {
		t.Error("Expected a memory store when persistence is off")
	}
}

func TestLoadGameplayConfigMissingFile(t *testing.T) {
	if _, err := loadGameplayConfig("does/not/exist.yaml"); err == nil {
		t.Error("Expected an error for a missing config file")
	}
}
