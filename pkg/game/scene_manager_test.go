package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled bool
	drawCalled   bool
	deltaTime    float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// mockResizableScene 记录 Resize 和 SaveOnExit 调用
type mockResizableScene struct {
	MockScene
	resizes   [][2]int
	saved     bool
	saveFails bool
}

func (m *mockResizableScene) Resize(w, h int) {
	m.resizes = append(m.resizes, [2]int{w, h})
}

func (m *mockResizableScene) SaveOnExit() bool {
	m.saved = true
	return !m.saveFails
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 1.0 / 60
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies that a manager without a scene is inert.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(1.0 / 60)
	sm.Resize(800, 600)
	if !sm.SaveOnExit() {
		t.Error("SaveOnExit without a scene should report success")
	}
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	screen := ebiten.NewImage(80, 60)
	sm.Draw(screen)

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

func TestSceneManagerResizeForwarding(t *testing.T) {
	sm := NewSceneManager()
	scene := &mockResizableScene{}
	sm.SwitchTo(scene)

	sm.Resize(1280, 720)
	sm.Resize(1280, 720) // 尺寸未变，不重复转发
	sm.Resize(640, 480)

	want := [][2]int{{1280, 720}, {640, 480}}
	if len(scene.resizes) != len(want) {
		t.Fatalf("Expected %d resizes, got %v", len(want), scene.resizes)
	}
	for i := range want {
		if scene.resizes[i] != want[i] {
			t.Errorf("Resize %d: expected %v, got %v", i, want[i], scene.resizes[i])
		}
	}
}

func TestSceneManagerSwitchReplaysLastSize(t *testing.T) {
	sm := NewSceneManager()
	sm.SwitchTo(&MockScene{})
	sm.Resize(1024, 768)

	scene := &mockResizableScene{}
	sm.SwitchTo(scene)

	if len(scene.resizes) != 1 || scene.resizes[0] != [2]int{1024, 768} {
		t.Errorf("Expected new scene to receive 1024x768, got %v", scene.resizes)
	}
}

func TestSceneManagerSaveOnExit(t *testing.T) {
	sm := NewSceneManager()
	scene := &mockResizableScene{saveFails: true}
	sm.SwitchTo(scene)

	if sm.SaveOnExit() {
		t.Error("Expected SaveOnExit to report the scene's failure")
	}
	if !scene.saved {
		t.Error("Scene's SaveOnExit was not called")
	}
}
