package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene

	// 最近一次 Layout 的物理尺寸，切换场景时补发给新场景
	physicalWidth  int
	physicalHeight int
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene to the provided scene.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	if r, ok := scene.(Resizable); ok && sm.physicalWidth > 0 && sm.physicalHeight > 0 {
		r.Resize(sm.physicalWidth, sm.physicalHeight)
	}
}

// GetCurrentScene 返回当前活动的场景
//
// 返回：
//   - Scene: 当前场景，如果没有活动场景则返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Resize 记录物理尺寸并转发给当前场景
func (sm *SceneManager) Resize(physicalWidth, physicalHeight int) {
	if physicalWidth == sm.physicalWidth && physicalHeight == sm.physicalHeight {
		return
	}
	sm.physicalWidth = physicalWidth
	sm.physicalHeight = physicalHeight
	log.Printf("[SceneManager] Surface resized to %dx%d", physicalWidth, physicalHeight)

	if r, ok := sm.currentScene.(Resizable); ok {
		r.Resize(physicalWidth, physicalHeight)
	}
}

// SaveOnExit 让当前场景在退出前保存状态
// 当前场景不实现 Saveable 时视为无需保存
func (sm *SceneManager) SaveOnExit() bool {
	if s, ok := sm.currentScene.(Saveable); ok {
		return s.SaveOnExit()
	}
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
