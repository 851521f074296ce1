package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., the arena with its intro and game-over overlays).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Resizable 是一个可选接口，场景需要知道物理绘制表面尺寸时实现
//
// 每次 ebiten 调用 Layout 时都会转发，场景据此重新计算逻辑-物理映射。
type Resizable interface {
	Resize(physicalWidth, physicalHeight int)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 宿主通过 context 取消运行
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}
