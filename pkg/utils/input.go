// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputFrame 一帧的输入快照（物理像素坐标）
type InputFrame struct {
	// PointerX, PointerY 当前指针位置（触摸优先）
	PointerX, PointerY int
	// PointerMoved 指针位置与上一帧不同，或本帧第一次出现
	PointerMoved bool
	// Action 点击、触摸、空格或回车刚刚按下（开始、重开、发射）
	Action bool
	// ToggleMute M 键刚刚按下
	ToggleMute bool
}

// InputTracker 跟踪指针的帧间变化
//
// 球拍只跟随移动中的指针，指针静止时不会把球拍拉回原处。
type InputTracker struct {
	lastX, lastY int
	seen         bool
}

// NewInputTracker 创建输入跟踪器
func NewInputTracker() *InputTracker {
	return &InputTracker{}
}

// Poll 读取本帧输入（每帧调用一次）
func (t *InputTracker) Poll() InputFrame {
	x, y := GetPointerPosition()
	pressed, _, _ := IsPointerJustPressed()
	return InputFrame{
		PointerX:     x,
		PointerY:     y,
		PointerMoved: t.observe(x, y),
		Action: pressed ||
			inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
			inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		ToggleMute: inpututil.IsKeyJustPressed(ebiten.KeyM),
	}
}

// observe 记录指针位置，返回是否发生了移动
func (t *InputTracker) observe(x, y int) bool {
	moved := !t.seen || x != t.lastX || y != t.lastY
	t.lastX, t.lastY = x, y
	t.seen = true
	return moved
}

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}
