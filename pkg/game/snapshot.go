package game

import (
	"image/color"

	"github.com/decker502/tennisbreak/pkg/components"
)

// Rect 逻辑坐标下的矩形
type Rect struct {
	X, Y, W, H float64
}

// BrickView 砖块渲染数据
type BrickView struct {
	Rect    Rect
	Color   color.RGBA
	Variant components.BrickVariant
}

// ParticleView 粒子渲染数据，Alpha 即剩余生命
type ParticleView struct {
	X, Y  float64
	Size  float64
	Alpha float64
	Color color.RGBA
}

// PickupView 道具渲染数据
type PickupView struct {
	Rect  Rect
	Kind  components.PowerUpKind
	Label string
	Color color.RGBA
}

// BallView 球渲染数据
type BallView struct {
	X, Y   float64
	Radius float64
	Trail  []components.Point
	Tint   color.RGBA
}

// PaddleView 球拍渲染数据
type PaddleView struct {
	Rect Rect
	Tint color.RGBA
}

// ItemView 物品记录中的一项
type ItemView struct {
	Label string
	Color color.RGBA
}

// HUD 状态栏数据
type HUD struct {
	Stage     int
	Score     int
	HighScore int
	Lives     int
	// Combo 连续击碎的砖块数（连击倍率减一），仅当大于 1 时显示
	Combo int
	// Speed 速度读数，round(最大球速 * 10)
	Speed   int
	Items   []ItemView
	Phase   Phase
	Shield  bool
	Resting bool
}

// Snapshot 一帧的只读渲染快照
//
// 所有切片都是复制出来的，渲染端可以随意持有，不会影响模拟。
type Snapshot struct {
	ArenaWidth  float64
	ArenaHeight float64
	Walls       []Rect
	// ShieldY 底部护盾的 Y 坐标，护盾未生效时为 0
	ShieldY   float64
	Bricks    []BrickView
	Particles []ParticleView
	Pickups   []PickupView
	Balls     []BallView
	Paddle    PaddleView
	Shake     float64
	HUD       HUD
}

// ShowCombo HUD 是否显示连击倍率
func (h HUD) ShowCombo() bool {
	return h.Combo > 1
}
