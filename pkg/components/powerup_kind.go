package components

import "image/color"

// PowerUpKind 道具种类
type PowerUpKind int

const (
	// PowerUpWiden 加长球拍（计时）
	PowerUpWiden PowerUpKind = iota
	// PowerUpNarrow 缩短球拍（计时）
	PowerUpNarrow
	// PowerUpMultiBall 球拍击球时分裂（计时）
	PowerUpMultiBall
	// PowerUpPassThrough 穿透：击碎砖块但不反弹（计时）
	PowerUpPassThrough
	// PowerUpFloorShield 底部护盾（计时）
	PowerUpFloorShield
	// PowerUpSlowTime 球速降低，持续到被覆盖或进入新关卡
	PowerUpSlowTime
	// PowerUpSpeedTime 球速提高，持续到被覆盖或进入新关卡
	PowerUpSpeedTime
	// PowerUpExtraLife 立即增加一条命
	PowerUpExtraLife

	powerUpKindCount
)

// AllPowerUpKinds 返回所有道具种类
func AllPowerUpKinds() []PowerUpKind {
	kinds := make([]PowerUpKind, 0, powerUpKindCount)
	for k := PowerUpKind(0); k < powerUpKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// IsTimed 该道具是否由计时器驱动
func (k PowerUpKind) IsTimed() bool {
	switch k {
	case PowerUpWiden, PowerUpNarrow, PowerUpMultiBall, PowerUpPassThrough, PowerUpFloorShield:
		return true
	case PowerUpSlowTime, PowerUpSpeedTime, PowerUpExtraLife:
		return false
	}
	return false
}

// Label 道具胶囊上显示的文字
func (k PowerUpKind) Label() string {
	switch k {
	case PowerUpWiden:
		return "LONG"
	case PowerUpNarrow:
		return "SHORT"
	case PowerUpMultiBall:
		return "GUN"
	case PowerUpPassThrough:
		return "IRON"
	case PowerUpFloorShield:
		return "WALL"
	case PowerUpSlowTime:
		return "SLOW"
	case PowerUpSpeedTime:
		return "FAST"
	case PowerUpExtraLife:
		return "+LIFE"
	}
	panic("components: unknown PowerUpKind")
}

// Color 道具在物品记录中的标识颜色
func (k PowerUpKind) Color() color.RGBA {
	switch k {
	case PowerUpWiden:
		return color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	case PowerUpNarrow:
		return color.RGBA{R: 0xef, G: 0x44, B: 0x44, A: 0xff}
	case PowerUpMultiBall:
		return color.RGBA{R: 0xea, G: 0xb3, B: 0x08, A: 0xff}
	case PowerUpPassThrough:
		return color.RGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff}
	case PowerUpFloorShield:
		return color.RGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	case PowerUpSlowTime:
		return color.RGBA{R: 0xa8, G: 0x55, B: 0xf7, A: 0xff}
	case PowerUpSpeedTime:
		return color.RGBA{R: 0xf9, G: 0x73, B: 0x16, A: 0xff}
	case PowerUpExtraLife:
		return color.RGBA{R: 0xec, G: 0x48, B: 0x99, A: 0xff}
	}
	panic("components: unknown PowerUpKind")
}

// String 实现 fmt.Stringer
func (k PowerUpKind) String() string {
	if k < 0 || k >= powerUpKindCount {
		return "unknown"
	}
	return k.Label()
}
