package components

import "image/color"

// BrickVariant 砖块种类
type BrickVariant int

const (
	// BrickNormal 普通砖块，一击即碎
	BrickNormal BrickVariant = iota
	// BrickReinforced 加固砖块，需要多次击打
	BrickReinforced
	// BrickBonus 奖励砖块，分数更高
	BrickBonus
)

// String 返回砖块种类名称
func (v BrickVariant) String() string {
	switch v {
	case BrickNormal:
		return "normal"
	case BrickReinforced:
		return "reinforced"
	case BrickBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// BasePoints 击碎该种类砖块的基础分（乘以连击倍率前）
func (v BrickVariant) BasePoints() int {
	switch v {
	case BrickReinforced:
		return 300
	case BrickBonus:
		return 500
	default:
		return 100
	}
}

// InitialHitPoints 该种类砖块的初始耐久
func (v BrickVariant) InitialHitPoints() int {
	if v == BrickReinforced {
		return 3
	}
	return 1
}

// BrickComponent 砖块（障碍物）数据
// 位置（左上角）存放在 PositionComponent
type BrickComponent struct {
	Width     float64
	Height    float64
	Variant   BrickVariant
	HitPoints int
	Active    bool

	// Color 当前显示颜色
	Color color.RGBA
	// OriginalColor 模板中的原始颜色，碎裂粒子使用此颜色
	OriginalColor color.RGBA
}
