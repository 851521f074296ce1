package components

import "image/color"

// ParticleComponent 砖块碎裂时产生的碎屑粒子
//
// 位置和速度分别存放在 PositionComponent 和 VelocityComponent。
// Life 从 1 开始逐帧衰减，渲染时直接作为透明度使用。
type ParticleComponent struct {
	Life  float64
	Color color.RGBA
}
