package utils

import "github.com/hajimehoshi/ebiten/v2"

// Viewport 逻辑竞技场到物理绘制表面的映射
//
// 模拟始终在固定的逻辑坐标系中计算；绘制时按等比缩放（letterbox）居中显示：
//
//	physicalX = OffsetX + logicalX * Scale
//	physicalY = OffsetY + logicalY * Scale
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64

	// ArenaWidth/ArenaHeight 逻辑竞技场尺寸，ToLogical 在退化情况下使用
	ArenaWidth  float64
	ArenaHeight float64
}

// ComputeScale 根据物理表面尺寸计算缩放和居中偏移
//
// scale = min(physicalWidth/arenaWidth, physicalHeight/arenaHeight)
//
// 纯函数：相同输入总是得到相同结果。物理尺寸非正时返回 Scale = 0。
func ComputeScale(physicalWidth, physicalHeight, arenaWidth, arenaHeight float64) Viewport {
	vp := Viewport{ArenaWidth: arenaWidth, ArenaHeight: arenaHeight}
	if physicalWidth <= 0 || physicalHeight <= 0 || arenaWidth <= 0 || arenaHeight <= 0 {
		return vp
	}

	scale := physicalWidth / arenaWidth
	if sy := physicalHeight / arenaHeight; sy < scale {
		scale = sy
	}

	vp.Scale = scale
	vp.OffsetX = (physicalWidth - arenaWidth*scale) / 2
	vp.OffsetY = (physicalHeight - arenaHeight*scale) / 2
	return vp
}

// ToLogical 物理坐标 → 逻辑坐标（用于输入处理）
// Scale 为 0（窗口尚未布局）时返回竞技场中心
func (v Viewport) ToLogical(physicalX, physicalY float64) (float64, float64) {
	if v.Scale == 0 {
		return v.ArenaWidth / 2, v.ArenaHeight / 2
	}
	return (physicalX - v.OffsetX) / v.Scale, (physicalY - v.OffsetY) / v.Scale
}

// ToPhysical 逻辑坐标 → 物理坐标
func (v Viewport) ToPhysical(logicalX, logicalY float64) (float64, float64) {
	return v.OffsetX + logicalX*v.Scale, v.OffsetY + logicalY*v.Scale
}

// GeoM 返回把逻辑竞技场图像绘制到物理表面所需的变换
func (v Viewport) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Scale(v.Scale, v.Scale)
	g.Translate(v.OffsetX, v.OffsetY)
	return g
}
