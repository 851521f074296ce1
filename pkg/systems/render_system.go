package systems

import (
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/decker502/tennisbreak/pkg/utils"
)

var (
	colorArenaBackground = color.RGBA{A: 0xff}
	colorWallFill        = withAlpha(color.RGBA{R: 0xa3, G: 0xe6, B: 0x35, A: 0xff}, 0.1)
	colorWallStroke      = color.RGBA{R: 0xa3, G: 0xe6, B: 0x35, A: 0xff}
	colorBrickStroke     = color.RGBA{A: 0xff}
	colorPickupBody      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorPickupLabel     = color.RGBA{A: 0xff}
	colorShield          = color.RGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
)

// RenderSystem 把渲染快照绘制到屏幕
//
// 竞技场先以逻辑尺寸绘制到离屏图像，再通过 Viewport.GeoM() 等比缩放到物理表面。
// 只读取快照，从不访问 World。
type RenderSystem struct {
	arena      *ebiten.Image
	labelFace  *text.GoTextFace
	jitterRand *rand.Rand
}

// NewRenderSystem 创建渲染系统
//
// 参数:
//   - arenaWidth, arenaHeight: 逻辑竞技场尺寸
//   - fontSource: 道具标签字体
func NewRenderSystem(arenaWidth, arenaHeight int, fontSource *text.GoTextFaceSource) *RenderSystem {
	return &RenderSystem{
		arena:     ebiten.NewImage(arenaWidth, arenaHeight),
		labelFace: &text.GoTextFace{Source: fontSource, Size: 24},
		// 震动抖动只影响画面，使用独立的随机数源，不干扰模拟的可复现性
		jitterRand: rand.New(rand.NewPCG(0x5eed, 0x5eed)),
	}
}

// Draw 绘制一帧
func (rs *RenderSystem) Draw(screen *ebiten.Image, snap *game.Snapshot, vp utils.Viewport) {
	screen.Fill(colorArenaBackground)
	if vp.Scale == 0 {
		return
	}

	rs.arena.Fill(colorArenaBackground)
	rs.drawWalls(snap)
	rs.drawShield(snap)
	rs.drawBricks(snap)
	rs.drawParticles(snap)
	rs.drawPickups(snap)
	rs.drawBalls(snap)
	rs.drawPaddle(snap)

	op := &ebiten.DrawImageOptions{}
	if snap.Shake > 0 {
		op.GeoM.Translate((rs.jitterRand.Float64()-0.5)*snap.Shake, (rs.jitterRand.Float64()-0.5)*snap.Shake)
	}
	op.GeoM.Concat(vp.GeoM())
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(rs.arena, op)
}

func (rs *RenderSystem) drawWalls(snap *game.Snapshot) {
	for _, w := range snap.Walls {
		vector.DrawFilledRect(rs.arena, float32(w.X), float32(w.Y), float32(w.W), float32(w.H), colorWallFill, false)
		vector.StrokeRect(rs.arena, float32(w.X), float32(w.Y), float32(w.W), float32(w.H), 4, colorWallStroke, false)
	}
}

func (rs *RenderSystem) drawShield(snap *game.Snapshot) {
	if snap.ShieldY == 0 {
		return
	}
	y := float32(snap.ShieldY)
	vector.StrokeLine(rs.arena, 0, y, float32(snap.ArenaWidth), y, 6, colorShield, false)
}

func (rs *RenderSystem) drawBricks(snap *game.Snapshot) {
	for _, b := range snap.Bricks {
		r := b.Rect
		vector.DrawFilledRect(rs.arena, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), b.Color, false)
		vector.StrokeRect(rs.arena, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, colorBrickStroke, false)
	}
}

func (rs *RenderSystem) drawParticles(snap *game.Snapshot) {
	for _, p := range snap.Particles {
		vector.DrawFilledRect(rs.arena, float32(p.X), float32(p.Y), float32(p.Size), float32(p.Size), withAlpha(p.Color, p.Alpha), false)
	}
}

// drawPickups 道具画成带文字的胶囊
func (rs *RenderSystem) drawPickups(snap *game.Snapshot) {
	for _, p := range snap.Pickups {
		r := p.Rect
		radius := float32(r.H / 2)
		x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
		vector.DrawFilledRect(rs.arena, x+radius, y, w-2*radius, h, colorPickupBody, true)
		vector.DrawFilledCircle(rs.arena, x+radius, y+radius, radius, colorPickupBody, true)
		vector.DrawFilledCircle(rs.arena, x+w-radius, y+radius, radius, colorPickupBody, true)
		vector.DrawFilledCircle(rs.arena, x+w/2, y+h-4, 4, p.Color, true)

		op := &text.DrawOptions{}
		op.GeoM.Translate(r.X+r.W/2, r.Y+r.H/2)
		op.ColorScale.ScaleWithColor(colorPickupLabel)
		op.PrimaryAlign = text.AlignCenter
		op.SecondaryAlign = text.AlignCenter
		text.Draw(rs.arena, p.Label, rs.labelFace, op)
	}
}

// drawBalls 球和渐隐的拖尾
func (rs *RenderSystem) drawBalls(snap *game.Snapshot) {
	for _, b := range snap.Balls {
		n := len(b.Trail)
		for i, pt := range b.Trail {
			alpha := float64(i+1) / float64(n+1) * 0.4
			radius := float32(b.Radius) * float32(i+1) / float32(n+1)
			vector.DrawFilledCircle(rs.arena, float32(pt.X), float32(pt.Y), radius, withAlpha(b.Tint, alpha), true)
		}
		vector.DrawFilledCircle(rs.arena, float32(b.X), float32(b.Y), float32(b.Radius), b.Tint, true)
	}
}

func (rs *RenderSystem) drawPaddle(snap *game.Snapshot) {
	r := snap.Paddle.Rect
	vector.DrawFilledRect(rs.arena, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), snap.Paddle.Tint, false)
}

// withAlpha 按比例缩放颜色透明度（预乘 alpha）
func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
