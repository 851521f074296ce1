package main

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/decker502/tennisbreak/pkg/utils"
)

// halfBlock 上半格字符：前景色是上像素，背景色是下像素
const halfBlock = '▀'

var (
	colorBackground = color.RGBA{R: 0x09, G: 0x09, B: 0x0b, A: 0xff}
	colorArena      = color.RGBA{A: 0xff}
	colorWall       = color.RGBA{R: 0x3a, G: 0x52, B: 0x14, A: 0xff}
	colorShieldLine = color.RGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	colorPickupText = color.RGBA{A: 0xff}
)

// canvas 终端像素缓冲，每个字符格对应上下两个像素
type canvas struct {
	width, height int
	pixels        []color.RGBA
}

func newCanvas(width, height int) *canvas {
	if width < 1 {
		width = 1
	}
	if height < 2 {
		height = 2
	}
	return &canvas{width: width, height: height, pixels: make([]color.RGBA, width*height)}
}

func (c *canvas) clear() {
	for i := range c.pixels {
		c.pixels[i] = colorBackground
	}
}

func (c *canvas) at(x, y int) color.RGBA {
	return c.pixels[y*c.width+x]
}

// blend 把颜色按 alpha 叠加到现有像素上
func (c *canvas) blend(x, y int, clr color.RGBA, alpha float64) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	if alpha >= 1 {
		c.pixels[y*c.width+x] = clr
		return
	}
	if alpha <= 0 {
		return
	}
	dst := c.pixels[y*c.width+x]
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*alpha + float64(b)*(1-alpha))
	}
	c.pixels[y*c.width+x] = color.RGBA{R: mix(clr.R, dst.R), G: mix(clr.G, dst.G), B: mix(clr.B, dst.B), A: 0xff}
}

// fillRect 以逻辑坐标填充矩形，至少覆盖一个像素
func (c *canvas) fillRect(vp utils.Viewport, r game.Rect, clr color.RGBA, alpha float64) {
	x0, y0 := vp.ToPhysical(r.X, r.Y)
	x1, y1 := vp.ToPhysical(r.X+r.W, r.Y+r.H)
	ix0, iy0 := int(math.Floor(x0)), int(math.Floor(y0))
	ix1, iy1 := int(math.Ceil(x1)), int(math.Ceil(y1))
	if ix1 <= ix0 {
		ix1 = ix0 + 1
	}
	if iy1 <= iy0 {
		iy1 = iy0 + 1
	}
	for y := iy0; y < iy1; y++ {
		for x := ix0; x < ix1; x++ {
			c.blend(x, y, clr, alpha)
		}
	}
}

// fillCircle 以逻辑坐标填充圆，半径不足一个像素时画一个点
func (c *canvas) fillCircle(vp utils.Viewport, cx, cy, radius float64, clr color.RGBA, alpha float64) {
	px, py := vp.ToPhysical(cx, cy)
	pr := radius * vp.Scale
	if pr < 0.75 {
		c.blend(int(px), int(py), clr, alpha)
		return
	}
	for y := int(math.Floor(py - pr)); y <= int(math.Ceil(py+pr)); y++ {
		for x := int(math.Floor(px - pr)); x <= int(math.Ceil(px+pr)); x++ {
			dx, dy := float64(x)+0.5-px, float64(y)+0.5-py
			if dx*dx+dy*dy <= pr*pr {
				c.blend(x, y, clr, alpha)
			}
		}
	}
}

// paint 把快照画到像素缓冲
func (c *canvas) paint(snap *game.Snapshot, vp utils.Viewport) {
	if vp.Scale == 0 {
		return
	}

	c.fillRect(vp, game.Rect{W: snap.ArenaWidth, H: snap.ArenaHeight}, colorArena, 1)
	for _, w := range snap.Walls {
		c.fillRect(vp, w, colorWall, 1)
	}
	if snap.ShieldY > 0 {
		c.fillRect(vp, game.Rect{Y: snap.ShieldY, W: snap.ArenaWidth, H: 6}, colorShieldLine, 1)
	}
	for _, b := range snap.Bricks {
		c.fillRect(vp, b.Rect, b.Color, 1)
	}
	for _, p := range snap.Particles {
		c.fillRect(vp, game.Rect{X: p.X, Y: p.Y, W: p.Size, H: p.Size}, p.Color, p.Alpha)
	}
	for _, p := range snap.Pickups {
		c.fillRect(vp, p.Rect, p.Color, 1)
	}
	for _, b := range snap.Balls {
		n := len(b.Trail)
		for i, pt := range b.Trail {
			c.fillCircle(vp, pt.X, pt.Y, b.Radius*float64(i+1)/float64(n+1), b.Tint, float64(i+1)/float64(n+1)*0.4)
		}
		c.fillCircle(vp, b.X, b.Y, b.Radius, b.Tint, 1)
	}
	c.fillRect(vp, snap.Paddle.Rect, snap.Paddle.Tint, 1)
}

// blit 输出到终端，rowOffset 为画布上方保留的行数
func (c *canvas) blit(screen tcell.Screen, rowOffset int) {
	for row := 0; row*2+1 < c.height; row++ {
		for x := 0; x < c.width; x++ {
			top := c.at(x, row*2)
			bottom := c.at(x, row*2+1)
			style := tcell.StyleDefault.Foreground(toTcell(top)).Background(toTcell(bottom))
			screen.SetContent(x, row+rowOffset, halfBlock, nil, style)
		}
	}
}

func toTcell(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
