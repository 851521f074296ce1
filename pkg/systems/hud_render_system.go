package systems

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/tennisbreak/pkg/game"
)

// HUD 布局（物理像素）
const (
	hudPanelWidth   = 220
	hudPadding      = 18
	hudLabelSize    = 11
	hudValueSize    = 24
	hudOverlayTitle = 96
	hudOverlayBody  = 28
)

var (
	colorHUDPanel   = color.RGBA{R: 0x09, G: 0x09, B: 0x0b, A: 0xe6}
	colorHUDLabel   = color.RGBA{R: 0x71, G: 0x71, B: 0x7a, A: 0xff}
	colorHUDValue   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorHUDStage   = color.RGBA{R: 0x22, G: 0xd3, B: 0xee, A: 0xff}
	colorHUDSpeed   = color.RGBA{R: 0xea, G: 0xb3, B: 0x08, A: 0xff}
	colorHUDLife    = color.RGBA{R: 0x84, G: 0xcc, B: 0x16, A: 0xff}
	colorHUDCombo   = color.RGBA{R: 0xec, G: 0x48, B: 0x99, A: 0xff}
	colorHUDDanger  = color.RGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
	colorHUDAccent  = color.RGBA{R: 0xa3, G: 0xe6, B: 0x35, A: 0xff}
	colorHUDOverlay = color.RGBA{A: 0xf8}
)

// HUDRenderSystem 绘制状态栏、连击提示以及开场/结算界面
//
// 使用物理像素坐标直接绘制在屏幕上，不随竞技场缩放。
type HUDRenderSystem struct {
	labelFace   *text.GoTextFace
	valueFace   *text.GoTextFace
	titleFace   *text.GoTextFace
	overlayFace *text.GoTextFace
}

// NewHUDRenderSystem 创建 HUD 渲染系统
func NewHUDRenderSystem(fontSource *text.GoTextFaceSource) *HUDRenderSystem {
	return &HUDRenderSystem{
		labelFace:   &text.GoTextFace{Source: fontSource, Size: hudLabelSize},
		valueFace:   &text.GoTextFace{Source: fontSource, Size: hudValueSize},
		titleFace:   &text.GoTextFace{Source: fontSource, Size: hudOverlayTitle},
		overlayFace: &text.GoTextFace{Source: fontSource, Size: hudOverlayBody},
	}
}

// Draw 绘制 HUD
func (hs *HUDRenderSystem) Draw(screen *ebiten.Image, snap *game.Snapshot) {
	hud := snap.HUD
	switch hud.Phase {
	case game.PhaseAwaitingStart:
		hs.drawIntro(screen)
		return
	case game.PhasePlaying:
		hs.drawPanel(screen, hud)
		hs.drawCombo(screen, hud)
	case game.PhaseGameOver:
		hs.drawPanel(screen, hud)
		hs.drawGameOver(screen, hud)
	}
}

func (hs *HUDRenderSystem) drawPanel(screen *ebiten.Image, hud game.HUD) {
	h := screen.Bounds().Dy()
	vector.DrawFilledRect(screen, 0, 0, hudPanelWidth, float32(h), colorHUDPanel, false)

	y := float64(hudPadding)
	y = hs.drawField(screen, y, "SECTOR_LV", fmt.Sprintf("%02d", hud.Stage), colorHUDStage)

	hs.drawText(screen, "RACKETS_REMAINING", hs.labelFace, hudPadding, y, colorHUDLabel)
	y += hudLabelSize + 6
	for i := 0; i < hud.Lives; i++ {
		vector.DrawFilledRect(screen, float32(hudPadding+i*22), float32(y), 16, 22, colorHUDLife, false)
	}
	y += 22 + hudPadding

	y = hs.drawField(screen, y, "HIGH_SCORE", fmt.Sprintf("%d", hud.HighScore), colorHUDValue)
	y = hs.drawField(screen, y, "CURRENT_SCORE", fmt.Sprintf("%d", hud.Score), colorHUDValue)
	y = hs.drawField(screen, y, "CORE_VELOCITY", fmt.Sprintf("%d m/s", hud.Speed), colorHUDSpeed)

	hs.drawText(screen, "ITEM_LOG", hs.labelFace, hudPadding, y, colorHUDLabel)
	y += hudLabelSize + 10
	for _, item := range hud.Items {
		vector.DrawFilledCircle(screen, hudPadding+4, float32(y+7), 4, item.Color, true)
		hs.drawText(screen, item.Label, hs.labelFace, hudPadding+16, y+1, colorHUDValue)
		y += 22
	}
}

// drawField 标签加数值，返回下一行的 Y 坐标
func (hs *HUDRenderSystem) drawField(screen *ebiten.Image, y float64, label, value string, clr color.Color) float64 {
	hs.drawText(screen, label, hs.labelFace, hudPadding, y, colorHUDLabel)
	y += hudLabelSize + 4
	hs.drawText(screen, value, hs.valueFace, hudPadding, y, clr)
	return y + hudValueSize + hudPadding
}

func (hs *HUDRenderSystem) drawCombo(screen *ebiten.Image, hud game.HUD) {
	if !hud.ShowCombo() {
		return
	}
	w := float64(screen.Bounds().Dx())
	op := &text.DrawOptions{}
	op.GeoM.Translate(w-40, 40)
	op.PrimaryAlign = text.AlignEnd
	op.ColorScale.ScaleWithColor(colorHUDCombo)
	text.Draw(screen, fmt.Sprintf("COMBO_X%d", hud.Combo), hs.valueFace, op)
}

func (hs *HUDRenderSystem) drawIntro(screen *ebiten.Image) {
	hs.drawOverlay(screen)
	cx, cy := hs.center(screen)
	hs.drawCentered(screen, "TENNIS", hs.titleFace, cx, cy-120, colorHUDValue)
	hs.drawCentered(screen, "PIXEL_ART_BREAKOUT", hs.overlayFace, cx, cy, colorHUDStage)
	hs.drawCentered(screen, "[ CLICK / ENTER ]  SYSTEM_BOOT", hs.overlayFace, cx, cy+120, colorHUDAccent)
}

func (hs *HUDRenderSystem) drawGameOver(screen *ebiten.Image, hud game.HUD) {
	hs.drawOverlay(screen)
	cx, cy := hs.center(screen)
	hs.drawCentered(screen, "CONNECTION_TERMINATED", hs.overlayFace, cx, cy-120, colorHUDDanger)
	hs.drawCentered(screen, fmt.Sprintf("%d", hud.Score), hs.titleFace, cx, cy, colorHUDValue)
	hs.drawCentered(screen, "[ CLICK / ENTER ]  SYSTEM_REBOOT", hs.overlayFace, cx, cy+120, colorHUDAccent)
}

func (hs *HUDRenderSystem) drawOverlay(screen *ebiten.Image) {
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), colorHUDOverlay, false)
}

func (hs *HUDRenderSystem) center(screen *ebiten.Image) (float64, float64) {
	b := screen.Bounds()
	return float64(b.Dx()) / 2, float64(b.Dy()) / 2
}

func (hs *HUDRenderSystem) drawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

func (hs *HUDRenderSystem) drawCentered(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
