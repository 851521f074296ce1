package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/tennisbreak/pkg/game"
	"github.com/decker502/tennisbreak/pkg/utils"
)

var (
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(0x09, 0x09, 0x0b))
	styleCombo   = styleStatus.Foreground(tcell.NewRGBColor(0xec, 0x48, 0x99)).Bold(true)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xa3, 0xe6, 0x35)).Bold(true)
	styleDanger  = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0xdc, 0x26, 0x26)).Bold(true)
	styleOverlay = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// statusLine 顶部状态栏文本
func statusLine(hud game.HUD) string {
	line := fmt.Sprintf(" LV %02d  SCORE %06d  HI %06d  LIVES %d  SPEED %d m/s", hud.Stage, hud.Score, hud.HighScore, hud.Lives, hud.Speed)
	for _, item := range hud.Items {
		line += "  " + item.Label
	}
	return line
}

func drawStatusLine(screen tcell.Screen, width int, hud game.HUD) {
	for x := 0; x < width; x++ {
		screen.SetContent(x, 0, ' ', nil, styleStatus)
	}
	drawText(screen, 0, 0, statusLine(hud), styleStatus)
	if hud.ShowCombo() {
		combo := fmt.Sprintf("COMBO_X%d ", hud.Combo)
		drawText(screen, width-len(combo), 0, combo, styleCombo)
	}
}

// drawOverlay 开场界面和结算界面
func drawOverlay(screen tcell.Screen, width, height int, hud game.HUD) {
	mid := height / 2
	switch hud.Phase {
	case game.PhaseAwaitingStart:
		drawCentered(screen, width, mid-2, "T E N N I S", styleTitle)
		drawCentered(screen, width, mid, "PIXEL_ART_BREAKOUT", styleOverlay)
		drawCentered(screen, width, mid+2, "[ SPACE / ENTER ]  SYSTEM_BOOT", styleOverlay)
	case game.PhaseGameOver:
		drawCentered(screen, width, mid-2, "CONNECTION_TERMINATED", styleDanger)
		drawCentered(screen, width, mid, fmt.Sprintf("SCORE %d   HIGH %d", hud.Score, hud.HighScore), styleOverlay)
		drawCentered(screen, width, mid+2, "[ SPACE ]  SYSTEM_REBOOT    [ Q ]  EXIT", styleOverlay)
	}
}

// drawPickupLabels 在道具所在的字符格上写出标签
func drawPickupLabels(screen tcell.Screen, snap *game.Snapshot, vp utils.Viewport, rowOffset int) {
	for _, p := range snap.Pickups {
		px, py := vp.ToPhysical(p.Rect.X+p.Rect.W/2, p.Rect.Y+p.Rect.H/2)
		style := tcell.StyleDefault.Foreground(toTcell(colorPickupText)).Background(toTcell(p.Color))
		label := p.Label
		drawText(screen, int(px)-len(label)/2, int(py)/2+rowOffset, label, style)
	}
}

func drawCentered(screen tcell.Screen, width, y int, s string, style tcell.Style) {
	drawText(screen, (width-len(s))/2, y, s, style)
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
