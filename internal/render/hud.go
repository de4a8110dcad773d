package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawHUD renders a separator and up to HUDRows-1 lines below the map
// viewport, then shows the frame.
func (r *Renderer) DrawHUD(lines []string) {
	hudY := r.camera.ViewHeight
	r.drawHLine(hudY, tcell.ColorGray)

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, line := range lines {
		if i >= HUDRows-1 {
			break
		}
		r.drawText(0, hudY+1+i, line, style)
	}

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
