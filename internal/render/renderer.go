package render

import (
	"shadowfov/fov"
	"shadowfov/internal/gamemap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of screen rows reserved below the map.
const HUDRows = 4

// Renderer draws a grid and its field of view onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen, theme Theme) *Renderer {
	r := &Renderer{screen: screen, camera: NewCamera(0, 0), theme: theme}
	r.Resize()
	return r
}

// Resize fits the map viewport to the current screen size.
func (r *Renderer) Resize() {
	w, h := r.screen.Size()
	r.camera.ViewWidth = w
	r.camera.ViewHeight = max(h-HUDRows, 0)
}

// ScreenToWorld converts a screen position to a map cell. ok is false for
// positions in the HUD or off the viewport.
func (r *Renderer) ScreenToWorld(sx, sy int) (p fov.Point, ok bool) {
	if !r.camera.InView(sx, sy) {
		return fov.Point{}, false
	}
	x, y := r.camera.ScreenToWorld(sx, sy)
	return fov.Point{X: x, Y: y}, true
}

// DrawGrid clears the screen and draws every visible or explored tile,
// then the cursor on top.
func (r *Renderer) DrawGrid(grid *gamemap.Grid, cursor fov.Point) {
	r.screen.Clear()
	r.camera.Follow(cursor.X, cursor.Y, grid.Width, grid.Height)

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			tile := grid.At(x, y)
			if !tile.Visible && !tile.Explored {
				continue
			}
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			glyph, style := r.theme.tile(*tile)
			r.putGlyph(sx, sy, glyph, style)
		}
	}

	if sx, sy, onScreen := r.camera.WorldToScreen(cursor.X, cursor.Y); onScreen {
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack).Bold(true)
		r.putGlyph(sx, sy, r.theme.Cursor, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen
// position (x, y) and pads it to TileCols columns.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	r.screen.SetContent(x, y, runes[0], runes[1:], style)
	for col := runewidth.StringWidth(glyph); col < TileCols; col++ {
		r.screen.SetContent(x+col, y, ' ', nil, style)
	}
}
