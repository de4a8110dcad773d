package render

import (
	"fmt"
	"shadowfov/internal/gamemap"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// Theme holds the glyphs and colors for one look of the map.
// Emoji carry their own colors, so the emoji theme uses distinct glyphs
// for dark cells instead of relying on Dim.
type Theme struct {
	Wall, Floor, Glass          string // currently visible
	DimWall, DimFloor, DimGlass string // explored but not currently visible
	Cursor                      string

	WallColor, FloorColor, GlassColor, DimColor tcell.Color
}

// Themes maps theme names to their glyph sets.
var Themes = map[string]Theme{
	"ascii": {
		Wall: "#", Floor: ".", Glass: "=",
		DimWall: "#", DimFloor: ".", DimGlass: "=",
		Cursor:     "@",
		WallColor:  tcell.ColorGreen,
		FloorColor: tcell.ColorWhite,
		GlassColor: tcell.ColorAqua,
		DimColor:   tcell.ColorGray,
	},
	"emoji": {
		Wall: "🧱", Floor: "🟫", Glass: "🪟",
		DimWall: "🌑", DimFloor: "🔲", DimGlass: "🔳",
		Cursor:     "🔦",
		WallColor:  tcell.ColorDefault,
		FloorColor: tcell.ColorDefault,
		GlassColor: tcell.ColorDefault,
		DimColor:   tcell.ColorDefault,
	},
}

// ThemeNames returns the known theme names, sorted.
func ThemeNames() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTheme returns the named theme.
func LookupTheme(name string) (Theme, error) {
	t, ok := Themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (want one of %v)", name, ThemeNames())
	}
	return t, nil
}

// tile picks the glyph and style for a tile that is visible or explored.
func (th Theme) tile(t gamemap.Tile) (string, tcell.Style) {
	base := tcell.StyleDefault.Background(tcell.ColorBlack)
	if !t.Visible {
		style := base.Foreground(th.DimColor)
		switch t.Kind {
		case gamemap.TileWall:
			return th.DimWall, style
		case gamemap.TileGlass:
			return th.DimGlass, style
		default:
			return th.DimFloor, style
		}
	}
	switch t.Kind {
	case gamemap.TileWall:
		return th.Wall, base.Foreground(th.WallColor)
	case gamemap.TileGlass:
		return th.Glass, base.Foreground(th.GlassColor)
	default:
		return th.Floor, base.Foreground(th.FloorColor)
	}
}
