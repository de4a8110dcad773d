package render

// TileCols is the number of terminal columns one map cell occupies.
const TileCols = 2

// Camera translates between map cells and screen cells.
// Map X is multiplied by TileCols so wide glyphs keep cells square-ish.
type Camera struct {
	OffsetX, OffsetY int // map cell shown at the viewport's top-left
	ViewWidth        int // in terminal columns
	ViewHeight       int // in terminal rows
}

// NewCamera creates a camera for a viewport of viewW x viewH terminal cells.
func NewCamera(viewW, viewH int) *Camera {
	return &Camera{ViewWidth: viewW, ViewHeight: viewH}
}

// Cells returns how many map cells fit across and down the viewport.
func (c *Camera) Cells() (int, int) {
	return c.ViewWidth / TileCols, c.ViewHeight
}

// Follow keeps (cx, cy) on screen for a mapW x mapH map. A map that fits
// is pinned to the top-left; a larger one scrolls with (cx, cy) and stops
// at its edges.
func (c *Camera) Follow(cx, cy, mapW, mapH int) {
	cols, rows := c.Cells()
	c.OffsetX = follow(cx, mapW, cols)
	c.OffsetY = follow(cy, mapH, rows)
}

func follow(pos, size, span int) int {
	if size <= span {
		return 0
	}
	return min(max(pos-span/2, 0), size-span)
}

// WorldToScreen converts map (wx, wy) to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	sx = (wx - c.OffsetX) * TileCols
	sy = wy - c.OffsetY
	visible = sx >= 0 && sx+TileCols <= c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to map coordinates.
func (c *Camera) ScreenToWorld(sx, sy int) (int, int) {
	return sx/TileCols + c.OffsetX, sy + c.OffsetY
}

// InView reports whether screen (sx, sy) lies inside the viewport.
func (c *Camera) InView(sx, sy int) bool {
	return sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
}
