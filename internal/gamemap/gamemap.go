package gamemap

import "shadowfov/fov"

// Rect is an axis-aligned rectangle used for rooms.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r overlaps other (inclusive edges).
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 &&
		r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}

// Grid holds the tile grid and room list for one map. It answers opacity
// queries for fov.Compute and records the cells it reports as visible.
type Grid struct {
	Width, Height int
	Tiles         [][]Tile
	Rooms         []Rect
	Outside       Outside
}

// New creates a Grid filled with walls.
func New(width, height int) *Grid {
	return fill(width, height, MakeWall())
}

// NewOpen creates a Grid filled with floor.
func NewOpen(width, height int) *Grid {
	return fill(width, height, MakeFloor())
}

func fill(width, height int, t Tile) *Grid {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = t
		}
	}
	return &Grid{Width: width, Height: height, Tiles: tiles}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *Grid) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y), keeping its explored flag.
func (m *Grid) Set(x, y int, t Tile) {
	t.Explored = m.Tiles[y][x].Explored
	m.Tiles[y][x] = t
}

// Toggle flips (x, y) between wall and floor. Out-of-bounds cells are ignored.
func (m *Grid) Toggle(x, y int) {
	if !m.InBounds(x, y) {
		return
	}
	if m.Tiles[y][x].Kind == TileWall {
		m.Set(x, y, MakeFloor())
	} else {
		m.Set(x, y, MakeWall())
	}
}

// IsTransparent returns true when (x, y) is in bounds and transparent.
func (m *Grid) IsTransparent(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Transparent
}

// IsOpaque implements fov.Map. Cells past the edge follow m.Outside.
func (m *Grid) IsOpaque(p fov.Point) (bool, error) {
	if !m.InBounds(p.X, p.Y) {
		return m.Outside == OutsideOpaque, nil
	}
	return !m.Tiles[p.Y][p.X].Transparent, nil
}

// Reveal implements fov.Sink. It marks the tile visible and explored;
// cells past the edge are dropped.
func (m *Grid) Reveal(p fov.Point) error {
	if m.InBounds(p.X, p.Y) {
		t := &m.Tiles[p.Y][p.X]
		t.Visible = true
		t.Explored = true
	}
	return nil
}

// ClearVisible resets the visible flag of every tile.
func (m *Grid) ClearVisible() {
	for y := range m.Tiles {
		for x := range m.Tiles[y] {
			m.Tiles[y][x].Visible = false
		}
	}
}

// VisibleCount returns the number of tiles currently visible.
func (m *Grid) VisibleCount() int {
	n := 0
	for y := range m.Tiles {
		for x := range m.Tiles[y] {
			if m.Tiles[y][x].Visible {
				n++
			}
		}
	}
	return n
}

// UpdateFOV clears the current visibility and recomputes it from origin.
func (m *Grid) UpdateFOV(origin fov.Point, radius int) error {
	m.ClearVisible()
	return fov.Compute(origin, radius, m, m)
}
