package fov

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// Set is a Sink that keeps each revealed cell once.
type Set struct {
	cells mapset.Set[Point]
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{cells: mapset.New[Point]()}
}

// Reveal adds p to the set. It never fails.
func (s *Set) Reveal(p Point) error {
	s.cells.Put(p)
	return nil
}

// Has reports whether p was revealed.
func (s *Set) Has(p Point) bool { return s.cells.Has(p) }

// Len returns the number of distinct cells.
func (s *Set) Len() int { return s.cells.Size() }

// Points returns the cells ordered by row, then column.
func (s *Set) Points() []Point {
	pts := make([]Point, 0, s.cells.Size())
	s.cells.Each(func(p Point) {
		pts = append(pts, p)
	})
	slices.SortFunc(pts, func(a, b Point) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return pts
}
