// Package fov computes symmetric field of view on a 2D grid.
//
// Compute runs recursive shadowcasting over the eight octants around an
// origin. Slopes are exact rationals, so the result is symmetric between
// transparent cells: if B is visible from A, A is visible from B. The grid
// itself stays outside the package; callers supply a Map that answers
// opacity queries and a Sink that receives visible cells.
package fov

import (
	"errors"
	"fmt"
	"math/bits"
)

// MaxRadius is the largest radius Compute accepts. Slope and distance
// arithmetic stays within int for every cell of a disk this size.
const MaxRadius = 1 << (bits.UintSize/2 - 2)

var (
	// ErrNegativeRadius is returned by Compute when the radius is below zero.
	ErrNegativeRadius = errors.New("fov: negative radius")
	// ErrRadiusTooLarge is returned by Compute when the radius exceeds MaxRadius.
	ErrRadiusTooLarge = errors.New("fov: radius too large")
)

// Map answers opacity queries. Cells outside the caller's grid must still
// get an answer; whether they block sight is the caller's policy.
type Map interface {
	IsOpaque(p Point) (bool, error)
}

// MapFunc adapts a function to Map.
type MapFunc func(p Point) (bool, error)

// IsOpaque calls f(p).
func (f MapFunc) IsOpaque(p Point) (bool, error) { return f(p) }

// Opaque adapts an infallible opacity predicate to Map.
func Opaque(blocks func(p Point) bool) Map {
	return MapFunc(func(p Point) (bool, error) { return blocks(p), nil })
}

// Sink receives the cells found visible.
type Sink interface {
	Reveal(p Point) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(p Point) error

// Reveal calls f(p).
func (f SinkFunc) Reveal(p Point) error { return f(p) }

// QueryError reports a failed opacity query.
type QueryError struct {
	Point  Point
	Octant Octant
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("fov: opacity query at (%d,%d) in octant %d: %v", e.Point.X, e.Point.Y, e.Octant, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Compute reports every cell visible from origin within radius to s.
//
// The origin is always reported first, whatever its opacity. Each octant is
// then scanned in full before any of its cells reach s, so a failing opacity
// query leaves s holding only the origin and the octants completed before
// the failure. Cells on an octant boundary (the axes and diagonals through
// origin) are reported once per octant that covers them; wrap s in a Set
// when uniqueness matters.
//
// A cell is within radius when its squared distance to origin is at most
// radius². Radius 0 reports only the origin; a radius above MaxRadius is
// rejected before anything is reported. Errors returned by s are
// returned unchanged and stop the computation.
func Compute(origin Point, radius int, m Map, s Sink) error {
	if radius < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeRadius, radius)
	}
	if radius > MaxRadius {
		return fmt.Errorf("%w: %d > %d", ErrRadiusTooLarge, radius, MaxRadius)
	}
	if err := s.Reveal(origin); err != nil {
		return err
	}

	sc := &scanner{origin: origin, radius: radius, m: m}
	for o := Octant(0); o < NumOctants; o++ {
		sc.reset(o)
		if err := sc.scan(); err != nil {
			return err
		}
		for _, p := range sc.found {
			if err := s.Reveal(p); err != nil {
				return err
			}
		}
	}
	return nil
}

// Visible runs Compute and collects the result into a Set.
func Visible(origin Point, radius int, m Map) (*Set, error) {
	set := NewSet()
	if err := Compute(origin, radius, m, set); err != nil {
		return nil, err
	}
	return set, nil
}
