package fov

import "github.com/gammazero/deque"

// row is one pending unit of work: the cells at depth inside [start, end].
type row struct {
	depth      int
	start, end slope
}

func (r row) minCol() int { return r.start.roundTiesUp(r.depth) }
func (r row) maxCol() int { return r.end.roundTiesDown(r.depth) }

func (r row) next() row {
	return row{depth: r.depth + 1, start: r.start, end: r.end}
}

// symmetric reports whether the centre of the cell at col lies inside the
// row's sector, boundaries included. Only cells passing this test are seen
// from both ends of the line.
func (r row) symmetric(col int) bool {
	return col*r.start.den >= r.depth*r.start.num &&
		col*r.end.den <= r.depth*r.end.num
}

// scanner walks a single octant. It is not safe for concurrent use; Compute
// creates one per call.
type scanner struct {
	origin Point
	octant Octant
	radius int
	m      Map
	found  []Point
}

func (s *scanner) reset(o Octant) {
	s.octant = o
	s.found = s.found[:0]
}

func (s *scanner) opaque(depth, col int) (bool, error) {
	return s.query(s.octant.Transform(s.origin, depth, col))
}

func (s *scanner) query(p Point) (bool, error) {
	blocked, err := s.m.IsOpaque(p)
	if err != nil {
		return false, &QueryError{Point: p, Octant: s.octant, Err: err}
	}
	return blocked, nil
}

// scan runs shadowcasting over the current octant with an explicit work
// stack in place of recursion, so stack depth never grows with the number
// of obstructions.
func (s *scanner) scan() error {
	if s.radius < 1 {
		return nil
	}
	radiusSq := s.radius * s.radius

	var work deque.Deque[row]
	work.PushBack(row{depth: 1, start: slopeZero, end: slopeOne})

	for work.Len() > 0 {
		r := work.PopBack()
		if r.start.cmp(r.end) > 0 {
			continue
		}
		var started, prevOpaque bool

		for col := r.minCol(); col <= r.maxCol(); col++ {
			p := s.octant.Transform(s.origin, r.depth, col)
			opaque, err := s.query(p)
			if err != nil {
				return err
			}

			if s.origin.DistSq(p) <= radiusSq {
				if opaque {
					s.found = append(s.found, p)
				} else if r.symmetric(col) {
					pinched, err := s.pinched(r.depth, col)
					if err != nil {
						return err
					}
					if !pinched {
						s.found = append(s.found, p)
					}
				}
			}

			if started && prevOpaque && !opaque {
				r.start = tileSlope(r.depth, col)
			}
			if started && !prevOpaque && opaque && r.depth < s.radius {
				n := r.next()
				n.end = tileSlope(r.depth, col)
				work.PushBack(n)
			}
			started, prevOpaque = true, opaque
		}

		if started && !prevOpaque && r.depth < s.radius {
			work.PushBack(r.next())
		}
	}
	return nil
}

// pinched reports whether the centre line to (depth, col) squeezes through a
// grid corner whose two side cells are both opaque. Only lines whose reduced
// slope p/q has p and q odd pass through corners; the n-th such corner sits
// at (n*q/2, n*p/2) for odd n, between the cells (i+1, j) and (i, j+1).
func (s *scanner) pinched(depth, col int) (bool, error) {
	if col == 0 {
		return false, nil
	}
	g := gcd(depth, col)
	q, p := depth/g, col/g
	if p%2 == 0 || q%2 == 0 {
		return false, nil
	}
	for n := 1; n < 2*g; n += 2 {
		i, j := (n*q-1)/2, (n*p-1)/2
		below, err := s.opaque(i+1, j)
		if err != nil {
			return false, err
		}
		if !below {
			continue
		}
		above, err := s.opaque(i, j+1)
		if err != nil {
			return false, err
		}
		if above {
			return true, nil
		}
	}
	return false, nil
}
