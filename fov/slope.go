package fov

// slope is the exact rational num/den with den > 0. Slopes are never
// converted to floating point: every comparison is cross-multiplied.
type slope struct {
	num, den int
}

var (
	slopeZero = slope{num: 0, den: 1}
	slopeOne  = slope{num: 1, den: 1}
)

// tileSlope is the slope of the near edge of the cell at (depth, col),
// (2col-1) / (2depth).
func tileSlope(depth, col int) slope {
	return slope{num: 2*col - 1, den: 2 * depth}
}

// cmp returns -1, 0 or +1 as s is less than, equal to or greater than t.
func (s slope) cmp(t slope) int {
	a, b := s.num*t.den, t.num*s.den
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// roundTiesUp returns depth*s rounded to the nearest integer, halves upward.
func (s slope) roundTiesUp(depth int) int {
	return floorDiv(2*depth*s.num+s.den, 2*s.den)
}

// roundTiesDown returns depth*s rounded to the nearest integer, halves downward.
func (s slope) roundTiesDown(depth int) int {
	return ceilDiv(2*depth*s.num-s.den, 2*s.den)
}

// floorDiv divides a by b > 0 rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// ceilDiv divides a by b > 0 rounding toward positive infinity.
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
