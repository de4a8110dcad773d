package fov

// Octant identifies one of the eight 45° wedges around an origin.
// Every octant is scanned in the same canonical frame: row is the distance
// along the octant's primary axis, col the lateral offset with 0 <= col <= row.
type Octant uint8

// NumOctants is the number of wedges covering the plane.
const NumOctants = 8

// octants holds the {xx, xy, yx, yy} matrix of each octant:
//
//	worldX = originX + row*xx + col*xy
//	worldY = originY + row*yx + col*yy
var octants = [NumOctants][4]int{
	{1, 0, 0, 1},   // east, sweeping south
	{0, 1, 1, 0},   // south, sweeping east
	{0, -1, 1, 0},  // south, sweeping west
	{-1, 0, 0, 1},  // west, sweeping south
	{-1, 0, 0, -1}, // west, sweeping north
	{0, -1, -1, 0}, // north, sweeping west
	{0, 1, -1, 0},  // north, sweeping east
	{1, 0, 0, -1},  // east, sweeping north
}

// Transform maps the canonical (row, col) of octant o to world space.
// It panics when o >= NumOctants.
func (o Octant) Transform(origin Point, row, col int) Point {
	m := octants[o]
	return Point{
		X: origin.X + row*m[0] + col*m[1],
		Y: origin.Y + row*m[2] + col*m[3],
	}
}
