package gamemap

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileGlass
)

// Tile holds the kind and visibility state for one map cell.
type Tile struct {
	Kind        TileKind
	Transparent bool
	Explored    bool
	Visible     bool
}

// MakeWall returns an opaque wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall, Transparent: false}
}

// MakeFloor returns a transparent floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Transparent: true}
}

// MakeGlass returns a wall you can see through.
func MakeGlass() Tile {
	return Tile{Kind: TileGlass, Transparent: true}
}
