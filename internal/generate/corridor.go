package generate

import "shadowfov/internal/gamemap"

// carveCorridor digs a tunnel between (x1,y1) and (x2,y2) in cfg.CorridorStyle.
func carveCorridor(gmap *gamemap.Grid, x1, y1, x2, y2 int, cfg *Config) {
	switch cfg.CorridorStyle {
	case CorridorZShaped:
		midY := (y1 + y2) / 2
		carveV(gmap, y1, midY, x1)
		carveH(gmap, x1, x2, midY)
		carveV(gmap, midY, y2, x2)
	case CorridorStraight:
		carveH(gmap, x1, x2, y1)
		carveV(gmap, y1, y2, x2)
	default:
		if cfg.Rand.Intn(2) == 0 {
			carveH(gmap, x1, x2, y1)
			carveV(gmap, y1, y2, x2)
		} else {
			carveV(gmap, y1, y2, x1)
			carveH(gmap, x1, x2, y2)
		}
	}
}

func carveH(gmap *gamemap.Grid, x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		carve(gmap, x, y)
	}
}

func carveV(gmap *gamemap.Grid, y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		carve(gmap, x, y)
	}
}

// carve opens (x, y) unless it is off the map or already see-through.
func carve(gmap *gamemap.Grid, x, y int) {
	if gmap.InBounds(x, y) && gmap.At(x, y).Kind == gamemap.TileWall {
		gmap.Set(x, y, gamemap.MakeFloor())
	}
}
