package generate

import "shadowfov/internal/gamemap"

// Scatter returns an open map with cfg.Walls random cells toggled. A cell
// drawn twice flips back to floor. The start point is the map center, which
// is always left open.
func Scatter(cfg *Config) (*gamemap.Grid, int, int) {
	gmap := gamemap.NewOpen(cfg.MapWidth, cfg.MapHeight)
	if cfg.MapWidth <= 0 || cfg.MapHeight <= 0 {
		return gmap, 0, 0
	}
	for range cfg.Walls {
		x := cfg.Rand.Intn(cfg.MapWidth)
		y := cfg.Rand.Intn(cfg.MapHeight)
		gmap.Toggle(x, y)
	}
	px, py := cfg.MapWidth/2, cfg.MapHeight/2
	gmap.Set(px, py, gamemap.MakeFloor())
	return gmap, px, py
}

// Build runs the generator selected by cfg.Style.
func Build(cfg *Config) (*gamemap.Grid, int, int) {
	if cfg.Style == StyleBSP {
		return Generate(cfg)
	}
	return Scatter(cfg)
}
