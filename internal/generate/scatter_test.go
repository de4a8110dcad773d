package generate

import (
	"math/rand"
	"testing"
)

func TestScatterStartIsOpen(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		cfg := DefaultConfig(30, 30, rand.New(rand.NewSource(seed)))
		gmap, px, py := Scatter(cfg)
		if px != 15 || py != 15 {
			t.Fatalf("start = (%d,%d), want map center", px, py)
		}
		if !gmap.IsTransparent(px, py) {
			t.Errorf("seed=%d: start tile should be open", seed)
		}
	}
}

func TestScatterWallCount(t *testing.T) {
	cfg := DefaultConfig(30, 30, rand.New(rand.NewSource(1)))
	gmap, _, _ := Scatter(cfg)

	walls := 0
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			if !gmap.IsTransparent(x, y) {
				walls++
			}
		}
	}
	// Repeated draws toggle back, so at most cfg.Walls remain.
	if walls == 0 || walls > cfg.Walls {
		t.Errorf("wall count = %d, want 1..%d", walls, cfg.Walls)
	}
}

func TestScatterZeroWallsIsOpen(t *testing.T) {
	cfg := DefaultConfig(8, 6, rand.New(rand.NewSource(1)))
	cfg.Walls = 0
	gmap, _, _ := Scatter(cfg)
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			if !gmap.IsTransparent(x, y) {
				t.Fatalf("tile (%d,%d) should be open", x, y)
			}
		}
	}
}

func TestScatterDeterministic(t *testing.T) {
	a, _, _ := Scatter(DefaultConfig(20, 20, rand.New(rand.NewSource(42))))
	b, _, _ := Scatter(DefaultConfig(20, 20, rand.New(rand.NewSource(42))))
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			if a.At(x, y).Kind != b.At(x, y).Kind {
				t.Fatalf("same seed produced different maps at (%d,%d)", x, y)
			}
		}
	}
}

func TestBuildDispatchesOnStyle(t *testing.T) {
	cfg := DefaultConfig(40, 30, rand.New(rand.NewSource(3)))
	cfg.Style = StyleBSP
	gmap, _, _ := Build(cfg)
	if len(gmap.Rooms) == 0 {
		t.Error("bsp style should produce rooms")
	}

	cfg = DefaultConfig(40, 30, rand.New(rand.NewSource(3)))
	gmap, _, _ = Build(cfg)
	if len(gmap.Rooms) != 0 {
		t.Error("scatter style should not record rooms")
	}
}

func TestParseStyle(t *testing.T) {
	for _, s := range []string{"scatter", "bsp"} {
		st, err := ParseStyle(s)
		if err != nil {
			t.Fatalf("ParseStyle(%q): %v", s, err)
		}
		if st.String() != s {
			t.Errorf("ParseStyle(%q).String() = %q", s, st.String())
		}
	}
	if _, err := ParseStyle("maze"); err == nil {
		t.Error("expected error for unknown style")
	}
}
