package view

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"shadowfov/fov"
	"shadowfov/internal/config"
	"shadowfov/internal/gamemap"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// ─── helpers ──────────────────────────────────────────────────────────────────

func newSimScreen() tcell.Screen {
	ss := tcell.NewSimulationScreen("UTF-8")
	_ = ss.Init()
	// Init resets the size, so set it afterwards.
	ss.SetSize(80, 24)
	return ss
}

// newTestSession returns a session on an open 30x30 map with the cursor at (15,15).
func newTestSession(t *testing.T) *Session {
	t.Helper()
	screen := newSimScreen()
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	cfg.Map.Walls = 0
	cfg.Map.Seed = 1
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(screen, cfg, rand.New(rand.NewSource(1)), logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func mouse(x, y int, btn tcell.ButtonMask) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, btn, tcell.ModNone)
}

// ─── construction ─────────────────────────────────────────────────────────────

func TestNewStartsAtMapCenter(t *testing.T) {
	s := newTestSession(t)
	if got := s.Cursor(); got != (fov.Point{X: 15, Y: 15}) {
		t.Errorf("cursor = %v, want (15,15)", got)
	}
	if s.Range() != 5 {
		t.Errorf("range = %d, want 5", s.Range())
	}
	if s.Grid().Width != 30 || s.Grid().Height != 30 {
		t.Errorf("grid = %dx%d, want 30x30", s.Grid().Width, s.Grid().Height)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	screen := newSimScreen()
	defer screen.Fini()
	cfg := config.Default()
	cfg.Map.Style = "maze"
	if _, err := New(screen, cfg, rand.New(rand.NewSource(1)), nil); err == nil {
		t.Error("expected error for unknown map style")
	}
}

// ─── field of view ────────────────────────────────────────────────────────────

func TestUpdateComputesDisk(t *testing.T) {
	s := newTestSession(t)
	s.Update()
	// Open field, radius 5: every cell with dx²+dy² <= 25.
	if got := s.Grid().VisibleCount(); got != 81 {
		t.Errorf("visible = %d, want 81", got)
	}
}

func TestUpdateOnlyWhenChanged(t *testing.T) {
	s := newTestSession(t)
	s.Update()
	s.Grid().ClearVisible()

	s.Update()
	if got := s.Grid().VisibleCount(); got != 0 {
		t.Errorf("unchanged session recomputed FOV: visible = %d", got)
	}

	s.HandleEvent(key('l'))
	s.Update()
	if s.Grid().VisibleCount() == 0 {
		t.Error("moving the cursor should recompute FOV")
	}
}

func TestToggledWallCastsShadow(t *testing.T) {
	s := newTestSession(t)
	s.HandleEvent(key('l')) // (16,15)
	s.HandleEvent(key(' ')) // wall at (16,15)
	s.HandleEvent(key('h')) // back to (15,15)
	s.Update()

	g := s.Grid()
	if !g.At(16, 15).Visible {
		t.Error("adjacent wall should be visible")
	}
	if g.At(18, 15).Visible {
		t.Error("cell behind the wall should be hidden")
	}
}

// ─── keyboard ─────────────────────────────────────────────────────────────────

func TestKeyMovement(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want fov.Point
	}{
		{"l east", key('l'), fov.Point{X: 16, Y: 15}},
		{"h west", key('h'), fov.Point{X: 14, Y: 15}},
		{"k north", key('k'), fov.Point{X: 15, Y: 14}},
		{"j south", key('j'), fov.Point{X: 15, Y: 16}},
		{"y north-west", key('y'), fov.Point{X: 14, Y: 14}},
		{"u north-east", key('u'), fov.Point{X: 16, Y: 14}},
		{"b south-west", key('b'), fov.Point{X: 14, Y: 16}},
		{"n south-east", key('n'), fov.Point{X: 16, Y: 16}},
		{"arrow up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), fov.Point{X: 15, Y: 14}},
		{"arrow right", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), fov.Point{X: 16, Y: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			if quit := s.HandleEvent(tt.ev); quit {
				t.Fatal("movement key should not quit")
			}
			if got := s.Cursor(); got != tt.want {
				t.Errorf("cursor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCursorStaysOnMap(t *testing.T) {
	s := newTestSession(t)
	for range 40 {
		s.HandleEvent(key('h'))
	}
	if got := s.Cursor(); got.X != 0 {
		t.Errorf("cursor x = %d, want clamped to 0", got.X)
	}
}

func TestRangeKeysClamp(t *testing.T) {
	s := newTestSession(t)
	s.HandleEvent(key('+'))
	if s.Range() != 6 {
		t.Errorf("range after + = %d, want 6", s.Range())
	}
	for range 40 {
		s.HandleEvent(key('+'))
	}
	if s.Range() != 30 {
		t.Errorf("range = %d, want clamped to max 30", s.Range())
	}
	for range 40 {
		s.HandleEvent(key('-'))
	}
	if s.Range() != 0 {
		t.Errorf("range = %d, want clamped to min 0", s.Range())
	}
}

func TestToggleKeys(t *testing.T) {
	s := newTestSession(t)
	g := s.Grid()

	s.HandleEvent(key(' '))
	if g.At(15, 15).Kind != gamemap.TileWall {
		t.Error("space should turn the floor under the cursor into a wall")
	}
	s.HandleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	if g.At(15, 15).Kind != gamemap.TileFloor {
		t.Error("enter should turn the wall back into floor")
	}

	s.HandleEvent(key('g'))
	if g.At(15, 15).Kind != gamemap.TileGlass {
		t.Error("g should place glass")
	}
	s.HandleEvent(key('g'))
	if g.At(15, 15).Kind != gamemap.TileFloor {
		t.Error("g on glass should restore floor")
	}
}

func TestRegenerateResetsCursor(t *testing.T) {
	s := newTestSession(t)
	old := s.Grid()
	s.HandleEvent(key('l'))
	s.HandleEvent(key('r'))

	if s.Grid() == old {
		t.Error("r should build a new map")
	}
	if got := s.Cursor(); got != (fov.Point{X: 15, Y: 15}) {
		t.Errorf("cursor = %v, want start (15,15)", got)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, ev := range []*tcell.EventKey{
		key('q'),
		key('Q'),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
	} {
		s := newTestSession(t)
		if !s.HandleEvent(ev) {
			t.Errorf("%v should quit", ev.Name())
		}
	}
}

// ─── mouse ────────────────────────────────────────────────────────────────────

func TestMouseMovesCursor(t *testing.T) {
	s := newTestSession(t)
	// Cells are two columns wide; both columns of cell (3,4) map to it.
	s.HandleEvent(mouse(7, 4, tcell.ButtonNone))
	if got := s.Cursor(); got != (fov.Point{X: 3, Y: 4}) {
		t.Errorf("cursor = %v, want (3,4)", got)
	}
	// The HUD is not part of the map.
	s.HandleEvent(mouse(7, 22, tcell.ButtonNone))
	if got := s.Cursor(); got != (fov.Point{X: 3, Y: 4}) {
		t.Errorf("cursor moved into the HUD: %v", got)
	}
}

func TestMouseClickTogglesOnPress(t *testing.T) {
	s := newTestSession(t)
	g := s.Grid()

	s.HandleEvent(mouse(6, 4, tcell.Button1))
	if g.At(3, 4).Kind != gamemap.TileWall {
		t.Fatal("left press should toggle a wall")
	}
	// Holding the button does not toggle again.
	s.HandleEvent(mouse(6, 4, tcell.Button1))
	if g.At(3, 4).Kind != gamemap.TileWall {
		t.Fatal("held button toggled twice")
	}
	s.HandleEvent(mouse(6, 4, tcell.ButtonNone))
	s.HandleEvent(mouse(6, 4, tcell.Button1))
	if g.At(3, 4).Kind != gamemap.TileFloor {
		t.Error("second press should toggle back")
	}
}

func TestMouseWheelChangesRange(t *testing.T) {
	s := newTestSession(t)
	s.HandleEvent(mouse(30, 15, tcell.WheelUp))
	if s.Range() != 6 {
		t.Errorf("range after wheel up = %d, want 6", s.Range())
	}
	s.HandleEvent(mouse(30, 15, tcell.WheelDown))
	s.HandleEvent(mouse(30, 15, tcell.WheelDown))
	if s.Range() != 4 {
		t.Errorf("range after two wheel downs = %d, want 4", s.Range())
	}
}

// ─── drawing / loop ───────────────────────────────────────────────────────────

func TestDrawShowsCursor(t *testing.T) {
	s := newTestSession(t)
	s.Update()
	s.Draw()
	// 20 map rows fit; the camera scrolls so (15,15) sits on row 10.
	r, _, _, _ := s.screen.GetContent(30, 10)
	if r != '@' {
		t.Errorf("cursor glyph = %q, want '@'", r)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	s := newTestSession(t)
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	if err := s.screen.PostEvent(key('q')); err != nil {
		t.Fatalf("PostEvent: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
