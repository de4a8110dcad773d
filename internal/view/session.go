// Package view runs one interactive field-of-view session on a tcell
// screen: the cursor is the viewer, clicks toggle walls and the scroll
// wheel changes the view range.
package view

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"shadowfov/fov"
	"shadowfov/internal/config"
	"shadowfov/internal/gamemap"
	"shadowfov/internal/generate"
	"shadowfov/internal/render"

	"github.com/gdamore/tcell/v2"
)

// Session owns one screen and the map shown on it.
type Session struct {
	screen   tcell.Screen
	renderer *render.Renderer
	logger   *slog.Logger

	gen      *generate.Config
	outside  gamemap.Outside
	minRange int
	maxRange int

	grid      *gamemap.Grid
	cursor    fov.Point
	viewRange int
	buttons   tcell.ButtonMask // mouse buttons held at the last event
	dirty     bool             // FOV must be recomputed before the next draw
	status    string
}

// New creates a Session on an initialized screen and generates its first map.
func New(screen tcell.Screen, cfg config.Config, rng *rand.Rand, logger *slog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("view config: %w", err)
	}
	gen, err := cfg.Map.Generator(rng)
	if err != nil {
		return nil, err
	}
	outside, err := gamemap.ParseOutside(cfg.Map.Outside)
	if err != nil {
		return nil, err
	}
	theme, err := render.LookupTheme(cfg.View.Theme)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	screen.EnableMouse()
	s := &Session{
		screen:    screen,
		renderer:  render.NewRenderer(screen, theme),
		logger:    logger,
		gen:       gen,
		outside:   outside,
		minRange:  cfg.View.MinRange,
		maxRange:  cfg.View.MaxRange,
		viewRange: cfg.View.Range,
	}
	s.regenerate()
	return s, nil
}

// Grid returns the map currently shown.
func (s *Session) Grid() *gamemap.Grid { return s.grid }

// Cursor returns the current viewer position.
func (s *Session) Cursor() fov.Point { return s.cursor }

// Range returns the current view range.
func (s *Session) Range() int { return s.viewRange }

// Run is the session loop. It returns when the user quits, the screen is
// finalized or ctx is done. The caller owns the screen and calls Fini.
func (s *Session) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	s.logger.Info("view session started",
		"width", s.grid.Width, "height", s.grid.Height, "range", s.viewRange)
	defer s.logger.Info("view session ended")

	for {
		s.Update()
		s.Draw()

		ev := s.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return nil
		}
		if s.HandleEvent(ev) {
			return nil
		}
	}
}

// HandleEvent applies one input event and reports whether the session
// should end.
func (s *Session) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
		s.renderer.Resize()
	case *tcell.EventKey:
		return s.apply(keyToAction(ev))
	case *tcell.EventMouse:
		s.handleMouse(ev)
	}
	return false
}

// handleMouse moves the cursor to the pointer, toggles a wall on a fresh
// left press and changes the range on wheel events.
func (s *Session) handleMouse(ev *tcell.EventMouse) {
	btns := ev.Buttons()
	pressed := btns &^ s.buttons
	s.buttons = btns &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)

	x, y := ev.Position()
	if p, ok := s.renderer.ScreenToWorld(x, y); ok && s.grid.InBounds(p.X, p.Y) {
		s.moveTo(p)
	}

	switch {
	case btns&tcell.WheelUp != 0:
		s.changeRange(1)
	case btns&tcell.WheelDown != 0:
		s.changeRange(-1)
	}
	if pressed&tcell.Button1 != 0 {
		s.apply(ActionToggleWall)
	}
}

// apply performs a keyboard action. It returns true for ActionQuit.
func (s *Session) apply(a Action) bool {
	switch a {
	case ActionNone:
	case ActionQuit:
		return true
	case ActionToggleWall:
		s.grid.Toggle(s.cursor.X, s.cursor.Y)
		s.dirty = true
	case ActionToggleGlass:
		s.toggleGlass()
	case ActionRangeUp:
		s.changeRange(1)
	case ActionRangeDown:
		s.changeRange(-1)
	case ActionRegenerate:
		s.regenerate()
	default:
		dx, dy := actionToDelta(a)
		p := s.cursor.Add(fov.Point{X: dx, Y: dy})
		if s.grid.InBounds(p.X, p.Y) {
			s.moveTo(p)
		}
	}
	return false
}

func (s *Session) moveTo(p fov.Point) {
	if p != s.cursor {
		s.cursor = p
		s.dirty = true
	}
}

// changeRange adds delta to the view range, clamped to the configured bounds.
func (s *Session) changeRange(delta int) {
	r := min(max(s.viewRange+delta, s.minRange), s.maxRange)
	if r != s.viewRange {
		s.viewRange = r
		s.dirty = true
	}
}

// toggleGlass swaps the tile under the cursor between glass and floor.
func (s *Session) toggleGlass() {
	x, y := s.cursor.X, s.cursor.Y
	if !s.grid.InBounds(x, y) {
		return
	}
	if s.grid.At(x, y).Kind == gamemap.TileGlass {
		s.grid.Set(x, y, gamemap.MakeFloor())
	} else {
		s.grid.Set(x, y, gamemap.MakeGlass())
	}
	s.dirty = true
}

// regenerate builds a fresh map and puts the cursor on its start point.
func (s *Session) regenerate() {
	grid, px, py := generate.Build(s.gen)
	grid.Outside = s.outside
	s.grid = grid
	s.cursor = fov.Point{X: px, Y: py}
	s.dirty = true
	s.logger.Debug("map generated",
		"style", s.gen.Style.String(), "width", grid.Width, "height", grid.Height, "rooms", len(grid.Rooms))
}

// Update recomputes the field of view if anything changed since the last call.
func (s *Session) Update() {
	if !s.dirty {
		return
	}
	s.dirty = false
	if err := s.grid.UpdateFOV(s.cursor, s.viewRange); err != nil {
		s.logger.Error("fov update failed", "origin", s.cursor, "range", s.viewRange, "error", err)
		s.status = "FOV error: " + err.Error()
		return
	}
	s.status = fmt.Sprintf("Origin (%d,%d)  Range %d  Visible %d",
		s.cursor.X, s.cursor.Y, s.viewRange, s.grid.VisibleCount())
}

// Draw renders the map and the help lines.
func (s *Session) Draw() {
	s.renderer.DrawGrid(s.grid, s.cursor)
	s.renderer.DrawHUD([]string{
		"Click to toggle wall, g for glass, r for a new map, q to quit",
		"Scroll to change view range (+/-), move with the mouse, arrows or hjklyubn",
		s.status,
	})
}
