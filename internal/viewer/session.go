// Package viewer holds the interactive state of the desktop viewer: the
// surface and registry being edited, the visible x range, and what each key
// and pointer gesture does. It has no windowing dependency so it can run
// headless.
package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/OCAP2/cursortools/internal/cursor"
	"github.com/OCAP2/cursortools/internal/dispatcher"
	"github.com/OCAP2/cursortools/internal/layout"
	"github.com/OCAP2/cursortools/internal/logging"
	"github.com/OCAP2/cursortools/internal/storage"
	memsurface "github.com/OCAP2/cursortools/internal/surface/memory"
	"github.com/OCAP2/cursortools/internal/viewport"
	"github.com/OCAP2/cursortools/pkg/core"
)

// PanTool is the navigation tool name set while panning is active
const PanTool = "pan"

// ErrNoBackend is returned by Save when the session has no storage backend
var ErrNoBackend = errors.New("no storage backend")

// Action is a keyboard command
type Action int

const (
	ActionNone Action = iota
	ActionArmCursor
	ActionArmSpan
	ActionDisarm
	ActionToggleFixed
	ActionTogglePan
	ActionSave
	ActionResetView
)

func (a Action) String() string {
	switch a {
	case ActionArmCursor:
		return "arm-cursor"
	case ActionArmSpan:
		return "arm-span"
	case ActionDisarm:
		return "disarm"
	case ActionToggleFixed:
		return "toggle-fixed"
	case ActionTogglePan:
		return "toggle-pan"
	case ActionSave:
		return "save"
	case ActionResetView:
		return "reset-view"
	default:
		return "none"
	}
}

// Options configures a Session
type Options struct {
	Width, Height int
	XMin, XMax    float64

	Cursor  cursor.Config
	Backend storage.Backend // nil disables Load and Save
	Layout  string
	Logger  *slog.Logger
}

// Session is one open layout in the viewer
type Session struct {
	surf   *memsurface.Surface
	reg    *cursor.Registry
	events *dispatcher.Dispatcher

	view    viewport.Viewport
	initial viewport.Viewport

	backend storage.Backend
	name    string
	log     *slog.Logger

	fixed   bool
	panning bool
	panX    int

	lastX, lastY int
	hasLast      bool
	status       string
}

// New creates a session over an empty in-memory surface
func New(opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "viewer")

	view := viewport.New(opts.Width, opts.Height, opts.XMin, opts.XMax)
	surf := memsurface.New(memsurface.Config{
		Width: view.PlotWidth(),
		XMin:  view.XMin,
		XMax:  view.XMax,
	})

	events, err := dispatcher.New(logging.NewDispatcherLogger(log))
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	return &Session{
		surf:    surf,
		reg:     cursor.NewRegistry(surf, events, opts.Cursor),
		events:  events,
		view:    view,
		initial: view,
		backend: opts.Backend,
		name:    opts.Layout,
		log:     log,
	}, nil
}

// Surface returns the scene to render
func (s *Session) Surface() *memsurface.Surface { return s.surf }

// Registry returns the markers being edited
func (s *Session) Registry() *cursor.Registry { return s.reg }

// View returns the visible range and window geometry
func (s *Session) View() viewport.Viewport { return s.view }

// Layout returns the layout name used by Load and Save
func (s *Session) Layout() string { return s.name }

// Load replaces the registry contents with the stored layout. A layout that
// does not exist yet leaves the registry empty.
func (s *Session) Load() error {
	if s.backend == nil {
		return ErrNoBackend
	}
	records, err := s.backend.LoadLayout(s.name)
	if errors.Is(err, storage.ErrLayoutNotFound) {
		s.log.Info("Layout not found, starting empty", "layout", s.name)
		s.status = "new layout"
		return nil
	}
	if err != nil {
		return err
	}

	// a bad layout leaves the open one untouched
	if err := layout.Validate(records); err != nil {
		return fmt.Errorf("layout %s: %w", s.name, err)
	}
	s.reg.RemoveAll()
	res, err := layout.Load(s.reg, records)
	if err != nil {
		return fmt.Errorf("layout %s: %w", s.name, err)
	}
	s.restoreView()
	s.log.Info("Loaded layout", "layout", s.name, "markers", len(res.Markers), "spans", len(res.Spans))
	s.status = fmt.Sprintf("loaded %d records", len(records))
	return nil
}

// restoreView applies the axis range saved with the layout, when the backend keeps one
func (s *Session) restoreView() {
	ml, ok := s.backend.(storage.MetaLoader)
	if !ok {
		return
	}
	meta, err := ml.LoadMeta(s.name)
	if err != nil {
		s.log.Warn("Failed to read layout metadata", "layout", s.name, "error", err)
		return
	}
	if lo, hi, ok := storage.AxisRange(meta); ok {
		s.setView(lo, hi)
	}
}

// Save writes the registry to the backend and returns the number of records written
func (s *Session) Save() (int, error) {
	if s.backend == nil {
		return 0, ErrNoBackend
	}
	records := layout.Save(s.reg)

	var err error
	if ms, ok := s.backend.(storage.MetaSaver); ok {
		err = ms.SaveLayoutMeta(s.name, records, map[string]any{"xMin": s.view.XMin, "xMax": s.view.XMax})
	} else {
		err = s.backend.SaveLayout(s.name, records)
	}
	if err != nil {
		s.status = "save failed"
		return 0, err
	}
	s.log.Info("Saved layout", "layout", s.name, "records", len(records))
	s.status = fmt.Sprintf("saved %d records", len(records))
	return len(records), nil
}

// Do runs a keyboard command
func (s *Session) Do(a Action) error {
	switch a {
	case ActionArmCursor:
		return s.toggleArm(cursor.PlaceCursor)
	case ActionArmSpan:
		return s.toggleArm(cursor.PlaceSpan)
	case ActionDisarm:
		s.reg.DisarmPlacement()
	case ActionToggleFixed:
		s.fixed = !s.fixed
		mode := core.ModeInteract
		if s.fixed {
			mode = core.ModeFixed
		}
		n := cursor.SetInteractionMode(s.reg, mode, cursor.All())
		s.status = fmt.Sprintf("%d markers %s", n, mode)
	case ActionTogglePan:
		if s.surf.NavigationTool() == PanTool {
			s.surf.SetNavigationTool("")
		} else {
			s.surf.SetNavigationTool(PanTool)
		}
		s.panning = false
	case ActionSave:
		_, err := s.Save()
		return err
	case ActionResetView:
		s.setView(s.initial.XMin, s.initial.XMax)
	}
	return nil
}

func (s *Session) toggleArm(mode cursor.PlacementMode) error {
	if s.reg.Placement() == mode {
		s.reg.DisarmPlacement()
		return nil
	}
	return s.reg.ArmPlacement(mode, cursor.MarkerProps{}, cursor.SpanProps{})
}

// Pointer feeds a pointer event at window pixel (px, py) to the markers.
// Motion events that do not change the pixel are dropped. It returns the
// number of callbacks that ran.
func (s *Session) Pointer(t core.EventType, b core.Button, px, py int) int {
	if t == core.EventMotion {
		if s.hasLast && px == s.lastX && py == s.lastY {
			return 0
		}
	}
	s.lastX, s.lastY, s.hasLast = px, py, true

	if s.surf.NavigationTool() == PanTool {
		s.pan(t, b, px, py)
	}
	return s.events.Emit(s.view.Event(t, b, px, py))
}

func (s *Session) pan(t core.EventType, b core.Button, px, py int) {
	switch t {
	case core.EventPress:
		if b == core.ButtonPrimary && s.view.InPlot(px, py) {
			s.panning, s.panX = true, px
		}
	case core.EventMotion:
		if !s.panning {
			return
		}
		v := s.view.Pan(float64(px - s.panX))
		s.panX = px
		s.setView(v.XMin, v.XMax)
	case core.EventRelease:
		s.panning = false
	}
}

// Scroll zooms around window pixel px; positive dy zooms in
func (s *Session) Scroll(dy float64, px int) {
	if dy == 0 {
		return
	}
	v := s.view.Zoom(math.Pow(0.9, dy), float64(px))
	s.setView(v.XMin, v.XMax)
}

// Resize adapts the viewport and pick tolerances to a new window size
func (s *Session) Resize(width, height int) {
	if width == s.view.Width && height == s.view.Height {
		return
	}
	s.view.Width, s.view.Height = width, height
	s.surf.SetWidth(s.view.PlotWidth())
}

func (s *Session) setView(xMin, xMax float64) {
	if xMax <= xMin {
		return
	}
	s.view.XMin, s.view.XMax = xMin, xMax
	s.surf.SetAxisRange(xMin, xMax)
	s.surf.RequestRedraw()
}

// Status is a one-line summary for the window footer
func (s *Session) Status() string {
	parts := []string{s.name}
	if p := s.reg.Placement(); p != cursor.PlaceNone {
		parts = append(parts, "place "+p.String())
	}
	if s.fixed {
		parts = append(parts, "fixed")
	}
	if s.surf.NavigationTool() != "" {
		parts = append(parts, s.surf.NavigationTool())
	}
	if s.status != "" {
		parts = append(parts, s.status)
	}
	return strings.Join(parts, " | ")
}
