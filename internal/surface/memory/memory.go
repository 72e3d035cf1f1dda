// internal/surface/memory/memory.go
package memory

import (
	"math"
	"sort"
	"sync"

	"github.com/OCAP2/cursortools/internal/surface"
	"github.com/OCAP2/cursortools/pkg/core"
)

// VisualKind tells which draw call produced a visual
type VisualKind int

const (
	KindLine VisualKind = iota
	KindLabel
	KindRegion
)

// Visual is the recorded state of one drawn item
type Visual struct {
	Handle surface.Handle
	Kind   VisualKind
	X      float64 // line/label position, region low edge
	XHigh  float64 // region high edge
	Y      float64 // label height as axes fraction
	Text   string
	Line   core.LineStyle
	Label  core.LabelStyle
	Region core.RegionStyle
}

// Config sets the data range and the pixel width used for pick tolerances
type Config struct {
	Width int
	XMin  float64
	XMax  float64
}

// Surface records draw calls in memory. It backs headless runs and tests,
// and is the scene graph the desktop viewer renders from.
type Surface struct {
	mu      sync.RWMutex
	cfg     Config
	visuals map[surface.Handle]*Visual
	next    surface.Handle
	redraws int
	tool    string
}

var _ surface.Surface = (*Surface)(nil)

// New creates an empty surface
func New(cfg Config) *Surface {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.XMax <= cfg.XMin {
		cfg.XMin, cfg.XMax = 0, 1
	}
	return &Surface{
		cfg:     cfg,
		visuals: make(map[surface.Handle]*Visual),
	}
}

func (s *Surface) add(v *Visual) surface.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	v.Handle = s.next
	s.visuals[v.Handle] = v
	return v.Handle
}

// DrawVerticalLine records a vertical line at x
func (s *Surface) DrawVerticalLine(x float64, style core.LineStyle) surface.Handle {
	return s.add(&Visual{Kind: KindLine, X: x, Line: style})
}

// DrawLabel records a text label
func (s *Surface) DrawLabel(x, yAxesFraction float64, text string, style core.LabelStyle) surface.Handle {
	return s.add(&Visual{Kind: KindLabel, X: x, Y: yAxesFraction, Text: text, Label: style})
}

// DrawFilledRegion records a filled vertical band
func (s *Surface) DrawFilledRegion(xLow, xHigh float64, style core.RegionStyle) surface.Handle {
	return s.add(&Visual{Kind: KindRegion, X: xLow, XHigh: xHigh, Region: style})
}

// UpdateLine moves and restyles a line. Unknown handles are ignored.
func (s *Surface) UpdateLine(h surface.Handle, x float64, style core.LineStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.visuals[h]; ok && v.Kind == KindLine {
		v.X = x
		v.Line = style
	}
}

// UpdateLabel moves, retexts and restyles a label
func (s *Surface) UpdateLabel(h surface.Handle, x float64, text string, style core.LabelStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.visuals[h]; ok && v.Kind == KindLabel {
		v.X = x
		v.Text = text
		v.Label = style
	}
}

// UpdateRegion resizes and restyles a region
func (s *Surface) UpdateRegion(h surface.Handle, xLow, xHigh float64, style core.RegionStyle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.visuals[h]; ok && v.Kind == KindRegion {
		v.X = xLow
		v.XHigh = xHigh
		v.Region = style
	}
}

// RemoveVisual forgets a visual
func (s *Surface) RemoveVisual(h surface.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.visuals, h)
}

// Hit tests a line against its pick radius and a region against its extent.
// Labels are never hit.
func (s *Surface) Hit(h surface.Handle, ev core.PointerEvent) bool {
	if !ev.InAxes {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.visuals[h]
	if !ok {
		return false
	}
	switch v.Kind {
	case KindLine:
		return math.Abs(ev.X-v.X) <= v.Line.PickRadius*s.dataPerPixel()
	case KindRegion:
		lo, hi := math.Min(v.X, v.XHigh), math.Max(v.X, v.XHigh)
		return ev.X >= lo && ev.X <= hi
	default:
		return false
	}
}

func (s *Surface) dataPerPixel() float64 {
	return (s.cfg.XMax - s.cfg.XMin) / float64(s.cfg.Width)
}

// AxisRange returns the current data range of the x axis
func (s *Surface) AxisRange() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.XMin, s.cfg.XMax
}

// SetAxisRange changes the data range, as a zoom or pan would
func (s *Surface) SetAxisRange(min, max float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.XMin, s.cfg.XMax = min, max
}

// Width returns the pixel width of the plot area
func (s *Surface) Width() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Width
}

// SetWidth changes the plot pixel width used for pick tolerances
func (s *Surface) SetWidth(width int) {
	if width <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Width = width
}

// RequestRedraw counts redraw requests
func (s *Surface) RequestRedraw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redraws++
}

// Redraws returns how many redraws have been requested
func (s *Surface) Redraws() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.redraws
}

// NavigationTool returns the active navigation tool
func (s *Surface) NavigationTool() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tool
}

// SetNavigationTool activates a tool by name; "" deactivates.
func (s *Surface) SetNavigationTool(tool string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tool = tool
}

// Visual returns a copy of the visual behind h
func (s *Surface) Visual(h surface.Handle) (Visual, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.visuals[h]
	if !ok {
		return Visual{}, false
	}
	return *v, true
}

// Visuals returns copies of all visuals in draw order
func (s *Surface) Visuals() []Visual {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Visual, 0, len(s.visuals))
	for _, v := range s.visuals {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// Count returns the number of visuals of the given kind
func (s *Surface) Count(kind VisualKind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, v := range s.visuals {
		if v.Kind == kind {
			n++
		}
	}
	return n
}
