package cursor

import (
	"fmt"
	"math"

	"github.com/OCAP2/cursortools/internal/surface"
	"github.com/OCAP2/cursortools/internal/tag"
	"github.com/OCAP2/cursortools/pkg/core"
)

// Span is a pair of endpoint markers with a filled region between them.
// Either endpoint may be dragged past the other; the region always covers
// [min, max] of the two positions.
type Span struct {
	reg    *Registry
	handle SpanHandle

	low   MarkerHandle
	high  MarkerHandle
	color string
	style core.RegionStyle

	regionVis surface.Handle
	lo, hi    float64
	subs      []surface.Subscription
	removed   bool
}

// NewSpan places a span with endpoints at lowPos and highPos.
func NewSpan(reg *Registry, lowPos, highPos float64, mp MarkerProps, sp SpanProps) (*Span, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}

	color := sp.Color
	if color == "" {
		color = mp.Color
	}
	if color == "" {
		color = reg.cfg.Styles.Cursor.Color
	}
	if mp.Color == "" {
		mp.Color = color
	}

	s := &Span{
		reg:    reg,
		handle: SpanHandle(reg.nextHandle()),
		color:  color,
		style:  reg.regionStyle(sp, color),
	}

	low := reg.newMarker(lowPos, core.KindSpanEndpoint, mp)
	high := reg.newMarker(highPos, core.KindSpanEndpoint, mp)
	low.span = s.handle
	high.span = s.handle
	s.low = low.handle
	s.high = high.handle

	s.lo, s.hi = math.Min(lowPos, highPos), math.Max(lowPos, highPos)
	s.regionVis = reg.surface.DrawFilledRegion(s.lo, s.hi, s.style)
	reg.spans[s.handle] = s
	s.connect()

	reg.surface.RequestRedraw()
	reg.log.Debug("span created", "low", lowPos, "high", highPos)
	return s, nil
}

// Handle returns the span's stable identity
func (s *Span) Handle() SpanHandle {
	return s.handle
}

// Low returns the endpoint created at the low position
func (s *Span) Low() *Marker {
	return s.reg.markers[s.low]
}

// High returns the endpoint created at the high position
func (s *Span) High() *Marker {
	return s.reg.markers[s.high]
}

// Color returns the shared span color
func (s *Span) Color() string {
	return s.color
}

// Region returns the current extent of the filled region
func (s *Span) Region() (lo, hi float64) {
	return s.lo, s.hi
}

// Removed reports whether the span has been deleted
func (s *Span) Removed() bool {
	return s.removed
}

// Tag returns the span tag, read from the low endpoint
func (s *Span) Tag() string {
	if low := s.Low(); low != nil {
		return low.Tag()
	}
	return ""
}

// SetColor recolors both endpoints and the region edge
func (s *Span) SetColor(color string) {
	if s.removed {
		return
	}
	s.color = color
	s.style.EdgeColor = color
	for _, m := range s.endpoints() {
		m.SetColor(color)
	}
	s.reg.surface.UpdateRegion(s.regionVis, s.lo, s.hi, s.style)
	s.reg.surface.RequestRedraw()
}

// SetLabel applies the same label prefix to both endpoints. Either both
// labels change or neither does.
func (s *Span) SetLabel(prefix string, keepID bool) error {
	if s.removed {
		return ErrRemoved
	}
	ends := s.endpoints()
	texts := make([]string, len(ends))
	seen := make(map[int]bool, len(ends))
	for i, m := range ends {
		texts[i] = m.labelText(prefix, keepID)
		if err := s.reg.checkLabel(texts[i], ends...); err != nil {
			return err
		}
		if id, ok := tag.ParseDisplayID(texts[i]); ok {
			if seen[id] {
				return fmt.Errorf("%w: %d", ErrDuplicateID, id)
			}
			seen[id] = true
		}
	}
	for i, m := range ends {
		if texts[i] != m.text {
			m.text = texts[i]
			m.refresh()
		}
	}
	return nil
}

// Update recomputes the filled region from the endpoint positions.
func (s *Span) Update() {
	if s.removed {
		return
	}
	low, high := s.Low(), s.High()
	if low == nil || high == nil {
		return
	}
	s.lo = math.Min(low.pos, high.pos)
	s.hi = math.Max(low.pos, high.pos)
	s.reg.surface.UpdateRegion(s.regionVis, s.lo, s.hi, s.style)
	s.reg.surface.RequestRedraw()
}

// Delete removes both endpoints and the region and unregisters the span.
// It is the only path by which a span endpoint leaves the registry.
func (s *Span) Delete() {
	if s.removed {
		return
	}
	s.removed = true
	s.disconnect()
	for _, m := range s.endpoints() {
		m.detach()
	}
	s.reg.surface.RemoveVisual(s.regionVis)
	delete(s.reg.spans, s.handle)
	s.reg.surface.RequestRedraw()
	s.reg.log.Debug("span deleted", "low", s.lo, "high", s.hi)
}

func (s *Span) endpoints() []*Marker {
	out := make([]*Marker, 0, 2)
	if low := s.Low(); low != nil {
		out = append(out, low)
	}
	if high := s.High(); high != nil {
		out = append(out, high)
	}
	return out
}
