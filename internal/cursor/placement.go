package cursor

import (
	"github.com/OCAP2/cursortools/pkg/core"
)

// PlacementMode selects what a middle-button press creates
type PlacementMode int

const (
	PlaceNone PlacementMode = iota
	PlaceCursor
	PlaceSpan
)

func (p PlacementMode) String() string {
	switch p {
	case PlaceCursor:
		return "cursor"
	case PlaceSpan:
		return "span"
	default:
		return "none"
	}
}

// Placement returns the armed placement mode
func (r *Registry) Placement() PlacementMode {
	return r.placementMode
}

// ArmPlacement installs the surface-wide placement handler. Only one handler is
// active per registry; arming again replaces the previous one.
func (r *Registry) ArmPlacement(mode PlacementMode, mp MarkerProps, sp SpanProps) error {
	if r.events == nil {
		return ErrNoEventSource
	}
	r.DisarmPlacement()
	if mode == PlaceNone {
		return nil
	}

	r.placementMode = mode
	r.placement = r.events.Subscribe(core.EventPress, func(ev core.PointerEvent) {
		if ev.Button != core.ButtonMiddle || !ev.InAxes {
			return
		}
		switch mode {
		case PlaceCursor:
			_, _ = NewMarker(r, ev.X, mp)
		case PlaceSpan:
			_, _ = PlaceSpanAt(r, ev.X, mp, sp)
		}
	})
	r.log.Debug("placement armed", "mode", mode.String())
	return nil
}

// DisarmPlacement releases the placement handler, if any
func (r *Registry) DisarmPlacement() {
	if r.placementMode == PlaceNone {
		return
	}
	if r.events != nil {
		r.events.Unsubscribe(r.placement)
	}
	r.placement = 0
	r.placementMode = PlaceNone
}

func (r *Registry) spanWidth() float64 {
	lo, hi := r.surface.AxisRange()
	return (hi - lo) / r.cfg.Styles.SpanWidthDivisor
}

// PlaceCursorCentered places a standalone marker at the center of the axis range.
func PlaceCursorCentered(reg *Registry, props MarkerProps) (*Marker, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}
	lo, hi := reg.surface.AxisRange()
	return NewMarker(reg, (lo+hi)/2, props)
}

// PlaceSpanAt places a span centered on x, one span width wide.
func PlaceSpanAt(reg *Registry, x float64, mp MarkerProps, sp SpanProps) (*Span, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}
	half := reg.spanWidth() / 2
	return NewSpan(reg, x-half, x+half, mp, sp)
}

// PlaceSpanCentered places a span at center ± one span width
func PlaceSpanCentered(reg *Registry, mp MarkerProps, sp SpanProps) (*Span, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}
	lo, hi := reg.surface.AxisRange()
	center, w := (lo+hi)/2, reg.spanWidth()
	return NewSpan(reg, center-w, center+w, mp, sp)
}
