// Package surface defines what the cursor engine needs from a host plotting surface.
package surface

import "github.com/OCAP2/cursortools/pkg/core"

// Handle identifies a visual the host has drawn. Zero is never a valid handle.
type Handle uint64

// Surface is the host plotting area. All calls are synchronous: when a call returns
// the host reflects the requested state.
type Surface interface {
	// Drawing
	DrawVerticalLine(x float64, style core.LineStyle) Handle
	DrawLabel(x, yAxesFraction float64, text string, style core.LabelStyle) Handle
	DrawFilledRegion(xLow, xHigh float64, style core.RegionStyle) Handle

	// Updates to existing visuals
	UpdateLine(h Handle, x float64, style core.LineStyle)
	UpdateLabel(h Handle, x float64, text string, style core.LabelStyle)
	UpdateRegion(h Handle, xLow, xHigh float64, style core.RegionStyle)
	RemoveVisual(h Handle)

	// Hit reports whether the pointer event lands on the visual, using the
	// visual's pick tolerance in screen space.
	Hit(h Handle, ev core.PointerEvent) bool

	AxisRange() (min, max float64)
	RequestRedraw()

	// NavigationTool returns the active pan/zoom tool, or "" when none is active.
	NavigationTool() string
}

// Subscription identifies a registered pointer-event callback
type Subscription uint64

// EventSource delivers host pointer events to subscribers in emission order.
type EventSource interface {
	Subscribe(t core.EventType, fn func(core.PointerEvent)) Subscription
	Unsubscribe(s Subscription)
}
