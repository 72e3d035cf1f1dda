// pkg/core/pointer.go
package core

// Button identifies a pointer button. Values follow the common 1/2/3 numbering.
type Button int

const (
	ButtonNone      Button = 0
	ButtonPrimary   Button = 1
	ButtonMiddle    Button = 2
	ButtonSecondary Button = 3
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// EventType is the kind of pointer event delivered by the host
type EventType int

const (
	EventPress EventType = iota
	EventRelease
	EventMotion
)

func (t EventType) String() string {
	switch t {
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	case EventMotion:
		return "motion"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer event already transformed to data coordinates.
// X and Y are only meaningful when InAxes is true.
type PointerEvent struct {
	Type   EventType
	Button Button
	X      float64
	Y      float64
	InAxes bool
}
