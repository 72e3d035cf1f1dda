// pkg/core/marker.go
package core

import (
	"fmt"
	"strings"
)

// Kind distinguishes a free standing cursor from one half of a span
type Kind int

const (
	KindStandalone Kind = iota
	KindSpanEndpoint
)

// String returns the record vocabulary for the kind
func (k Kind) String() string {
	switch k {
	case KindStandalone:
		return "standalone"
	case KindSpanEndpoint:
		return "span_endpoint"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a record type column into a Kind.
// The older "vertical"/"vertspan" vocabulary is accepted as well.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standalone", "vertical":
		return KindStandalone, nil
	case "span_endpoint", "vertspan":
		return KindSpanEndpoint, nil
	default:
		return 0, fmt.Errorf("unknown marker type %q", s)
	}
}

// Mode governs whether a marker reacts to the pointer
type Mode int

const (
	ModeInteract Mode = iota
	ModeFixed
)

// String returns the record vocabulary for the mode
func (m Mode) String() string {
	switch m {
	case ModeInteract:
		return "interact"
	case ModeFixed:
		return "fixed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a record mode column into a Mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "interact":
		return ModeInteract, nil
	case "fixed":
		return ModeFixed, nil
	default:
		return 0, fmt.Errorf("unknown marker mode %q", s)
	}
}

// MarkerRecord is one persisted row: a marker's identity, tag, position and appearance.
// ID is zero when the marker carries no display id.
type MarkerRecord struct {
	ID       int
	Tag      string
	Position float64
	Type     Kind
	Mode     Mode
	Color    string
}
