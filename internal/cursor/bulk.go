package cursor

import (
	"fmt"
	"strings"

	"github.com/OCAP2/cursortools/pkg/core"
)

// SetInteractionMode applies mode to the selected markers and returns how many
// were changed. Ids that match nothing are skipped.
func SetInteractionMode(reg *Registry, mode core.Mode, sel Selector) int {
	if reg == nil {
		return 0
	}
	if sel.all {
		markers := reg.Markers()
		for _, m := range markers {
			m.SetMode(mode)
		}
		return len(markers)
	}

	n := 0
	for _, id := range sel.ids {
		matched := false
		for _, m := range reg.Markers() {
			if mid, ok := m.DisplayID(); ok && mid == id {
				m.SetMode(mode)
				matched = true
				n++
			}
		}
		if !matched {
			reg.log.Debug("selector id matched no marker", "id", id)
		}
	}
	return n
}

// AllPositions returns the position of every marker on the registry's surface.
func AllPositions(reg *Registry) []float64 {
	if reg == nil {
		return nil
	}
	out := make([]float64, 0, len(reg.markers))
	for _, m := range reg.markers {
		out = append(out, m.pos)
	}
	return out
}

// PositionsByLabel returns the positions of markers whose label text contains substr.
func PositionsByLabel(reg *Registry, substr string) []float64 {
	if reg == nil {
		return nil
	}
	var out []float64
	for _, m := range reg.Markers() {
		if strings.Contains(m.text, substr) {
			out = append(out, m.pos)
		}
	}
	return out
}

// FindByDisplayID returns the marker showing id.
func FindByDisplayID(reg *Registry, id int) (*Marker, error) {
	return findOne(reg, func(m *Marker) bool {
		mid, ok := m.DisplayID()
		return ok && mid == id
	}, fmt.Sprintf("id %d", id))
}

// FindByText returns the marker whose full label text equals text.
func FindByText(reg *Registry, text string) (*Marker, error) {
	return findOne(reg, func(m *Marker) bool { return m.text == text }, fmt.Sprintf("text %q", text))
}

func findOne(reg *Registry, match func(*Marker) bool, what string) (*Marker, error) {
	if reg == nil {
		return nil, ErrNoRegistry
	}
	var found *Marker
	for _, m := range reg.Markers() {
		if !match(m) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguous, what)
		}
		found = m
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return found, nil
}

// SetTag sets the label prefix of one marker. target is a display id, the
// marker's exact full text, or the *Marker itself. A span endpoint target tags
// both endpoints of its span.
func SetTag(reg *Registry, target any, prefix string, keepID bool) error {
	var (
		m   *Marker
		err error
	)
	switch t := target.(type) {
	case int:
		m, err = FindByDisplayID(reg, t)
	case string:
		m, err = FindByText(reg, t)
	case *Marker:
		if t == nil {
			return fmt.Errorf("%w: nil marker", ErrInvalidSelector)
		}
		if t.removed {
			return ErrRemoved
		}
		m = t
	default:
		return fmt.Errorf("%w: %T", ErrInvalidSelector, target)
	}
	if err != nil {
		return err
	}

	if s, ok := m.Span(); ok {
		return s.SetLabel(prefix, keepID)
	}
	return m.SetLabel(prefix, keepID)
}
