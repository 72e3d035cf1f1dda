// Package layout converts a marker registry to and from tabular records.
package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/OCAP2/cursortools/internal/cursor"
	"github.com/OCAP2/cursortools/pkg/core"
)

var (
	// ErrUnpairedEndpoint is returned when span endpoint rows do not come in pairs.
	ErrUnpairedEndpoint = errors.New("unpaired span endpoint record")

	// ErrInvalidRecord is returned for rows with an unknown type or mode or a missing column.
	ErrInvalidRecord = errors.New("invalid marker record")
)

// LoadResult lists what Load installed
type LoadResult struct {
	Markers []*cursor.Marker
	Spans   []*cursor.Span
}

// Save returns one record per marker, ordered by display id. The two endpoints
// of a span are written next to each other, low first, at the place of the
// smaller id, so Load can pair them by order. Markers without an id get ID 0.
func Save(reg *cursor.Registry) []core.MarkerRecord {
	if reg == nil {
		return nil
	}

	markers := reg.Markers()
	sort.SliceStable(markers, func(i, j int) bool {
		return recordID(markers[i]) < recordID(markers[j])
	})

	out := make([]core.MarkerRecord, 0, len(markers))
	written := make(map[cursor.MarkerHandle]bool, len(markers))
	for _, m := range markers {
		if written[m.Handle()] {
			continue
		}
		s, ok := m.Span()
		if !ok {
			out = append(out, toRecord(m))
			written[m.Handle()] = true
			continue
		}
		for _, e := range []*cursor.Marker{s.Low(), s.High()} {
			out = append(out, toRecord(e))
			written[e.Handle()] = true
		}
	}
	return out
}

func recordID(m *cursor.Marker) int {
	id, _ := m.DisplayID()
	return id
}

func toRecord(m *cursor.Marker) core.MarkerRecord {
	return core.MarkerRecord{
		ID:       recordID(m),
		Tag:      m.Tag(),
		Position: m.Position(),
		Type:     m.Kind(),
		Mode:     m.Mode(),
		Color:    m.Color(),
	}
}

// Validate checks a record set without touching any registry.
func Validate(records []core.MarkerRecord) error {
	pending := -1
	for i, rec := range records {
		switch rec.Type {
		case core.KindStandalone:
		case core.KindSpanEndpoint:
			if pending < 0 {
				pending = i
			} else {
				pending = -1
			}
		default:
			return fmt.Errorf("%w: row %d: type %s", ErrInvalidRecord, i, rec.Type)
		}
		if rec.Mode != core.ModeInteract && rec.Mode != core.ModeFixed {
			return fmt.Errorf("%w: row %d: mode %s", ErrInvalidRecord, i, rec.Mode)
		}
	}
	if pending >= 0 {
		return fmt.Errorf("%w: row %d", ErrUnpairedEndpoint, pending)
	}
	return nil
}

// Load recreates the markers and spans described by records on reg. Display
// ids are assigned by reg; the recorded ids are not reused. Span endpoint rows
// are paired in order, the first of a pair becoming the low endpoint. The
// whole record set is validated first, so a failed load installs nothing.
func Load(reg *cursor.Registry, records []core.MarkerRecord) (LoadResult, error) {
	var res LoadResult
	if reg == nil {
		return res, cursor.ErrNoRegistry
	}
	if err := Validate(records); err != nil {
		return res, err
	}

	var first *core.MarkerRecord
	for i := range records {
		rec := &records[i]
		if rec.Type == core.KindStandalone {
			m, err := cursor.NewMarker(reg, rec.Position, cursor.MarkerProps{Color: rec.Color, Mode: rec.Mode})
			if err != nil {
				return res, err
			}
			apply(m, rec)
			res.Markers = append(res.Markers, m)
			continue
		}

		if first == nil {
			first = rec
			continue
		}
		s, err := cursor.NewSpan(reg, first.Position, rec.Position, cursor.MarkerProps{}, cursor.SpanProps{Color: rec.Color})
		if err != nil {
			return res, err
		}
		apply(s.Low(), first)
		apply(s.High(), rec)
		res.Spans = append(res.Spans, s)
		first = nil
	}
	return res, nil
}

func apply(m *cursor.Marker, rec *core.MarkerRecord) {
	m.SetMode(rec.Mode)
	if rec.Color != "" {
		m.SetColor(rec.Color)
	}
	m.SetLabel(rec.Tag, true)
}
