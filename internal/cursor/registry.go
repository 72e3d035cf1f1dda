// Package cursor implements draggable position markers and linked marker pairs
// (spans) on a host plotting surface.
//
// A Registry is the arena that owns every Marker and Span attached to one surface.
// Markers and spans refer to each other by handle; only the registry holds them.
// All methods must be called from the goroutine that delivers the surface's
// pointer events; the registry does no locking of its own.
package cursor

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/OCAP2/cursortools/internal/surface"
	"github.com/OCAP2/cursortools/internal/tag"
)

// MarkerHandle is a process-unique, stable identity for a marker. It is not the display id.
type MarkerHandle uint64

// SpanHandle is a stable identity for a span
type SpanHandle uint64

// Registry holds the markers and spans of one plotting surface
type Registry struct {
	surface surface.Surface
	events  surface.EventSource
	cfg     Config
	log     *slog.Logger

	markers map[MarkerHandle]*Marker
	spans   map[SpanHandle]*Span
	next    uint64

	placement     surface.Subscription
	placementMode PlacementMode
}

// NewRegistry creates an empty registry for s. events may be nil, in which case
// markers are placed and edited programmatically only.
func NewRegistry(s surface.Surface, events surface.EventSource, cfg Config) *Registry {
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.Styles.SpanWidthDivisor <= 0 {
		cfg.Styles.SpanWidthDivisor = DefaultConfig().Styles.SpanWidthDivisor
	}
	return &Registry{
		surface: s,
		events:  events,
		cfg:     cfg,
		log:     log,
		markers: make(map[MarkerHandle]*Marker),
		spans:   make(map[SpanHandle]*Span),
	}
}

// Surface returns the surface the registry draws on
func (r *Registry) Surface() surface.Surface {
	return r.surface
}

func (r *Registry) nextHandle() uint64 {
	r.next++
	return r.next
}

// Len returns the number of markers, span endpoints included
func (r *Registry) Len() int {
	return len(r.markers)
}

// Marker returns the live marker behind h
func (r *Registry) Marker(h MarkerHandle) (*Marker, bool) {
	m, ok := r.markers[h]
	return m, ok
}

// Span returns the live span behind h
func (r *Registry) Span(h SpanHandle) (*Span, bool) {
	s, ok := r.spans[h]
	return s, ok
}

// Markers returns all markers ordered by display id. Markers without an id
// come last, in creation order.
func (r *Registry) Markers() []*Marker {
	out := make([]*Marker, 0, len(r.markers))
	for _, m := range r.markers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		a, aok := out[i].DisplayID()
		b, bok := out[j].DisplayID()
		switch {
		case aok && bok && a != b:
			return a < b
		case aok != bok:
			return aok
		default:
			return out[i].handle < out[j].handle
		}
	})
	return out
}

// Spans returns all spans in creation order
func (r *Registry) Spans() []*Span {
	out := make([]*Span, 0, len(r.spans))
	for _, s := range r.spans {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].handle < out[j].handle })
	return out
}

// displayIDs collects the ids currently shown in marker labels
func (r *Registry) displayIDs() []int {
	ids := make([]int, 0, len(r.markers))
	for _, m := range r.markers {
		if id, ok := m.DisplayID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// checkLabel fails when text carries an id shown by a marker other than owners
func (r *Registry) checkLabel(text string, owners ...*Marker) error {
	id, ok := tag.ParseDisplayID(text)
	if !ok {
		return nil
	}
next:
	for _, m := range r.markers {
		for _, o := range owners {
			if m == o {
				continue next
			}
		}
		if other, ok := m.DisplayID(); ok && other == id {
			return fmt.Errorf("%w: %d", ErrDuplicateID, id)
		}
	}
	return nil
}

func (r *Registry) allocateDisplayID() int {
	return tag.NextDisplayID(r.displayIDs())
}

// RemoveAll deletes every span and marker and disarms placement.
func (r *Registry) RemoveAll() {
	r.DisarmPlacement()
	for _, s := range r.Spans() {
		s.Delete()
	}
	for _, m := range r.Markers() {
		m.Remove()
	}
}
