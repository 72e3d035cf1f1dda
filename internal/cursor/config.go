package cursor

import (
	"log/slog"

	"github.com/OCAP2/cursortools/pkg/core"
)

// Config holds per-registry settings. It is copied into the registry; later
// changes to the caller's value have no effect.
type Config struct {
	Styles core.Styles

	// Logger receives lifecycle and drag messages. Nil discards them.
	Logger *slog.Logger

	// OnMove is called after every drag motion that moved a marker.
	OnMove func(MoveEvent)

	// OnDragEnd is called when a drag is released.
	OnDragEnd func(m *Marker)
}

// DefaultConfig returns a Config with the built-in styles
func DefaultConfig() Config {
	return Config{Styles: core.DefaultStyles()}
}

// MoveEvent describes a marker position change made by dragging
type MoveEvent struct {
	Marker    MarkerHandle
	DisplayID int // zero when the marker has no id
	Kind      core.Kind
	From      float64 // position when the drag started
	Position  float64
}

// MarkerProps overrides the default appearance of a new marker. Zero fields keep the default.
type MarkerProps struct {
	Color string
	Mode  core.Mode
	Width float64
	Dash  string
}

// SpanProps overrides the default appearance of a new span's filled region.
type SpanProps struct {
	// Color is the span color shared by the region edge and, by default, both endpoints.
	Color     string
	FaceColor string
	Alpha     float64
	Dash      string
	Hatch     string
}

func (r *Registry) lineStyle(p MarkerProps) core.LineStyle {
	style := r.cfg.Styles.Cursor
	if p.Color != "" {
		style.Color = p.Color
	}
	if p.Width > 0 {
		style.Width = p.Width
	}
	if p.Dash != "" {
		style.Dash = p.Dash
	}
	return style
}

func (r *Registry) regionStyle(p SpanProps, color string) core.RegionStyle {
	style := r.cfg.Styles.Span
	style.EdgeColor = color
	if p.FaceColor != "" {
		style.FaceColor = p.FaceColor
	}
	if p.Alpha > 0 {
		style.Alpha = p.Alpha
	}
	if p.Dash != "" {
		style.Dash = p.Dash
	}
	if p.Hatch != "" {
		style.Hatch = p.Hatch
	}
	return style
}
