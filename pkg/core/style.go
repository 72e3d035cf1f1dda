// pkg/core/style.go
package core

// LineStyle describes how a cursor line is drawn and picked
type LineStyle struct {
	Color      string
	Width      float64
	Dash       string
	PickRadius float64 // pixels
}

// LabelStyle describes the text box drawn above a cursor.
// Y is a fraction of the axes height, so the label stays put while the data range changes.
type LabelStyle struct {
	Color string
	Y     float64
	Size  float64
	Boxed bool
}

// RegionStyle describes the filled region between two span endpoints
type RegionStyle struct {
	FaceColor string
	EdgeColor string
	Alpha     float64
	Dash      string
	Hatch     string
}

// Styles bundles the default appearance for newly placed markers and spans
type Styles struct {
	Cursor    LineStyle
	FixedDash string
	Label     LabelStyle
	Span      RegionStyle
	// SpanWidthDivisor sizes a freshly placed span as a fraction of the axis range
	SpanWidthDivisor float64
}

// DefaultStyles returns the built-in appearance
func DefaultStyles() Styles {
	return Styles{
		Cursor: LineStyle{
			Color:      "red",
			Width:      1.2,
			Dash:       "--",
			PickRadius: 10,
		},
		FixedDash: "-.",
		Label: LabelStyle{
			Y:     1.04,
			Size:  12,
			Boxed: true,
		},
		Span: RegionStyle{
			FaceColor: "none",
			Alpha:     0.2,
			Dash:      "dashed",
			Hatch:     `//\\`,
		},
		SpanWidthDivisor: 6,
	}
}
