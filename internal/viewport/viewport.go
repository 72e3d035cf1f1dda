// Package viewport maps between window pixels and data coordinates for the
// desktop viewer, and turns style strings into drawable patterns and colors.
package viewport

import (
	"image"

	"github.com/OCAP2/cursortools/pkg/core"
)

// Margins around the plot area, in pixels
type Margins struct {
	Left, Right, Top, Bottom int
}

// DefaultMargins leave room for labels above the plot and ticks below it
var DefaultMargins = Margins{Left: 40, Right: 20, Top: 40, Bottom: 30}

// Viewport is a window of Width x Height pixels showing [XMin, XMax] on the x axis
type Viewport struct {
	Width, Height int
	Margins       Margins
	XMin, XMax    float64
}

// New creates a viewport with the default margins
func New(width, height int, xMin, xMax float64) Viewport {
	if xMax <= xMin {
		xMin, xMax = 0, 1
	}
	return Viewport{Width: width, Height: height, Margins: DefaultMargins, XMin: xMin, XMax: xMax}
}

// Plot returns the plot area in window pixels
func (v Viewport) Plot() image.Rectangle {
	r := image.Rect(v.Margins.Left, v.Margins.Top, v.Width-v.Margins.Right, v.Height-v.Margins.Bottom)
	if r.Dx() < 1 {
		r.Max.X = r.Min.X + 1
	}
	if r.Dy() < 1 {
		r.Max.Y = r.Min.Y + 1
	}
	return r
}

// PlotWidth is the plot area width in pixels
func (v Viewport) PlotWidth() int {
	return v.Plot().Dx()
}

// ToData converts a window x pixel to a data x coordinate
func (v Viewport) ToData(px float64) float64 {
	p := v.Plot()
	return v.XMin + (px-float64(p.Min.X))/float64(p.Dx())*(v.XMax-v.XMin)
}

// ToPixel converts a data x coordinate to a window x pixel
func (v Viewport) ToPixel(x float64) float64 {
	p := v.Plot()
	return float64(p.Min.X) + (x-v.XMin)/(v.XMax-v.XMin)*float64(p.Dx())
}

// AxesY converts a fraction of the plot height (0 bottom, 1 top) to a window y pixel
func (v Viewport) AxesY(frac float64) float64 {
	p := v.Plot()
	return float64(p.Max.Y) - frac*float64(p.Dy())
}

// InPlot reports whether a window pixel lies inside the plot area
func (v Viewport) InPlot(px, py int) bool {
	return image.Pt(px, py).In(v.Plot())
}

// Event builds a pointer event from window pixel coordinates. Y is reported
// as a fraction of the plot height.
func (v Viewport) Event(t core.EventType, b core.Button, px, py int) core.PointerEvent {
	ev := core.PointerEvent{Type: t, Button: b, InAxes: v.InPlot(px, py)}
	if ev.InAxes {
		p := v.Plot()
		ev.X = v.ToData(float64(px))
		ev.Y = float64(p.Max.Y-py) / float64(p.Dy())
	}
	return ev
}

// Pan shifts the x range by a pixel distance; positive dpx moves the view left
func (v Viewport) Pan(dpx float64) Viewport {
	d := dpx / float64(v.PlotWidth()) * (v.XMax - v.XMin)
	v.XMin -= d
	v.XMax -= d
	return v
}

// Zoom scales the x range by factor around the data coordinate at window pixel px.
// A factor below 1 zooms in.
func (v Viewport) Zoom(factor, px float64) Viewport {
	if factor <= 0 {
		return v
	}
	c := v.ToData(px)
	v.XMin = c - (c-v.XMin)*factor
	v.XMax = c + (v.XMax-c)*factor
	return v
}

// Ticks returns up to n evenly spaced data positions across the x range
func (v Viewport) Ticks(n int) []float64 {
	if n < 2 {
		return []float64{v.XMin}
	}
	out := make([]float64, n)
	step := (v.XMax - v.XMin) / float64(n-1)
	for i := range out {
		out[i] = v.XMin + float64(i)*step
	}
	return out
}
