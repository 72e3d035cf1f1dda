package viewport

import (
	"image/color"
	"strconv"
	"strings"
)

// DashPattern converts a line style name to on/off lengths in pixels.
// Solid styles return nil.
func DashPattern(style string) []float64 {
	switch strings.TrimSpace(style) {
	case "--", "dashed":
		return []float64{6, 4}
	case "-.", "dashdot":
		return []float64{6, 3, 1.5, 3}
	case ":", "dotted":
		return []float64{1.5, 3}
	default:
		return nil
	}
}

// Segments splits the vertical run from y0 to y1 into the drawn pieces of a
// dash pattern. A nil pattern yields one piece.
func Segments(y0, y1 float64, pattern []float64) [][2]float64 {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if len(pattern) == 0 {
		return [][2]float64{{y0, y1}}
	}
	var total float64
	for _, p := range pattern {
		total += p
	}
	if total <= 0 {
		return [][2]float64{{y0, y1}}
	}

	var out [][2]float64
	y, i := y0, 0
	for y < y1 {
		end := y + pattern[i%len(pattern)]
		if end > y1 {
			end = y1
		}
		if i%2 == 0 {
			out = append(out, [2]float64{y, end})
		}
		y = end
		i++
	}
	return out
}

var namedColors = map[string]color.NRGBA{
	"red":     {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"green":   {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"blue":    {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	"orange":  {R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	"purple":  {R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	"cyan":    {R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
	"magenta": {R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	"yellow":  {R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	"black":   {R: 0, G: 0, B: 0, A: 0xff},
	"white":   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"gray":    {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	"grey":    {R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	"k":       {R: 0, G: 0, B: 0, A: 0xff},
	"r":       {R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	"g":       {R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	"b":       {R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
}

// ParseColor understands a few color names and #rgb / #rrggbb / #rrggbbaa.
// "none" and unknown names report ok=false.
func ParseColor(s string) (c color.NRGBA, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return c, false
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return c, false
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return c, false
	}
	return color.NRGBA{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, true
}

// WithAlpha scales a color's opacity by alpha in [0,1]
func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(float64(c.A) * alpha)
	return c
}
