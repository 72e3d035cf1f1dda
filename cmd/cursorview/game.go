package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	memsurface "github.com/OCAP2/cursortools/internal/surface/memory"
	"github.com/OCAP2/cursortools/internal/viewer"
	"github.com/OCAP2/cursortools/internal/viewport"
	"github.com/OCAP2/cursortools/pkg/core"
)

// debug font cell size
const glyphW, glyphH = 6, 16

var (
	background = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff}
	axisColor  = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb8, A: 0xff}
	fallback   = color.NRGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

var buttons = []struct {
	mouse  ebiten.MouseButton
	button core.Button
}{
	{ebiten.MouseButtonLeft, core.ButtonPrimary},
	{ebiten.MouseButtonMiddle, core.ButtonMiddle},
	{ebiten.MouseButtonRight, core.ButtonSecondary},
}

var keys = []struct {
	key    ebiten.Key
	ctrl   bool
	action viewer.Action
}{
	{ebiten.KeyS, true, viewer.ActionSave},
	{ebiten.KeyC, false, viewer.ActionArmCursor},
	{ebiten.KeyS, false, viewer.ActionArmSpan},
	{ebiten.KeyF, false, viewer.ActionToggleFixed},
	{ebiten.KeyP, false, viewer.ActionTogglePan},
	{ebiten.KeyR, false, viewer.ActionResetView},
	{ebiten.KeyEscape, false, viewer.ActionDisarm},
}

type game struct {
	sess *viewer.Session
	log  *slog.Logger
}

func (g *game) Update() error {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	for _, k := range keys {
		if k.ctrl != ctrl || !inpututil.IsKeyJustPressed(k.key) {
			continue
		}
		if err := g.sess.Do(k.action); err != nil {
			g.log.Error("Command failed", "action", k.action.String(), "error", err)
		}
	}

	x, y := ebiten.CursorPosition()
	g.sess.Pointer(core.EventMotion, core.ButtonNone, x, y)
	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.mouse) {
			g.sess.Pointer(core.EventPress, b.button, x, y)
		}
		if inpututil.IsMouseButtonJustReleased(b.mouse) {
			g.sess.Pointer(core.EventRelease, b.button, x, y)
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.sess.Scroll(dy, x)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	v := g.sess.View()

	drawAxes(screen, v)

	// regions under lines under labels
	visuals := g.sess.Surface().Visuals()
	for _, kind := range []memsurface.VisualKind{memsurface.KindRegion, memsurface.KindLine, memsurface.KindLabel} {
		for _, vis := range visuals {
			if vis.Kind != kind {
				continue
			}
			switch kind {
			case memsurface.KindRegion:
				drawRegion(screen, v, vis)
			case memsurface.KindLine:
				drawLine(screen, v, vis)
			case memsurface.KindLabel:
				drawLabel(screen, v, vis)
			}
		}
	}

	ebitenutil.DebugPrintAt(screen, g.sess.Status(), v.Margins.Left, v.Height-glyphH-2)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sess.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func drawAxes(screen *ebiten.Image, v viewport.Viewport) {
	p := v.Plot()
	vector.StrokeRect(screen, float32(p.Min.X), float32(p.Min.Y), float32(p.Dx()), float32(p.Dy()), 1, axisColor, false)

	for _, x := range v.Ticks(5) {
		px := float32(v.ToPixel(x))
		vector.StrokeLine(screen, px, float32(p.Max.Y), px, float32(p.Max.Y+4), 1, axisColor, false)
		text := fmt.Sprintf("%.3g", x)
		ebitenutil.DebugPrintAt(screen, text, int(px)-len(text)*glyphW/2, p.Max.Y+4)
	}
}

func inside(v viewport.Viewport, px float64) bool {
	p := v.Plot()
	return px >= float64(p.Min.X) && px <= float64(p.Max.X)
}

// dashedVLine draws a vertical line at px from y0 to y1 with a line style
func dashedVLine(screen *ebiten.Image, px, y0, y1 float64, width float64, dash string, clr color.Color) {
	if width <= 0 {
		width = 1
	}
	for _, seg := range viewport.Segments(y0, y1, viewport.DashPattern(dash)) {
		vector.StrokeLine(screen, float32(px), float32(seg[0]), float32(px), float32(seg[1]), float32(width), clr, true)
	}
}

func drawLine(screen *ebiten.Image, v viewport.Viewport, vis memsurface.Visual) {
	px := v.ToPixel(vis.X)
	if !inside(v, px) {
		return
	}
	clr, ok := viewport.ParseColor(vis.Line.Color)
	if !ok {
		clr = fallback
	}
	p := v.Plot()
	dashedVLine(screen, px, float64(p.Min.Y), float64(p.Max.Y), vis.Line.Width, vis.Line.Dash, clr)
}

func drawRegion(screen *ebiten.Image, v viewport.Viewport, vis memsurface.Visual) {
	p := v.Plot()
	lo := max(v.ToPixel(min(vis.X, vis.XHigh)), float64(p.Min.X))
	hi := min(v.ToPixel(max(vis.X, vis.XHigh)), float64(p.Max.X))
	if hi <= lo {
		return
	}

	edge, hasEdge := viewport.ParseColor(vis.Region.EdgeColor)
	face, hasFace := viewport.ParseColor(vis.Region.FaceColor)
	if !hasFace && hasEdge && vis.Region.Hatch != "" {
		// hatched regions read as a light wash of the edge color
		face, hasFace = edge, true
	}
	if hasFace {
		vector.DrawFilledRect(screen, float32(lo), float32(p.Min.Y), float32(hi-lo), float32(p.Dy()),
			viewport.WithAlpha(face, vis.Region.Alpha), false)
	}
	if hasEdge {
		for _, x := range []float64{lo, hi} {
			dashedVLine(screen, x, float64(p.Min.Y), float64(p.Max.Y), 1, vis.Region.Dash, edge)
		}
	}
}

func drawLabel(screen *ebiten.Image, v viewport.Viewport, vis memsurface.Visual) {
	px := v.ToPixel(vis.X)
	if !inside(v, px) || vis.Text == "" {
		return
	}
	w := len(vis.Text) * glyphW
	x := int(px) - w/2
	y := int(v.AxesY(vis.Y)) - glyphH

	if vis.Label.Boxed {
		box, ok := viewport.ParseColor(vis.Label.Color)
		if !ok {
			box = axisColor
		}
		vector.DrawFilledRect(screen, float32(x-2), float32(y), float32(w+4), glyphH,
			viewport.WithAlpha(box, 0.35), false)
	}
	ebitenutil.DebugPrintAt(screen, vis.Text, x, y)
}

