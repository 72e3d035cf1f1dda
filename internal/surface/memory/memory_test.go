package memory

import (
	"testing"

	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSurface() *Surface {
	// 100 px over 10 data units: 0.1 units per pixel
	return New(Config{Width: 100, XMin: 0, XMax: 10})
}

func press(x float64) core.PointerEvent {
	return core.PointerEvent{Type: core.EventPress, Button: core.ButtonPrimary, X: x, InAxes: true}
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{})
	min, max := s.AxisRange()
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 1.0, max)
	assert.Equal(t, 800, s.Width())
}

func TestDrawAndUpdateLine(t *testing.T) {
	s := newTestSurface()

	h := s.DrawVerticalLine(2, core.LineStyle{Color: "red", PickRadius: 10})
	require.NotZero(t, h)

	s.UpdateLine(h, 4, core.LineStyle{Color: "blue", PickRadius: 10})

	v, ok := s.Visual(h)
	require.True(t, ok)
	assert.Equal(t, KindLine, v.Kind)
	assert.Equal(t, 4.0, v.X)
	assert.Equal(t, "blue", v.Line.Color)
}

func TestUpdate_WrongKindIgnored(t *testing.T) {
	s := newTestSurface()
	h := s.DrawLabel(1, 1.04, "(1)", core.LabelStyle{})

	s.UpdateLine(h, 5, core.LineStyle{})

	v, _ := s.Visual(h)
	assert.Equal(t, 1.0, v.X)
}

func TestHit_LineWithinPickRadius(t *testing.T) {
	s := newTestSurface()
	h := s.DrawVerticalLine(5, core.LineStyle{PickRadius: 10})

	assert.True(t, s.Hit(h, press(5)))
	assert.True(t, s.Hit(h, press(5.9)))
	assert.False(t, s.Hit(h, press(6.2)))

	outside := press(5)
	outside.InAxes = false
	assert.False(t, s.Hit(h, outside))
}

func TestHit_RegionEitherOrientation(t *testing.T) {
	s := newTestSurface()
	h := s.DrawFilledRegion(6, 2, core.RegionStyle{})

	assert.True(t, s.Hit(h, press(4)))
	assert.False(t, s.Hit(h, press(7)))
}

func TestHit_LabelNeverHit(t *testing.T) {
	s := newTestSurface()
	h := s.DrawLabel(5, 1.04, "(1)", core.LabelStyle{})
	assert.False(t, s.Hit(h, press(5)))
}

func TestRemoveVisual(t *testing.T) {
	s := newTestSurface()
	h := s.DrawVerticalLine(1, core.LineStyle{})
	s.DrawFilledRegion(1, 2, core.RegionStyle{})

	s.RemoveVisual(h)

	_, ok := s.Visual(h)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Count(KindLine))
	assert.Equal(t, 1, s.Count(KindRegion))
	assert.Len(t, s.Visuals(), 1)
}

func TestRedrawsAndTool(t *testing.T) {
	s := newTestSurface()
	s.RequestRedraw()
	s.RequestRedraw()
	assert.Equal(t, 2, s.Redraws())

	assert.Equal(t, "", s.NavigationTool())
	s.SetNavigationTool("pan")
	assert.Equal(t, "pan", s.NavigationTool())
}

func TestSetWidth_ScalesPickRadius(t *testing.T) {
	s := newTestSurface()
	h := s.DrawVerticalLine(5, core.LineStyle{PickRadius: 10})
	assert.False(t, s.Hit(h, press(6.5)))

	// 50 px over 10 units doubles the data distance of the pick radius
	s.SetWidth(50)
	assert.Equal(t, 50, s.Width())
	assert.True(t, s.Hit(h, press(6.5)))

	s.SetWidth(0)
	assert.Equal(t, 50, s.Width())
}
