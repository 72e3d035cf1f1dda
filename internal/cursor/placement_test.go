package cursor

import (
	"testing"

	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceCentered(t *testing.T) {
	h := newHarness(t, DefaultConfig())

	m, err := PlaceCursorCentered(h.reg, MarkerProps{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.Position())

	// range 20, divisor 6
	s, err := PlaceSpanCentered(h.reg, MarkerProps{}, SpanProps{})
	require.NoError(t, err)
	assert.InDelta(t, -20.0/6, s.Low().Position(), 1e-9)
	assert.InDelta(t, 20.0/6, s.High().Position(), 1e-9)

	s, err = PlaceSpanAt(h.reg, 3, MarkerProps{}, SpanProps{})
	require.NoError(t, err)
	assert.InDelta(t, 3-20.0/12, s.Low().Position(), 1e-9)
	assert.InDelta(t, 3+20.0/12, s.High().Position(), 1e-9)

	_, err = PlaceCursorCentered(nil, MarkerProps{})
	assert.ErrorIs(t, err, ErrNoRegistry)
}

func TestArmPlacement_Cursor(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.reg.ArmPlacement(PlaceCursor, MarkerProps{Color: "blue"}, SpanProps{}))
	assert.Equal(t, PlaceCursor, h.reg.Placement())

	h.press(core.ButtonPrimary, 1)
	assert.Equal(t, 0, h.reg.Len())

	h.disp.Emit(core.PointerEvent{Type: core.EventPress, Button: core.ButtonMiddle, X: 1, InAxes: false})
	assert.Equal(t, 0, h.reg.Len())

	h.press(core.ButtonMiddle, 1)
	require.Equal(t, 1, h.reg.Len())
	m := h.reg.Markers()[0]
	assert.Equal(t, 1.0, m.Position())
	assert.Equal(t, "blue", m.Color())
	assert.Equal(t, core.KindStandalone, m.Kind())

	// the new marker's own handlers only see later events
	assert.Equal(t, StateIdle, m.State())
}

func TestArmPlacement_SpanReplacesCursor(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.reg.ArmPlacement(PlaceCursor, MarkerProps{}, SpanProps{}))
	require.NoError(t, h.reg.ArmPlacement(PlaceSpan, MarkerProps{}, SpanProps{}))
	assert.Equal(t, 1, h.disp.Len())

	h.press(core.ButtonMiddle, 0)
	assert.Equal(t, 2, h.reg.Len())
	require.Len(t, h.reg.Spans(), 1)

	lo, hi := h.reg.Spans()[0].Region()
	assert.InDelta(t, -20.0/12, lo, 1e-9)
	assert.InDelta(t, 20.0/12, hi, 1e-9)
}

func TestDisarmPlacement(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.reg.ArmPlacement(PlaceCursor, MarkerProps{}, SpanProps{}))
	h.reg.DisarmPlacement()
	assert.Equal(t, PlaceNone, h.reg.Placement())
	assert.Equal(t, 0, h.disp.Len())

	h.press(core.ButtonMiddle, 0)
	assert.Equal(t, 0, h.reg.Len())

	require.NoError(t, h.reg.ArmPlacement(PlaceNone, MarkerProps{}, SpanProps{}))
	assert.Equal(t, 0, h.disp.Len())
}
