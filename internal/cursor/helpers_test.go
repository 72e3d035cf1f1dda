package cursor

import (
	"testing"

	"github.com/OCAP2/cursortools/internal/dispatcher"
	"github.com/OCAP2/cursortools/internal/surface/memory"
	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/stretchr/testify/require"
)

type harness struct {
	reg  *Registry
	surf *memory.Surface
	disp *dispatcher.Dispatcher
}

// newHarness builds a registry on a -10..10 surface, 800 px wide, so the default
// pick radius of 10 px is 0.25 data units.
func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	surf := memory.New(memory.Config{Width: 800, XMin: -10, XMax: 10})
	disp, err := dispatcher.New(nil)
	require.NoError(t, err)
	return &harness{
		reg:  NewRegistry(surf, disp, cfg),
		surf: surf,
		disp: disp,
	}
}

func (h *harness) press(button core.Button, x float64) {
	h.disp.Emit(core.PointerEvent{Type: core.EventPress, Button: button, X: x, InAxes: true})
}

func (h *harness) motion(x float64) {
	h.disp.Emit(core.PointerEvent{Type: core.EventMotion, X: x, InAxes: true})
}

func (h *harness) release(x float64) {
	h.disp.Emit(core.PointerEvent{Type: core.EventRelease, Button: core.ButtonPrimary, X: x, InAxes: true})
}

func (h *harness) drag(from, to float64) {
	h.press(core.ButtonPrimary, from)
	h.motion(to)
	h.release(to)
}

func displayIDs(reg *Registry) []int {
	var ids []int
	for _, m := range reg.Markers() {
		if id, ok := m.DisplayID(); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
