package main

import (
	"fmt"

	"github.com/OCAP2/cursortools/internal/bootstrap"
	"github.com/OCAP2/cursortools/internal/cursor"
	"github.com/OCAP2/cursortools/internal/dispatcher"
	"github.com/OCAP2/cursortools/internal/layout"
	"github.com/OCAP2/cursortools/internal/logging"
	"github.com/OCAP2/cursortools/pkg/core"
)

// DemoCmd scripts a short session against an in-memory surface: place a
// cursor and a span, delete the cursor, fix one endpoint, drag the other
// through pointer events, then save and reload.
type DemoCmd struct {
	Save string `help:"Also store the result under this layout name"`
}

func (c *DemoCmd) Run(app *App) error {
	log := app.Env.Logger
	disp, err := dispatcher.New(logging.NewDispatcherLogger(log), dispatcher.Logged())
	if err != nil {
		return err
	}

	surf := bootstrap.NewSurface()
	reg := cursor.NewRegistry(surf, disp, bootstrap.CursorConfig(log))

	m, err := cursor.NewMarker(reg, 0, cursor.MarkerProps{})
	if err != nil {
		return err
	}
	if _, err := cursor.NewSpan(reg, -3, 3, cursor.MarkerProps{}, cursor.SpanProps{}); err != nil {
		return err
	}
	fmt.Fprintln(app.Out, "placed cursor and span:")
	if err := printRecords(app.Out, layout.Save(reg)); err != nil {
		return err
	}

	m.Remove()
	cursor.SetInteractionMode(reg, core.ModeFixed, cursor.IDs(2))

	// drag the high endpoint from 3 to 4
	for _, ev := range []core.PointerEvent{
		{Type: core.EventPress, Button: core.ButtonPrimary, X: 3, InAxes: true},
		{Type: core.EventMotion, X: 3.5, InAxes: true},
		{Type: core.EventMotion, X: 4, InAxes: true},
		{Type: core.EventRelease, Button: core.ButtonPrimary, X: 4, InAxes: true},
	} {
		disp.Emit(ev)
	}

	records := layout.Save(reg)
	fmt.Fprintln(app.Out, "\nafter delete, fix and drag:")
	if err := printRecords(app.Out, records); err != nil {
		return err
	}

	_, fresh := bootstrap.NewHeadless(log)
	res, err := layout.Load(fresh, records)
	if err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "\nreloaded %d markers, %d spans:\n", len(res.Markers)+2*len(res.Spans), len(res.Spans))
	if err := printRecords(app.Out, layout.Save(fresh)); err != nil {
		return err
	}

	if c.Save != "" {
		name := app.layoutName(c.Save)
		if err := app.store(name, fresh); err != nil {
			return err
		}
		fmt.Fprintf(app.Out, "\nstored as %s\n", name)
	}
	return nil
}
