package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/OCAP2/cursortools/internal/bootstrap"
	"github.com/OCAP2/cursortools/internal/cursor"
	"github.com/OCAP2/cursortools/internal/layout"
	"github.com/OCAP2/cursortools/pkg/core"
)

// ImportCmd reads a CSV file into a stored layout.
type ImportCmd struct {
	Path   string `arg:"" help:"CSV file to import" type:"existingfile"`
	Layout string `short:"l" help:"Layout name (defaults to defaultLayout)"`
}

func (c *ImportCmd) Run(app *App) error {
	name := app.layoutName(c.Layout)

	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := layout.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Path, err)
	}

	// installing into a registry validates pairing and renumbers ids
	_, reg := bootstrap.NewHeadless(app.Env.Logger)
	res, err := layout.Load(reg, records)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Path, err)
	}
	if err := app.store(name, reg); err != nil {
		return err
	}
	n := len(res.Markers) + 2*len(res.Spans)
	app.Env.Logger.Info("Imported layout", "path", c.Path, "markers", n, "spans", len(res.Spans))
	fmt.Fprintf(app.Out, "imported %d markers (%d spans) into %s\n", n, len(res.Spans), name)
	return nil
}

// ExportCmd writes a stored layout as CSV.
type ExportCmd struct {
	Path   string `arg:"" help:"Output CSV file, - for stdout"`
	Layout string `short:"l" help:"Layout name (defaults to defaultLayout)"`
}

func (c *ExportCmd) Run(app *App) error {
	name := app.layoutName(c.Layout)
	b, err := app.Backend()
	if err != nil {
		return err
	}
	records, err := b.LoadLayout(name)
	if err != nil {
		return err
	}

	if c.Path == "-" {
		return layout.WriteCSV(app.Out, records)
	}
	f, err := os.Create(c.Path)
	if err != nil {
		return err
	}
	if err := layout.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	app.Env.Logger.Info("Exported layout", "path", c.Path, "markers", len(records))
	return nil
}

// ShowCmd prints a stored layout.
type ShowCmd struct {
	Layout string `short:"l" help:"Layout name (defaults to defaultLayout)"`
	Filter string `short:"f" help:"Only print positions of markers whose text contains this"`
}

func (c *ShowCmd) Run(app *App) error {
	name := app.layoutName(c.Layout)
	if c.Filter != "" {
		reg, err := app.open(name)
		if err != nil {
			return err
		}
		for _, p := range cursor.PositionsByLabel(reg, c.Filter) {
			fmt.Fprintf(app.Out, "%g\n", p)
		}
		return nil
	}

	b, err := app.Backend()
	if err != nil {
		return err
	}
	records, err := b.LoadLayout(name)
	if err != nil {
		return err
	}
	return printRecords(app.Out, records)
}

// ListCmd lists stored layouts.
type ListCmd struct{}

func (c *ListCmd) Run(app *App) error {
	b, err := app.Backend()
	if err != nil {
		return err
	}
	infos, err := b.ListLayouts()
	if err != nil {
		return err
	}
	for _, info := range infos {
		fmt.Fprintf(app.Out, "%s\t%d\t%s\n", info.Name, info.Markers, info.SavedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// RemoveCmd deletes a stored layout.
type RemoveCmd struct {
	Layout string `arg:"" help:"Layout name"`
}

func (c *RemoveCmd) Run(app *App) error {
	b, err := app.Backend()
	if err != nil {
		return err
	}
	return b.DeleteLayout(app.layoutName(c.Layout))
}

// ModeCmd switches markers between interact and fixed.
type ModeCmd struct {
	Mode   string `arg:"" enum:"interact,fixed" help:"interact or fixed"`
	Select string `default:"all" help:"all, or a comma separated list of display ids"`
	Layout string `short:"l" help:"Layout name (defaults to defaultLayout)"`
}

func (c *ModeCmd) Run(app *App) error {
	mode, err := core.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	sel, err := cursor.ParseSelector(c.Select)
	if err != nil {
		return err
	}

	name := app.layoutName(c.Layout)
	reg, err := app.open(name)
	if err != nil {
		return err
	}
	n := cursor.SetInteractionMode(reg, mode, sel)
	if err := app.store(name, reg); err != nil {
		return err
	}
	fmt.Fprintf(app.Out, "%d markers set to %s\n", n, mode)
	return nil
}

// TagCmd relabels a marker, or both ends of a span.
type TagCmd struct {
	Target string `arg:"" help:"Display id or exact marker text"`
	Text   string `arg:"" help:"New label text"`
	NoID   bool   `name:"no-id" help:"Drop the display id from the label"`
	Layout string `short:"l" help:"Layout name (defaults to defaultLayout)"`
}

func (c *TagCmd) Run(app *App) error {
	var target any = c.Target
	if id, err := strconv.Atoi(strings.TrimSpace(c.Target)); err == nil {
		target = id
	}

	name := app.layoutName(c.Layout)
	reg, err := app.open(name)
	if err != nil {
		return err
	}
	if err := cursor.SetTag(reg, target, c.Text, !c.NoID); err != nil {
		if errors.Is(err, cursor.ErrAmbiguous) {
			return fmt.Errorf("%w; use a display id", err)
		}
		return err
	}
	return app.store(name, reg)
}
