package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/OCAP2/cursortools/internal/bootstrap"
	"github.com/OCAP2/cursortools/internal/cursor"
	"github.com/OCAP2/cursortools/internal/layout"
	"github.com/OCAP2/cursortools/internal/storage"
	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/spf13/viper"
)

// App carries what every command needs
type App struct {
	Env         *bootstrap.Env
	StorageType string
	Out         io.Writer

	backend storage.Backend
}

// Backend opens the storage backend on first use
func (a *App) Backend() (storage.Backend, error) {
	if a.backend != nil {
		return a.backend, nil
	}
	b, err := a.Env.OpenBackend(a.StorageType)
	if err != nil {
		return nil, err
	}
	a.backend = b
	return b, nil
}

// Close releases the storage backend
func (a *App) Close() {
	if a.backend == nil {
		return
	}
	if err := a.backend.Close(); err != nil {
		a.Env.Logger.Error("Failed to close storage backend", "error", err)
	}
	a.backend = nil
}

// layoutName falls back to the configured default layout
func (a *App) layoutName(name string) string {
	if name == "" {
		name = viper.GetString("defaultLayout")
	}
	a.Env.SetLayout(name)
	return name
}

// open loads a stored layout into a headless registry
func (a *App) open(name string) (*cursor.Registry, error) {
	b, err := a.Backend()
	if err != nil {
		return nil, err
	}
	records, err := b.LoadLayout(name)
	if err != nil {
		return nil, err
	}
	_, reg := bootstrap.NewHeadless(a.Env.Logger)
	if _, err := layout.Load(reg, records); err != nil {
		return nil, fmt.Errorf("layout %s: %w", name, err)
	}
	return reg, nil
}

// store writes the registry back under name
func (a *App) store(name string, reg *cursor.Registry) error {
	b, err := a.Backend()
	if err != nil {
		return err
	}
	records := layout.Save(reg)

	if ms, ok := b.(storage.MetaSaver); ok {
		lo, hi := reg.Surface().AxisRange()
		return ms.SaveLayoutMeta(name, records, map[string]any{"xMin": lo, "xMax": hi})
	}
	return b.SaveLayout(name, records)
}

// printRecords writes records as an aligned table
func printRecords(w io.Writer, records []core.MarkerRecord) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTAG\tPOSITION\tTYPE\tMODE\tCOLOR")
	for _, r := range records {
		id := "-"
		if r.ID != 0 {
			id = fmt.Sprint(r.ID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%g\t%s\t%s\t%s\n", id, r.Tag, r.Position, r.Type, r.Mode, r.Color)
	}
	return tw.Flush()
}
