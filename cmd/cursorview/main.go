// Command cursorview opens a stored layout in a desktop window for editing
// with the mouse.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/viper"

	"github.com/OCAP2/cursortools/internal/bootstrap"
	"github.com/OCAP2/cursortools/internal/config"
	"github.com/OCAP2/cursortools/internal/cursor"
	"github.com/OCAP2/cursortools/internal/influx"
	"github.com/OCAP2/cursortools/internal/viewer"
)

// module defs - Version can be set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
)

const binaryName = "cursorview"

// CLI defines the command-line interface for cursorview.
type CLI struct {
	Config   string `name:"config" short:"c" help:"Directory containing cursortools.cfg.json" type:"path"`
	LogLevel string `name:"log-level" help:"Override the configured log level"`
	Storage  string `name:"storage" short:"s" help:"Override storage.type (csv, memory, sqlite, postgres)"`
	Layout   string `arg:"" optional:"" help:"Layout to open (default: defaultLayout)"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name(binaryName),
		kong.Description("Edit a cursor and span layout in a window."),
		kong.UsageOnError(),
	)

	if err := run(cli); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cli CLI) error {
	env, err := bootstrap.Start(bootstrap.Options{
		BinaryName: binaryName,
		ConfigDir:  cli.Config,
		LogLevel:   cli.LogLevel,
		LogToFile:  true,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := env.Close(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()
	log := env.Logger
	log.Info("Starting", "version", Version, "built", BuildDate)

	backend, err := env.OpenBackend(cli.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Error("Failed to close storage backend", "error", err)
		}
	}()

	name := cli.Layout
	if name == "" {
		name = viper.GetString("defaultLayout")
	}
	env.SetLayout(name)

	cursorCfg := bootstrap.CursorConfig(log)
	if mgr := connectInflux(env); mgr != nil {
		defer func() {
			if err := mgr.Close(); err != nil {
				log.Error("Failed to close InfluxDB manager", "error", err)
			}
		}()
		cursorCfg.OnMove = mgr.RecordMove
		cursorCfg.OnDragEnd = func(m *cursor.Marker) {
			if err := mgr.Flush(); err != nil {
				log.Error("Failed to flush drag samples", "error", err)
			}
		}
	}

	view := config.GetViewConfig()
	sess, err := viewer.New(viewer.Options{
		Width:   view.Width,
		Height:  view.Height,
		XMin:    view.XMin,
		XMax:    view.XMax,
		Cursor:  cursorCfg,
		Backend: backend,
		Layout:  name,
		Logger:  log,
	})
	if err != nil {
		return err
	}
	if err := sess.Load(); err != nil {
		return err
	}

	ebiten.SetWindowTitle(fmt.Sprintf("%s - %s", binaryName, name))
	ebiten.SetWindowSize(view.Width, view.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	return ebiten.RunGame(&game{sess: sess, log: log})
}

// connectInflux returns nil when drag telemetry is disabled or cannot start
func connectInflux(env *bootstrap.Env) *influx.Manager {
	cfg := config.GetInfluxConfig()
	if !cfg.Enabled {
		return nil
	}
	backup := filepath.Join(viper.GetString("logsDir"), binaryName+"_moves.lp.gz")
	mgr := influx.NewManager(env.Zerolog(), cfg, backup)
	if err := mgr.Connect(context.Background()); err != nil {
		env.Logger.Warn("Drag telemetry disabled", "error", err)
		return nil
	}
	return mgr
}
