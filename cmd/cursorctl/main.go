// Command cursorctl edits stored marker layouts from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/OCAP2/cursortools/internal/bootstrap"
)

// module defs - Version can be set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
)

const binaryName = "cursorctl"

// CLI defines the command-line interface for cursorctl.
type CLI struct {
	// Global flags
	Config   string `name:"config" short:"c" help:"Directory containing cursortools.cfg.json" type:"path"`
	LogLevel string `name:"log-level" help:"Override the configured log level"`
	LogFile  bool   `name:"log-file" help:"Log to logsDir instead of stdout"`
	Storage  string `name:"storage" short:"s" help:"Override storage.type (csv, memory, sqlite, postgres)"`

	Import  ImportCmd  `cmd:"" help:"Import a CSV file into a layout"`
	Export  ExportCmd  `cmd:"" help:"Export a layout to a CSV file"`
	Show    ShowCmd    `cmd:"" help:"Print the markers of a layout"`
	List    ListCmd    `cmd:"" help:"List stored layouts"`
	Remove  RemoveCmd  `cmd:"" name:"rm" help:"Delete a stored layout"`
	Mode    ModeCmd    `cmd:"" help:"Set the interaction mode of markers"`
	Tag     TagCmd     `cmd:"" help:"Set the label of one marker or span"`
	Demo    DemoCmd    `cmd:"" help:"Run a scripted session and print the result"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name(binaryName),
		kong.Description("Manage cursor and span layouts."),
		kong.UsageOnError(),
	)

	env, err := bootstrap.Start(bootstrap.Options{
		BinaryName: binaryName,
		ConfigDir:  cli.Config,
		LogLevel:   cli.LogLevel,
		LogToFile:  cli.LogFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	app := &App{Env: env, StorageType: cli.Storage, Out: os.Stdout}
	err = ctx.Run(app)
	app.Close()
	if cerr := env.Close(context.Background()); cerr != nil {
		fmt.Fprintln(os.Stderr, cerr)
	}
	ctx.FatalIfErrorf(err)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	fmt.Fprintf(app.Out, "%s %s (built %s)\n", binaryName, Version, BuildDate)
	return nil
}
