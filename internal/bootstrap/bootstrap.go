// Package bootstrap wires configuration, logging, telemetry and storage for
// the cursortools binaries.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/OCAP2/cursortools/internal/config"
	"github.com/OCAP2/cursortools/internal/logging"
	intOtel "github.com/OCAP2/cursortools/internal/otel"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// Options selects where a binary reads its config and writes its logs
type Options struct {
	BinaryName string
	ConfigDir  string // "" uses defaults only
	LogLevel   string // overrides logLevel when set
	LogToFile  bool   // write to logsDir instead of stdout
}

// Env holds the process-wide services set up by Start
type Env struct {
	Slog        *logging.SlogManager
	Logger      *slog.Logger
	OTel        *intOtel.Provider
	LogFilePath string
	StartTime   time.Time

	logFile *os.File

	mu     sync.RWMutex
	layout string
}

// Start loads configuration and sets up logging. A missing config file is
// logged and the defaults are used.
func Start(opts Options) (*Env, error) {
	env := &Env{
		Slog:      logging.NewSlogManager(),
		StartTime: time.Now(),
	}

	var cfgErr error
	if opts.ConfigDir != "" {
		cfgErr = config.Load(opts.ConfigDir)
	} else {
		config.LoadDefaults()
	}
	if opts.LogLevel != "" {
		viper.Set("logLevel", opts.LogLevel)
	}

	var out io.Writer
	if opts.LogToFile {
		f, err := logging.OpenLogFile(viper.GetString("logsDir"), opts.BinaryName, env.StartTime)
		if err != nil {
			return nil, err
		}
		env.LogFilePath = f.Name()
		env.logFile = f
		out = f
	}

	var provider *sdklog.LoggerProvider
	if otelCfg := config.GetOTelConfig(); otelCfg.Enabled {
		p, err := intOtel.FromConfig(otelCfg, opts.BinaryName, out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize OTel provider: %v\n", err)
		} else {
			env.OTel = p
			provider = p.LoggerProvider()
		}
	}

	env.Slog.SetContext(env.logContext)
	env.Slog.Setup(out, viper.GetString("logLevel"), provider)
	env.Logger = env.Slog.Logger()

	if cfgErr != nil {
		env.Logger.Warn("Failed to load config, using defaults", "error", cfgErr)
	} else if opts.ConfigDir != "" {
		env.Logger.Info("Loaded config", "dir", opts.ConfigDir)
	}
	if env.LogFilePath != "" {
		env.Logger.Info("Logging to file", "path", env.LogFilePath)
	}
	return env, nil
}

// SetLayout records the active layout name for log context
func (e *Env) SetLayout(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layout = name
}

func (e *Env) logContext() []slog.Attr {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.layout == "" {
		return nil
	}
	return []slog.Attr{slog.String("layout", e.layout)}
}

// Zerolog returns a zerolog logger writing to the same destination as the
// slog logger, for the database and influx managers.
func (e *Env) Zerolog() zerolog.Logger {
	var out io.Writer = os.Stderr
	if e.logFile != nil {
		out = e.logFile
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(viper.GetString("logLevel")))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}).Level(lvl).With().Timestamp().Logger()
}

// Close flushes telemetry and closes the log file.
func (e *Env) Close(ctx context.Context) error {
	var errs []error
	if err := e.Slog.Flush(ctx); err != nil {
		errs = append(errs, err)
	}
	if e.OTel != nil {
		if err := e.OTel.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if e.logFile != nil {
		if err := e.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
		e.logFile = nil
	}
	return errors.Join(errs...)
}
