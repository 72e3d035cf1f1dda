package bootstrap

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/OCAP2/cursortools/internal/cache"
	"github.com/OCAP2/cursortools/internal/config"
	"github.com/OCAP2/cursortools/internal/database"
	"github.com/OCAP2/cursortools/internal/storage"
	"github.com/OCAP2/cursortools/internal/storage/csvfile"
	"github.com/OCAP2/cursortools/internal/storage/memory"
	pgstorage "github.com/OCAP2/cursortools/internal/storage/postgres"
	sqlitestorage "github.com/OCAP2/cursortools/internal/storage/sqlite"
	"github.com/rs/zerolog"
)

// NewBackend creates the storage backend named by cfg.Type. It is not initialized.
func NewBackend(cfg config.StorageConfig, zlog zerolog.Logger, logger *slog.Logger) (storage.Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch strings.ToLower(cfg.Type) {
	case "csv", "":
		logger.Debug("CSV storage backend selected", "dir", cfg.CSVDir)
		return csvfile.New(cfg.CSVDir), nil

	case "memory":
		logger.Debug("Memory storage backend selected", "dir", cfg.Memory.OutputDir)
		return memory.New(cfg.Memory), nil

	case "sqlite":
		backend, err := sqlitestorage.New(sqlitestorage.Config{
			DumpInterval: cfg.SQLite.DumpInterval,
			DumpPath:     cfg.SQLite.Path,
		}, cache.NewLayoutCache(), logger.With("component", "sqlite"))
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite backend: %w", err)
		}
		logger.Debug("SQLite storage backend selected", "path", cfg.SQLite.Path)
		return backend, nil

	case "postgres":
		mgr := database.NewManager(zlog)
		mgr.SqliteFilePath = cfg.SQLite.Path
		logger.Debug("Postgres storage backend selected")
		return pgstorage.New(pgstorage.Dependencies{
			Manager: mgr,
			Cache:   cache.NewLayoutCache(),
			Logger:  logger.With("component", "postgres"),
		}), nil

	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// OpenBackend creates and initializes the configured backend
func (e *Env) OpenBackend(override string) (storage.Backend, error) {
	cfg := config.GetStorageConfig()
	if override != "" {
		cfg.Type = override
	}
	backend, err := NewBackend(cfg, e.Zerolog(), e.Logger)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		e.Logger.Error("Failed to initialize storage backend", "type", cfg.Type, "error", err)
		return nil, err
	}
	e.Logger.Info("Storage backend initialized", "type", cfg.Type)
	return backend, nil
}
