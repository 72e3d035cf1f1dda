// Package postgres implements the storage.Backend interface on a PostgreSQL
// database, falling back to a local SQLite file when the server is unreachable.
package postgres

import (
	"errors"
	"log/slog"

	"github.com/OCAP2/cursortools/internal/cache"
	"github.com/OCAP2/cursortools/internal/database"
	gormstorage "github.com/OCAP2/cursortools/internal/storage/gorm"
)

// Dependencies holds all dependencies for the Postgres storage backend.
type Dependencies struct {
	Manager *database.Manager
	Cache   *cache.LayoutCache
	Logger  *slog.Logger
}

// Backend connects through a database.Manager and stores layouts with the
// GORM backend. Layout operations are only valid after Init.
type Backend struct {
	*gormstorage.Backend
	deps Dependencies
}

// New creates a new Postgres storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{deps: deps}
}

// Init connects, migrates and prepares the embedded GORM backend.
func (b *Backend) Init() error {
	if b.deps.Manager == nil {
		return errors.New("postgres backend has no database manager")
	}
	if err := b.deps.Manager.Connect(); err != nil {
		return err
	}
	if err := b.deps.Manager.Setup(); err != nil {
		return err
	}

	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:     b.deps.Manager.DB,
		Cache:  b.deps.Cache,
		Logger: b.deps.Logger,
	})
	return b.Backend.Init()
}

// Close releases the connection pool.
func (b *Backend) Close() error {
	if b.deps.Manager == nil {
		return nil
	}
	return b.deps.Manager.Close()
}

// UsingFallback reports whether layouts are going to the local SQLite file.
func (b *Backend) UsingFallback() bool {
	return b.deps.Manager != nil && b.deps.Manager.ShouldSaveLocal
}
