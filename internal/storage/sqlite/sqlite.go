// Package sqlitestorage implements the storage.Backend interface using an in-memory
// SQLite database with periodic disk dumps via VACUUM INTO.
// It wraps the GORM backend; the SQLite-specific parts are creating the
// in-memory DB, restoring it from the last dump and dumping it back to disk.
package sqlitestorage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/OCAP2/cursortools/internal/cache"
	"github.com/OCAP2/cursortools/internal/database"
	"github.com/OCAP2/cursortools/internal/model"
	gormstorage "github.com/OCAP2/cursortools/internal/storage/gorm"
	"github.com/google/uuid"

	"gorm.io/gorm"
)

// Config holds configuration for the SQLite storage backend.
type Config struct {
	DumpInterval time.Duration
	DumpPath     string // Path for periodic VACUUM INTO dumps
}

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	db       *gorm.DB
	cfg      Config
	log      *slog.Logger
	stopChan chan struct{}
	done     sync.WaitGroup
	closed   bool
}

// New creates a new SQLite storage backend.
func New(cfg Config, layoutCache *cache.LayoutCache, logger *slog.Logger) (*Backend, error) {
	db, err := database.GetSqliteMemoryDB(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite DB: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	gormBackend := gormstorage.New(gormstorage.Dependencies{
		DB:     db,
		Cache:  layoutCache,
		Logger: logger,
	})

	return &Backend{
		Backend:  gormBackend,
		db:       db,
		cfg:      cfg,
		log:      logger,
		stopChan: make(chan struct{}),
	}, nil
}

// Init migrates the in-memory DB, restores the last dump and starts the dump goroutine.
func (b *Backend) Init() error {
	if err := database.Migrate(b.db); err != nil {
		return err
	}
	if err := b.restore(); err != nil {
		return err
	}
	if err := b.Backend.Init(); err != nil {
		return err
	}

	if b.cfg.DumpPath != "" && b.cfg.DumpInterval > 0 {
		b.done.Add(1)
		go b.dumpLoop()
	}

	return nil
}

// Close stops the dump goroutine, writes a final dump and closes the database.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	close(b.stopChan)
	b.done.Wait()

	var errs []error
	if b.cfg.DumpPath != "" {
		if err := b.Dump(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := b.Backend.Close(); err != nil {
		errs = append(errs, err)
	}
	if sqlDB, err := b.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Dump writes a point-in-time copy of the database to DumpPath.
func (b *Backend) Dump() error {
	return database.DumpMemoryDBToDisk(b.db, b.cfg.DumpPath)
}

// restore copies layouts from an earlier dump into the in-memory DB.
func (b *Backend) restore() error {
	if b.cfg.DumpPath == "" {
		return nil
	}
	if _, err := os.Stat(b.cfg.DumpPath); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	disk, err := database.GetSqliteDBStandalone(b.cfg.DumpPath)
	if err != nil {
		return fmt.Errorf("failed to open dump %s: %w", b.cfg.DumpPath, err)
	}
	defer func() {
		if sqlDB, err := disk.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if !disk.Migrator().HasTable(&model.Layout{}) {
		return nil
	}

	var layouts []model.Layout
	err = disk.Preload("Markers", func(db *gorm.DB) *gorm.DB {
		return db.Order("seq")
	}).Find(&layouts).Error
	if err != nil {
		return fmt.Errorf("failed to read dump: %w", err)
	}
	if len(layouts) == 0 {
		return nil
	}

	if err := b.db.Create(&layouts).Error; err != nil {
		return fmt.Errorf("failed to restore dump: %w", err)
	}
	b.log.Info("Restored layouts from disk", "path", b.cfg.DumpPath, "layouts", len(layouts))
	return nil
}

// dumpLoop periodically dumps the in-memory SQLite database to disk via VACUUM INTO.
// VACUUM INTO creates a point-in-time snapshot, so no pause mechanism is needed.
func (b *Backend) dumpLoop() {
	defer b.done.Done()
	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			start := time.Now()
			if err := b.Dump(); err != nil {
				b.log.Error("Error dumping to disk", "error", err)
			} else {
				b.log.Debug("Dumped to disk", "duration", time.Since(start))
			}
		}
	}
}
