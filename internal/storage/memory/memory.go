// Package memory keeps layouts in memory and mirrors each one to a JSON
// snapshot in the output directory.
package memory

import (
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/OCAP2/cursortools/internal/config"
	"github.com/OCAP2/cursortools/internal/storage"
	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/google/uuid"
)

// LayoutRecord groups a stored layout with its identity
type LayoutRecord struct {
	UUID    uuid.UUID
	Name    string
	SavedAt time.Time
	Records []core.MarkerRecord
}

// Backend stores layouts in memory and exports them to JSON
type Backend struct {
	cfg     config.MemoryConfig
	layouts map[string]*LayoutRecord
	mu      sync.RWMutex
}

// New creates a new memory backend
func New(cfg config.MemoryConfig) *Backend {
	return &Backend{
		cfg:     cfg,
		layouts: make(map[string]*LayoutRecord),
	}
}

// Init loads any snapshots already present in the output directory
func (b *Backend) Init() error {
	if b.cfg.OutputDir == "" {
		return nil
	}
	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	loaded, err := b.readSnapshots()
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, rec := range loaded {
		if cur, ok := b.layouts[rec.Name]; ok && cur.SavedAt.After(rec.SavedAt) {
			continue
		}
		b.layouts[rec.Name] = rec
	}
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// SaveLayout stores a copy of records under name and writes its snapshot
func (b *Backend) SaveLayout(name string, records []core.MarkerRecord) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	rec := &LayoutRecord{
		UUID:    uuid.New(),
		Name:    name,
		SavedAt: time.Now().UTC(),
		Records: append([]core.MarkerRecord(nil), records...),
	}
	if prev, ok := b.layouts[name]; ok {
		rec.UUID = prev.UUID
	}

	if b.cfg.OutputDir != "" {
		if err := b.exportJSON(rec); err != nil {
			return err
		}
	}
	b.layouts[name] = rec
	return nil
}

// LoadLayout returns a copy of the stored records
func (b *Backend) LoadLayout(name string) ([]core.MarkerRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rec, ok := b.layouts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrLayoutNotFound, name)
	}
	return append([]core.MarkerRecord(nil), rec.Records...), nil
}

// ListLayouts returns the stored layouts sorted by name
func (b *Backend) ListLayouts() ([]storage.LayoutInfo, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]storage.LayoutInfo, 0, len(b.layouts))
	for _, rec := range b.layouts {
		out = append(out, storage.LayoutInfo{
			Name:    rec.Name,
			SavedAt: rec.SavedAt,
			Markers: len(rec.Records),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteLayout removes a layout and its snapshot
func (b *Backend) DeleteLayout(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.layouts[name]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrLayoutNotFound, name)
	}
	delete(b.layouts, name)

	if b.cfg.OutputDir != "" {
		for _, p := range []string{b.snapshotPath(name, false), b.snapshotPath(name, true)} {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove snapshot: %w", err)
			}
		}
	}
	return nil
}

// ExportPath returns the snapshot file for a layout
func (b *Backend) ExportPath(name string) string {
	return b.snapshotPath(name, b.cfg.CompressOutput)
}
