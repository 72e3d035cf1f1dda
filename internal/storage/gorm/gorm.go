// Package gormstorage implements the storage.Backend interface on GORM. It is
// shared by the SQLite and Postgres backends.
package gormstorage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/OCAP2/cursortools/internal/cache"
	"github.com/OCAP2/cursortools/internal/database"
	"github.com/OCAP2/cursortools/internal/model"
	"github.com/OCAP2/cursortools/internal/model/convert"
	"github.com/OCAP2/cursortools/internal/storage"
	"github.com/OCAP2/cursortools/pkg/core"

	"gorm.io/gorm"
)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Cache  *cache.LayoutCache
	Logger *slog.Logger
}

// Backend stores layouts in the layouts and marker_rows tables.
type Backend struct {
	db    *gorm.DB
	cache *cache.LayoutCache
	log   *slog.Logger
}

// New creates a GORM backend. A nil cache or logger gets a default.
func New(deps Dependencies) *Backend {
	b := &Backend{
		db:    deps.DB,
		cache: deps.Cache,
		log:   deps.Logger,
	}
	if b.cache == nil {
		b.cache = cache.NewLayoutCache()
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	return b
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.db
}

// Init migrates the schema and warms the name cache.
func (b *Backend) Init() error {
	if b.db == nil {
		return errors.New("gorm backend has no database")
	}
	if err := database.Migrate(b.db); err != nil {
		return err
	}

	var layouts []model.Layout
	if err := b.db.Select("id", "name").Find(&layouts).Error; err != nil {
		return fmt.Errorf("failed to read layouts: %w", err)
	}
	b.cache.Reset()
	for _, l := range layouts {
		b.cache.Set(l.Name, l.ID)
	}
	b.log.Debug("Layout cache warmed", "layouts", len(layouts))
	return nil
}

// Close is a no-op; the connection is owned by the caller.
func (b *Backend) Close() error {
	return nil
}

// SaveLayout stores records with a marker summary as metadata.
func (b *Backend) SaveLayout(name string, records []core.MarkerRecord) error {
	return b.SaveLayoutMeta(name, records, nil)
}

// SaveLayoutMeta replaces the layout's rows in one transaction.
func (b *Backend) SaveLayoutMeta(name string, records []core.MarkerRecord, meta map[string]any) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	meta = withSummary(meta, records)
	l := convert.CoreToLayout(name, records, meta)

	err := b.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Layout
		err := tx.Where("name = ?", name).Limit(1).Find(&existing).Error
		if err != nil {
			return err
		}

		if existing.ID == 0 {
			return tx.Create(&l).Error
		}

		if err := tx.Where("layout_id = ?", existing.ID).Delete(&model.MarkerRow{}).Error; err != nil {
			return err
		}
		err = tx.Model(&existing).Updates(map[string]any{
			"saved_at": l.SavedAt,
			"meta":     l.Meta,
		}).Error
		if err != nil {
			return err
		}
		for i := range l.Markers {
			l.Markers[i].LayoutID = existing.ID
		}
		if len(l.Markers) > 0 {
			if err := tx.Create(&l.Markers).Error; err != nil {
				return err
			}
		}
		l.ID = existing.ID
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save layout %s: %w", name, err)
	}

	b.cache.Set(name, l.ID)
	b.log.Debug("Layout saved", "name", name, "markers", len(records))
	return nil
}

// LoadLayout returns the layout's records ordered by Seq.
func (b *Backend) LoadLayout(name string) ([]core.MarkerRecord, error) {
	l, err := b.find(name)
	if err != nil {
		return nil, err
	}

	if err := b.db.Where("layout_id = ?", l.ID).Order("seq").Find(&l.Markers).Error; err != nil {
		return nil, fmt.Errorf("failed to read markers of %s: %w", name, err)
	}
	return convert.LayoutToCore(l)
}

// LoadMeta returns the metadata stored with a layout.
func (b *Backend) LoadMeta(name string) (map[string]any, error) {
	l, err := b.find(name)
	if err != nil {
		return nil, err
	}
	return map[string]any(l.Meta), nil
}

// ListLayouts returns the stored layouts sorted by name.
func (b *Backend) ListLayouts() ([]storage.LayoutInfo, error) {
	var layouts []model.Layout
	if err := b.db.Order("name").Find(&layouts).Error; err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}

	var counts []struct {
		LayoutID uint
		N        int
	}
	err := b.db.Model(&model.MarkerRow{}).
		Select("layout_id, count(*) as n").
		Group("layout_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count markers: %w", err)
	}
	byLayout := make(map[uint]int, len(counts))
	for _, c := range counts {
		byLayout[c.LayoutID] = c.N
	}

	out := make([]storage.LayoutInfo, 0, len(layouts))
	for _, l := range layouts {
		out = append(out, storage.LayoutInfo{
			Name:    l.Name,
			SavedAt: l.SavedAt,
			Markers: byLayout[l.ID],
		})
	}
	return out, nil
}

// DeleteLayout removes a layout and its rows.
func (b *Backend) DeleteLayout(name string) error {
	l, err := b.find(name)
	if err != nil {
		return err
	}

	err = b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("layout_id = ?", l.ID).Delete(&model.MarkerRow{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Layout{}, l.ID).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete layout %s: %w", name, err)
	}
	b.cache.Delete(name)
	return nil
}

// find looks a layout up by name, using the cached ID when there is one. A
// cached ID that no longer matches, because another process replaced the
// layout, falls back to the name.
func (b *Backend) find(name string) (model.Layout, error) {
	if id, ok := b.cache.Get(name); ok {
		l, err := b.first("id = ? AND name = ?", id, name)
		if err != nil {
			return l, wrapRead(name, err)
		}
		if l.ID != 0 {
			return l, nil
		}
		// row deleted or renamed by another process
		b.cache.Delete(name)
	}

	l, err := b.first("name = ?", name)
	if err != nil {
		return l, wrapRead(name, err)
	}
	if l.ID == 0 {
		return l, fmt.Errorf("%w: %s", storage.ErrLayoutNotFound, name)
	}
	b.cache.Set(name, l.ID)
	return l, nil
}

func (b *Backend) first(query string, args ...any) (model.Layout, error) {
	var l model.Layout
	err := b.db.Limit(1).Where(query, args...).Find(&l).Error
	return l, err
}

func wrapRead(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to read layout %s: %w", name, err)
}

func withSummary(meta map[string]any, records []core.MarkerRecord) map[string]any {
	out := make(map[string]any, len(meta)+3)
	for k, v := range meta {
		out[k] = v
	}
	var standalone, endpoints int
	for _, r := range records {
		if r.Type == core.KindSpanEndpoint {
			endpoints++
		} else {
			standalone++
		}
	}
	out["cursors"] = standalone
	out["spans"] = endpoints / 2
	out["savedBy"] = "cursortools"
	return out
}
