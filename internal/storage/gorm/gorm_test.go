package gormstorage

import (
	"testing"

	"github.com/OCAP2/cursortools/internal/cache"
	"github.com/OCAP2/cursortools/internal/database"
	"github.com/OCAP2/cursortools/internal/model"
	"github.com/OCAP2/cursortools/internal/storage"
	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface checks
var (
	_ storage.Backend   = (*Backend)(nil)
	_ storage.MetaSaver  = (*Backend)(nil)
	_ storage.MetaLoader = (*Backend)(nil)
)

// newTestBackend creates a Backend on an isolated in-memory SQLite database.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	db, err := database.GetSqliteMemoryDB(uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	b := New(Dependencies{DB: db, Cache: cache.NewLayoutCache()})
	require.NoError(t, b.Init())
	return b
}

func sampleRecords() []core.MarkerRecord {
	return []core.MarkerRecord{
		{ID: 1, Tag: "(1)", Position: -4, Type: core.KindSpanEndpoint, Mode: core.ModeInteract, Color: "#ff7f0e"},
		{ID: 2, Tag: "(2)", Position: -2, Type: core.KindSpanEndpoint, Mode: core.ModeInteract, Color: "#ff7f0e"},
		{ID: 3, Tag: "(3) zero", Position: 0, Type: core.KindStandalone, Mode: core.ModeFixed, Color: "black"},
	}
}

func TestInit_NoDB(t *testing.T) {
	b := New(Dependencies{})
	assert.Error(t, b.Init())
}

func TestSaveLoad(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.SaveLayout("bench", sampleRecords()))

	got, err := b.LoadLayout("bench")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)

	id, ok := b.cache.Get("bench")
	assert.True(t, ok)
	assert.NotZero(t, id)
}

func TestSave_ReplacesRows(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.SaveLayout("bench", sampleRecords()))
	id, _ := b.cache.Get("bench")

	require.NoError(t, b.SaveLayout("bench", sampleRecords()[2:]))
	got, err := b.LoadLayout("bench")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords()[2:], got)

	newID, _ := b.cache.Get("bench")
	assert.Equal(t, id, newID)

	var rows int64
	require.NoError(t, b.DB().Model(&model.MarkerRow{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestSave_Empty(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.SaveLayout("empty", nil))
	got, err := b.LoadLayout("empty")
	require.NoError(t, err)
	assert.Empty(t, got)

	// and replacing a populated layout with nothing
	require.NoError(t, b.SaveLayout("bench", sampleRecords()))
	require.NoError(t, b.SaveLayout("bench", nil))
	got, err = b.LoadLayout("bench")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_NotFound(t *testing.T) {
	b := newTestBackend(t)

	_, err := b.LoadLayout("missing")
	assert.ErrorIs(t, err, storage.ErrLayoutNotFound)
}

func TestLoad_StaleCache(t *testing.T) {
	b := newTestBackend(t)
	b.cache.Set("ghost", 99)

	_, err := b.LoadLayout("ghost")
	assert.ErrorIs(t, err, storage.ErrLayoutNotFound)
	_, ok := b.cache.Get("ghost")
	assert.False(t, ok)
}

func TestLoad_LayoutReplacedElsewhere(t *testing.T) {
	a := newTestBackend(t)
	other := New(Dependencies{DB: a.DB(), Cache: cache.NewLayoutCache()})
	require.NoError(t, other.Init())

	require.NoError(t, a.SaveLayout("bench", sampleRecords()))
	oldID, ok := a.cache.Get("bench")
	require.True(t, ok)

	// another process sharing the database replaces the layout
	require.NoError(t, other.SaveLayout("spare", sampleRecords()[:1]))
	require.NoError(t, other.DeleteLayout("bench"))
	require.NoError(t, other.SaveLayout("bench", sampleRecords()[2:]))

	records, err := a.LoadLayout("bench")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, core.KindStandalone, records[0].Type)

	newID, ok := a.cache.Get("bench")
	require.True(t, ok)
	assert.NotEqual(t, oldID, newID)
}

func TestSaveLayoutMeta(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.SaveLayoutMeta("bench", sampleRecords(), map[string]any{"xMin": -10.0}))

	meta, err := b.LoadMeta("bench")
	require.NoError(t, err)
	assert.EqualValues(t, -10, meta["xMin"])
	assert.EqualValues(t, 1, meta["cursors"])
	assert.EqualValues(t, 1, meta["spans"])
}

func TestListAndDelete(t *testing.T) {
	b := newTestBackend(t)

	require.NoError(t, b.SaveLayout("zeta", sampleRecords()))
	require.NoError(t, b.SaveLayout("alpha", sampleRecords()[:2]))

	infos, err := b.ListLayouts()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, 2, infos[0].Markers)
	assert.Equal(t, "zeta", infos[1].Name)
	assert.Equal(t, 3, infos[1].Markers)

	require.NoError(t, b.DeleteLayout("zeta"))
	assert.ErrorIs(t, b.DeleteLayout("zeta"), storage.ErrLayoutNotFound)

	infos, err = b.ListLayouts()
	require.NoError(t, err)
	assert.Len(t, infos, 1)

	var rows int64
	require.NoError(t, b.DB().Model(&model.MarkerRow{}).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)
}

func TestInit_WarmsCache(t *testing.T) {
	b := newTestBackend(t)
	require.NoError(t, b.SaveLayout("bench", sampleRecords()))

	other := New(Dependencies{DB: b.DB()})
	require.NoError(t, other.Init())
	_, ok := other.cache.Get("bench")
	assert.True(t, ok)
}

func TestInvalidName(t *testing.T) {
	b := newTestBackend(t)
	assert.ErrorIs(t, b.SaveLayout("a/b", sampleRecords()), storage.ErrInvalidName)
}
