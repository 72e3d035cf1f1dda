package csvfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/OCAP2/cursortools/internal/storage"
	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface checks
var (
	_ storage.Backend  = (*Backend)(nil)
	_ storage.Exporter = (*Backend)(nil)
)

func sampleRecords() []core.MarkerRecord {
	return []core.MarkerRecord{
		{ID: 1, Tag: "(1) peak", Position: 1.5, Type: core.KindStandalone, Mode: core.ModeInteract, Color: "red"},
		{ID: 2, Tag: "(2)", Position: -3, Type: core.KindSpanEndpoint, Mode: core.ModeFixed, Color: "#1f77b4"},
		{ID: 3, Tag: "(3)", Position: -1, Type: core.KindSpanEndpoint, Mode: core.ModeFixed, Color: "#1f77b4"},
	}
}

func newBackend(t *testing.T) *Backend {
	t.Helper()
	b := New(filepath.Join(t.TempDir(), "layouts"))
	require.NoError(t, b.Init())
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestSaveLoad(t *testing.T) {
	b := newBackend(t)

	require.NoError(t, b.SaveLayout("bench", sampleRecords()))
	assert.FileExists(t, b.ExportPath("bench"))

	got, err := b.LoadLayout("bench")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)
}

func TestSave_Overwrites(t *testing.T) {
	b := newBackend(t)

	require.NoError(t, b.SaveLayout("bench", sampleRecords()))
	require.NoError(t, b.SaveLayout("bench", sampleRecords()[:1]))

	got, err := b.LoadLayout("bench")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	// no temp files left behind
	entries, err := os.ReadDir(b.dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoad_NotFound(t *testing.T) {
	b := newBackend(t)

	_, err := b.LoadLayout("missing")
	assert.ErrorIs(t, err, storage.ErrLayoutNotFound)
}

func TestInvalidName(t *testing.T) {
	b := newBackend(t)

	assert.ErrorIs(t, b.SaveLayout("../x", sampleRecords()), storage.ErrInvalidName)
	_, err := b.LoadLayout("")
	assert.ErrorIs(t, err, storage.ErrInvalidName)
}

func TestListAndDelete(t *testing.T) {
	b := newBackend(t)

	require.NoError(t, b.SaveLayout("zeta", sampleRecords()))
	require.NoError(t, b.SaveLayout("alpha", sampleRecords()[:1]))
	require.NoError(t, os.WriteFile(filepath.Join(b.dir, "notes.txt"), []byte("x"), 0644))

	infos, err := b.ListLayouts()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, 1, infos[0].Markers)
	assert.Equal(t, "zeta", infos[1].Name)
	assert.Equal(t, 3, infos[1].Markers)

	require.NoError(t, b.DeleteLayout("alpha"))
	assert.ErrorIs(t, b.DeleteLayout("alpha"), storage.ErrLayoutNotFound)

	infos, err = b.ListLayouts()
	require.NoError(t, err)
	assert.Len(t, infos, 1)
}

func TestList_MissingDir(t *testing.T) {
	b := New(filepath.Join(t.TempDir(), "nope"))
	infos, err := b.ListLayouts()
	require.NoError(t, err)
	assert.Empty(t, infos)
}
