package memory

import (
	"path/filepath"
	"testing"

	"github.com/OCAP2/cursortools/internal/config"
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
		{ID: 4, Tag: "(4) onset", Position: 0.25, Type: core.KindStandalone, Mode: core.ModeInteract},
		{ID: 5, Tag: "(5)", Position: 2, Type: core.KindSpanEndpoint, Mode: core.ModeInteract, Color: "green"},
		{ID: 6, Tag: "(6)", Position: 3, Type: core.KindSpanEndpoint, Mode: core.ModeInteract, Color: "green"},
	}
}

func TestNoOutputDir(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.Init())
	defer b.Close()

	require.NoError(t, b.SaveLayout("a", sampleRecords()))
	got, err := b.LoadLayout("a")
	require.NoError(t, err)
	assert.Equal(t, sampleRecords(), got)

	_, err = b.LoadLayout("b")
	assert.ErrorIs(t, err, storage.ErrLayoutNotFound)
}

func TestSave_CopiesRecords(t *testing.T) {
	b := New(config.MemoryConfig{})
	records := sampleRecords()
	require.NoError(t, b.SaveLayout("a", records))

	records[0].Tag = "mutated"
	got, err := b.LoadLayout("a")
	require.NoError(t, err)
	assert.Equal(t, "(4) onset", got[0].Tag)

	got[1].Tag = "mutated"
	again, _ := b.LoadLayout("a")
	assert.Equal(t, "(5)", again[1].Tag)
}

func TestSave_KeepsUUID(t *testing.T) {
	b := New(config.MemoryConfig{})
	require.NoError(t, b.SaveLayout("a", sampleRecords()))
	first := b.layouts["a"].UUID

	require.NoError(t, b.SaveLayout("a", sampleRecords()[:1]))
	assert.Equal(t, first, b.layouts["a"].UUID)
}

func TestSnapshots(t *testing.T) {
	for _, compress := range []bool{false, true} {
		name := "plain"
		if compress {
			name = "gzip"
		}
		t.Run(name, func(t *testing.T) {
			cfg := config.MemoryConfig{OutputDir: filepath.Join(t.TempDir(), "out"), CompressOutput: compress}

			b := New(cfg)
			require.NoError(t, b.Init())
			require.NoError(t, b.SaveLayout("bench", sampleRecords()))
			assert.FileExists(t, b.ExportPath("bench"))
			require.NoError(t, b.Close())

			// a fresh backend picks the snapshot up on Init
			b2 := New(cfg)
			require.NoError(t, b2.Init())
			got, err := b2.LoadLayout("bench")
			require.NoError(t, err)
			assert.Equal(t, sampleRecords(), got)
			assert.Equal(t, b.layouts["bench"].UUID, b2.layouts["bench"].UUID)
		})
	}
}

func TestSnapshot_FormatSwitch(t *testing.T) {
	dir := t.TempDir()

	plain := New(config.MemoryConfig{OutputDir: dir})
	require.NoError(t, plain.Init())
	require.NoError(t, plain.SaveLayout("bench", sampleRecords()))

	gz := New(config.MemoryConfig{OutputDir: dir, CompressOutput: true})
	require.NoError(t, gz.Init())
	require.NoError(t, gz.SaveLayout("bench", sampleRecords()[:1]))

	assert.NoFileExists(t, plain.ExportPath("bench"))
	assert.FileExists(t, gz.ExportPath("bench"))
}

func TestListAndDelete(t *testing.T) {
	b := New(config.MemoryConfig{OutputDir: t.TempDir()})
	require.NoError(t, b.Init())

	require.NoError(t, b.SaveLayout("b", sampleRecords()))
	require.NoError(t, b.SaveLayout("a", sampleRecords()[:2]))

	infos, err := b.ListLayouts()
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, 2, infos[0].Markers)
	assert.False(t, infos[0].SavedAt.IsZero())

	require.NoError(t, b.DeleteLayout("a"))
	assert.NoFileExists(t, b.ExportPath("a"))
	assert.ErrorIs(t, b.DeleteLayout("a"), storage.ErrLayoutNotFound)
}

func TestParseExport_BadType(t *testing.T) {
	_, err := parseExport(LayoutExport{
		Name:    "x",
		Markers: []MarkerJSON{{Type: "diagonal", Mode: "fixed"}},
	})
	assert.Error(t, err)
}
