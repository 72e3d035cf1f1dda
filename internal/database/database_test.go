package database

import (
	"path/filepath"
	"testing"

	"github.com/OCAP2/cursortools/internal/model"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("db.host", "db.local")
	viper.Set("db.port", "5433")
	viper.Set("db.username", "u")
	viper.Set("db.password", "p")
	viper.Set("db.database", "layouts")

	assert.Equal(t, "host=db.local port=5433 user=u password=p dbname=layouts sslmode=disable", PostgresDSN())
}

func TestMigrate(t *testing.T) {
	db, err := GetSqliteMemoryDB(uuid.NewString())
	require.NoError(t, err)

	require.NoError(t, Migrate(db))
	// idempotent
	require.NoError(t, Migrate(db))

	for _, m := range model.DatabaseModels {
		assert.True(t, db.Migrator().HasTable(m))
	}

	var infos []model.ToolInfo
	require.NoError(t, db.Find(&infos).Error)
	require.Len(t, infos, 1)
	assert.Equal(t, model.SchemaVersion, infos[0].SchemaVersion)
}

func TestMemoryDBsAreIsolated(t *testing.T) {
	a, err := GetSqliteMemoryDB(uuid.NewString())
	require.NoError(t, err)
	b, err := GetSqliteMemoryDB(uuid.NewString())
	require.NoError(t, err)

	require.NoError(t, Migrate(a))
	assert.False(t, b.Migrator().HasTable(&model.Layout{}))
}

func TestDumpMemoryDBToDisk(t *testing.T) {
	db, err := GetSqliteMemoryDB(uuid.NewString())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	path := filepath.Join(t.TempDir(), "dump.db")
	require.NoError(t, DumpMemoryDBToDisk(db, path))
	// a second dump replaces the first
	require.NoError(t, DumpMemoryDBToDisk(db, path))

	disk, err := GetSqliteDBStandalone(path)
	require.NoError(t, err)
	assert.True(t, disk.Migrator().HasTable(&model.MarkerRow{}))

	assert.Error(t, DumpMemoryDBToDisk(db, ""))
}

func TestManager_CloseWithoutConnect(t *testing.T) {
	m := &Manager{}
	assert.NoError(t, m.Close())
}
