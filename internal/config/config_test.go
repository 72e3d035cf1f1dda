package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"defaultLayout": "session-a",
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, "session-a", viper.GetString("defaultLayout"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./cursorlogs", viper.GetString("logsDir"))
	assert.Equal(t, "default", viper.GetString("defaultLayout"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "5432", viper.GetString("db.port"))
	assert.Equal(t, "postgres", viper.GetString("db.username"))
	assert.Equal(t, "postgres", viper.GetString("db.password"))
	assert.Equal(t, "cursortools", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "cursor_moves", viper.GetString("influx.bucket"))
	assert.Equal(t, "csv", viper.GetString("storage.type"))
	assert.Equal(t, "./layouts", viper.GetString("storage.csv.dir"))
	assert.Equal(t, "3m", viper.GetString("storage.sqlite.dumpInterval"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
	assert.Equal(t, "cursortools", viper.GetString("otel.serviceName"))
	assert.Equal(t, 1024, viper.GetInt("view.width"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestGetters(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	viper.Set("testInt", 42)
	viper.Set("testBool", true)

	assert.Equal(t, "testValue", GetString("testKey"))
	assert.Equal(t, 42, GetInt("testInt"))
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetStorageConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	LoadDefaults()

	cfg := GetStorageConfig()
	assert.Equal(t, "csv", cfg.Type)
	assert.Equal(t, "./layouts", cfg.CSVDir)
	assert.Equal(t, "./layouts", cfg.Memory.OutputDir)
	assert.Equal(t, true, cfg.Memory.CompressOutput)
	assert.Equal(t, "./layouts/cursortools.db", cfg.SQLite.Path)
	assert.Equal(t, 3*time.Minute, cfg.SQLite.DumpInterval)
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"storage": {
			"type": "sqlite",
			"csv": { "dir": "/tmp/csv" },
			"memory": { "outputDir": "/tmp/out", "compressOutput": false },
			"sqlite": { "path": "/tmp/l.db", "dumpInterval": "10m" }
		}
	}`)
	require.NoError(t, Load(dir))

	sc := GetStorageConfig()
	assert.Equal(t, "sqlite", sc.Type)
	assert.Equal(t, "/tmp/csv", sc.CSVDir)
	assert.Equal(t, "/tmp/out", sc.Memory.OutputDir)
	assert.Equal(t, false, sc.Memory.CompressOutput)
	assert.Equal(t, "/tmp/l.db", sc.SQLite.Path)
	assert.Equal(t, 10*time.Minute, sc.SQLite.DumpInterval)
}

func TestGetOTelConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	LoadDefaults()

	cfg := GetOTelConfig()
	assert.Equal(t, false, cfg.Enabled)
	assert.Equal(t, "cursortools", cfg.ServiceName)
	assert.Equal(t, 5*time.Second, cfg.BatchTimeout)
	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, true, cfg.Insecure)

	viper.Set("otel.enabled", true)
	viper.Set("otel.batchTimeout", "30s")
	viper.Set("otel.endpoint", "localhost:4318")
	cfg = GetOTelConfig()
	assert.Equal(t, true, cfg.Enabled)
	assert.Equal(t, 30*time.Second, cfg.BatchTimeout)
	assert.Equal(t, "localhost:4318", cfg.Endpoint)
}

func TestGetInfluxConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{ "influx": { "enabled": true, "host": "influx.lan", "bucket": "drags" } }`)
	require.NoError(t, Load(dir))

	ic := GetInfluxConfig()
	assert.True(t, ic.Enabled)
	assert.Equal(t, "influx.lan", ic.Host)
	assert.Equal(t, "8086", ic.Port)
	assert.Equal(t, "http", ic.Protocol)
	assert.Equal(t, "cursortools", ic.Org)
	assert.Equal(t, "drags", ic.Bucket)
}

func TestGetViewConfig(t *testing.T) {
	t.Cleanup(viper.Reset)
	LoadDefaults()
	viper.Set("view.xMin", 0)
	viper.Set("view.xMax", 250.5)

	vc := GetViewConfig()
	assert.Equal(t, 1024, vc.Width)
	assert.Equal(t, 480, vc.Height)
	assert.Equal(t, 0.0, vc.XMin)
	assert.Equal(t, 250.5, vc.XMax)
}

func TestGetStyles(t *testing.T) {
	t.Cleanup(viper.Reset)

	LoadDefaults()
	assert.Equal(t, core.DefaultStyles(), GetStyles())

	dir := writeConfig(t, `{
		"cursor": { "color": "blue", "lineWidth": 2, "pickRadius": 4, "labelY": 0.9 },
		"span": { "alpha": 0.5, "widthDivisor": 4 }
	}`)
	require.NoError(t, Load(dir))

	s := GetStyles()
	assert.Equal(t, "blue", s.Cursor.Color)
	assert.Equal(t, 2.0, s.Cursor.Width)
	assert.Equal(t, 4.0, s.Cursor.PickRadius)
	assert.Equal(t, "--", s.Cursor.Dash)
	assert.Equal(t, 0.9, s.Label.Y)
	assert.Equal(t, 0.5, s.Span.Alpha)
	assert.Equal(t, 4.0, s.SpanWidthDivisor)
	assert.Equal(t, `//\\`, s.Span.Hatch)
}
