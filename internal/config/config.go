package config

import (
	"fmt"
	"time"

	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory
const FileName = "cursortools.cfg.json"

// MemoryConfig holds in-memory/JSON storage backend settings
type MemoryConfig struct {
	OutputDir      string `json:"outputDir" mapstructure:"outputDir"`
	CompressOutput bool   `json:"compressOutput" mapstructure:"compressOutput"`
}

// SQLiteConfig holds settings for the in-memory SQLite backend
type SQLiteConfig struct {
	Path         string        `json:"path" mapstructure:"path"`
	DumpInterval time.Duration `json:"dumpInterval" mapstructure:"dumpInterval"`
}

// StorageConfig selects and configures the layout storage backend
type StorageConfig struct {
	Type   string       `json:"type" mapstructure:"type"` // csv, memory, sqlite or postgres
	CSVDir string       `json:"csvDir" mapstructure:"csvDir"`
	Memory MemoryConfig `json:"memory" mapstructure:"memory"`
	SQLite SQLiteConfig `json:"sqlite" mapstructure:"sqlite"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled      bool
	ServiceName  string
	BatchTimeout time.Duration
	Endpoint     string
	Insecure     bool
}

// InfluxConfig holds drag telemetry settings
type InfluxConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Protocol string
	Token    string
	Org      string
	Bucket   string
}

// ViewConfig holds desktop viewer window and axis settings
type ViewConfig struct {
	Width  int
	Height int
	XMin   float64
	XMax   float64
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file.
func Load(configDir string) error {
	setDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// LoadDefaults installs the defaults without reading a file
func LoadDefaults() {
	setDefaults()
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "./cursorlogs")
	viper.SetDefault("defaultLayout", "default")

	styles := core.DefaultStyles()
	viper.SetDefault("cursor.color", styles.Cursor.Color)
	viper.SetDefault("cursor.lineWidth", styles.Cursor.Width)
	viper.SetDefault("cursor.lineStyle", styles.Cursor.Dash)
	viper.SetDefault("cursor.fixedLineStyle", styles.FixedDash)
	viper.SetDefault("cursor.pickRadius", styles.Cursor.PickRadius)
	viper.SetDefault("cursor.labelY", styles.Label.Y)
	viper.SetDefault("cursor.labelSize", styles.Label.Size)

	viper.SetDefault("span.faceColor", styles.Span.FaceColor)
	viper.SetDefault("span.alpha", styles.Span.Alpha)
	viper.SetDefault("span.lineStyle", styles.Span.Dash)
	viper.SetDefault("span.hatch", styles.Span.Hatch)
	viper.SetDefault("span.widthDivisor", styles.SpanWidthDivisor)

	viper.SetDefault("storage.type", "csv")
	viper.SetDefault("storage.csv.dir", "./layouts")
	viper.SetDefault("storage.memory.outputDir", "./layouts")
	viper.SetDefault("storage.memory.compressOutput", true)
	viper.SetDefault("storage.sqlite.path", "./layouts/cursortools.db")
	viper.SetDefault("storage.sqlite.dumpInterval", "3m")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.username", "postgres")
	viper.SetDefault("db.password", "postgres")
	viper.SetDefault("db.database", "cursortools")

	viper.SetDefault("influx.enabled", false)
	viper.SetDefault("influx.host", "localhost")
	viper.SetDefault("influx.port", "8086")
	viper.SetDefault("influx.protocol", "http")
	viper.SetDefault("influx.token", "supersecrettoken")
	viper.SetDefault("influx.org", "cursortools")
	viper.SetDefault("influx.bucket", "cursor_moves")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "cursortools")
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)

	viper.SetDefault("view.width", 1024)
	viper.SetDefault("view.height", 480)
	viper.SetDefault("view.xMin", -10.0)
	viper.SetDefault("view.xMax", 10.0)
}

// GetStorageConfig returns the storage backend settings
func GetStorageConfig() StorageConfig {
	return StorageConfig{
		Type:   viper.GetString("storage.type"),
		CSVDir: viper.GetString("storage.csv.dir"),
		Memory: MemoryConfig{
			OutputDir:      viper.GetString("storage.memory.outputDir"),
			CompressOutput: viper.GetBool("storage.memory.compressOutput"),
		},
		SQLite: SQLiteConfig{
			Path:         viper.GetString("storage.sqlite.path"),
			DumpInterval: viper.GetDuration("storage.sqlite.dumpInterval"),
		},
	}
}

// GetOTelConfig returns the OpenTelemetry settings
func GetOTelConfig() OTelConfig {
	return OTelConfig{
		Enabled:      viper.GetBool("otel.enabled"),
		ServiceName:  viper.GetString("otel.serviceName"),
		BatchTimeout: viper.GetDuration("otel.batchTimeout"),
		Endpoint:     viper.GetString("otel.endpoint"),
		Insecure:     viper.GetBool("otel.insecure"),
	}
}

// GetInfluxConfig returns the drag telemetry settings
func GetInfluxConfig() InfluxConfig {
	return InfluxConfig{
		Enabled:  viper.GetBool("influx.enabled"),
		Host:     viper.GetString("influx.host"),
		Port:     viper.GetString("influx.port"),
		Protocol: viper.GetString("influx.protocol"),
		Token:    viper.GetString("influx.token"),
		Org:      viper.GetString("influx.org"),
		Bucket:   viper.GetString("influx.bucket"),
	}
}

// GetViewConfig returns the desktop viewer settings
func GetViewConfig() ViewConfig {
	return ViewConfig{
		Width:  viper.GetInt("view.width"),
		Height: viper.GetInt("view.height"),
		XMin:   viper.GetFloat64("view.xMin"),
		XMax:   viper.GetFloat64("view.xMax"),
	}
}

// GetStyles builds marker and span styles from the cursor.* and span.* keys.
// Keys that are unset keep the built-in style.
func GetStyles() core.Styles {
	s := core.DefaultStyles()
	if v := viper.GetString("cursor.color"); v != "" {
		s.Cursor.Color = v
	}
	if v := viper.GetFloat64("cursor.lineWidth"); v > 0 {
		s.Cursor.Width = v
	}
	if v := viper.GetString("cursor.lineStyle"); v != "" {
		s.Cursor.Dash = v
	}
	if v := viper.GetString("cursor.fixedLineStyle"); v != "" {
		s.FixedDash = v
	}
	if v := viper.GetFloat64("cursor.pickRadius"); v > 0 {
		s.Cursor.PickRadius = v
	}
	if viper.IsSet("cursor.labelY") {
		s.Label.Y = viper.GetFloat64("cursor.labelY")
	}
	if v := viper.GetFloat64("cursor.labelSize"); v > 0 {
		s.Label.Size = v
	}
	if v := viper.GetString("span.faceColor"); v != "" {
		s.Span.FaceColor = v
	}
	if v := viper.GetFloat64("span.alpha"); v > 0 {
		s.Span.Alpha = v
	}
	if v := viper.GetString("span.lineStyle"); v != "" {
		s.Span.Dash = v
	}
	if v := viper.GetString("span.hatch"); v != "" {
		s.Span.Hatch = v
	}
	if v := viper.GetFloat64("span.widthDivisor"); v > 0 {
		s.SpanWidthDivisor = v
	}
	return s
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
