// internal/storage/storage.go
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/OCAP2/cursortools/pkg/core"
)

var (
	// ErrLayoutNotFound is returned when no layout has the requested name
	ErrLayoutNotFound = errors.New("layout not found")
	// ErrInvalidName is returned for names that are empty or contain path separators
	ErrInvalidName = errors.New("invalid layout name")
)

// Backend is the interface all layout storage implementations must satisfy
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// SaveLayout stores records under name, replacing any previous layout
	SaveLayout(name string, records []core.MarkerRecord) error
	// LoadLayout returns the records of a layout in saved order
	LoadLayout(name string) ([]core.MarkerRecord, error)
	// ListLayouts returns the stored layouts sorted by name
	ListLayouts() ([]LayoutInfo, error)
	// DeleteLayout removes a layout
	DeleteLayout(name string) error
}

// LayoutInfo summarizes a stored layout
type LayoutInfo struct {
	Name    string
	SavedAt time.Time
	Markers int
}

// Exporter is an optional interface for backends that keep their layouts in
// files a user can pick up directly.
type Exporter interface {
	ExportPath(name string) string
}

// ValidateName rejects names that cannot be used as a file stem
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\:`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// MetaSaver is an optional interface for backends that can keep free-form
// metadata, such as the axis range, alongside a layout.
type MetaSaver interface {
	SaveLayoutMeta(name string, records []core.MarkerRecord, meta map[string]any) error
}

// MetaLoader reads back what a MetaSaver stored
type MetaLoader interface {
	LoadMeta(name string) (map[string]any, error)
}

// AxisRange reads the xMin/xMax pair saved with a layout. ok is false when
// either is missing or the range is empty.
func AxisRange(meta map[string]any) (lo, hi float64, ok bool) {
	lo, okLo := number(meta["xMin"])
	hi, okHi := number(meta["xMax"])
	if !okLo || !okHi || hi <= lo {
		return 0, 0, false
	}
	return lo, hi, true
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
