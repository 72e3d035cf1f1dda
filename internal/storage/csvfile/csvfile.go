// Package csvfile stores each layout as <dir>/<name>.csv using the tabular
// record format.
package csvfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/OCAP2/cursortools/internal/layout"
	"github.com/OCAP2/cursortools/internal/storage"
	"github.com/OCAP2/cursortools/pkg/core"
)

const ext = ".csv"

// Backend reads and writes layouts as CSV files in a directory
type Backend struct {
	dir string
}

// New creates a CSV backend rooted at dir
func New(dir string) *Backend {
	return &Backend{dir: dir}
}

// Init creates the layout directory
func (b *Backend) Init() error {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("failed to create layout directory: %w", err)
	}
	return nil
}

// Close is a no-op
func (b *Backend) Close() error {
	return nil
}

// ExportPath returns the file a layout is stored in
func (b *Backend) ExportPath(name string) string {
	return filepath.Join(b.dir, name+ext)
}

// SaveLayout writes the records to a temp file and renames it over the target
func (b *Backend) SaveLayout(name string, records []core.MarkerRecord) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	f, err := os.CreateTemp(b.dir, "."+name+"-*"+ext)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()

	if err := layout.WriteCSV(f, records); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp, b.ExportPath(name)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to store layout: %w", err)
	}
	return nil
}

// LoadLayout reads a layout file
func (b *Backend) LoadLayout(name string) ([]core.MarkerRecord, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	f, err := os.Open(b.ExportPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", storage.ErrLayoutNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open layout: %w", err)
	}
	defer f.Close()

	records, err := layout.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", name, err)
	}
	return records, nil
}

// ListLayouts lists the CSV files in the directory, skipping unreadable ones
func (b *Backend) ListLayouts() ([]storage.LayoutInfo, error) {
	entries, err := os.ReadDir(b.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read layout directory: %w", err)
	}

	var out []storage.LayoutInfo
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasSuffix(n, ext) || strings.HasPrefix(n, ".") {
			continue
		}
		name := strings.TrimSuffix(n, ext)
		fi, err := e.Info()
		if err != nil {
			continue
		}
		records, err := b.LoadLayout(name)
		if err != nil {
			continue
		}
		out = append(out, storage.LayoutInfo{
			Name:    name,
			SavedAt: fi.ModTime(),
			Markers: len(records),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DeleteLayout removes a layout file
func (b *Backend) DeleteLayout(name string) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(b.ExportPath(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", storage.ErrLayoutNotFound, name)
	}
	return err
}
