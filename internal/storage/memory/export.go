// internal/storage/memory/export.go
package memory

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/google/uuid"
)

const (
	jsonExt = ".layout.json"
	gzExt   = ".layout.json.gz"
)

// LayoutExport is the root JSON structure of a snapshot
type LayoutExport struct {
	UUID    string       `json:"uuid"`
	Name    string       `json:"name"`
	SavedAt time.Time    `json:"savedAt"`
	Markers []MarkerJSON `json:"markers"`
}

// MarkerJSON is one record of a snapshot
type MarkerJSON struct {
	ID       int     `json:"id"`
	Tag      string  `json:"tag"`
	Position float64 `json:"position"`
	Type     string  `json:"type"`
	Mode     string  `json:"mode"`
	Color    string  `json:"color,omitempty"`
}

func (b *Backend) snapshotPath(name string, compressed bool) string {
	if compressed {
		return filepath.Join(b.cfg.OutputDir, name+gzExt)
	}
	return filepath.Join(b.cfg.OutputDir, name+jsonExt)
}

// exportJSON writes the layout to a JSON file, gzipped if configured,
// and removes the snapshot in the other format
func (b *Backend) exportJSON(rec *LayoutRecord) error {
	export := buildExport(rec)

	outputPath := b.snapshotPath(rec.Name, b.cfg.CompressOutput)
	if b.cfg.CompressOutput {
		if err := writeGzipJSON(outputPath, export); err != nil {
			return err
		}
	} else {
		if err := writeJSON(outputPath, export); err != nil {
			return err
		}
	}

	stale := b.snapshotPath(rec.Name, !b.cfg.CompressOutput)
	if err := os.Remove(stale); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale snapshot: %w", err)
	}
	return nil
}

func buildExport(rec *LayoutRecord) LayoutExport {
	export := LayoutExport{
		UUID:    rec.UUID.String(),
		Name:    rec.Name,
		SavedAt: rec.SavedAt,
		Markers: make([]MarkerJSON, 0, len(rec.Records)),
	}
	for _, r := range rec.Records {
		export.Markers = append(export.Markers, MarkerJSON{
			ID:       r.ID,
			Tag:      r.Tag,
			Position: r.Position,
			Type:     r.Type.String(),
			Mode:     r.Mode.String(),
			Color:    r.Color,
		})
	}
	return export
}

func parseExport(export LayoutExport) (*LayoutRecord, error) {
	id, err := uuid.Parse(export.UUID)
	if err != nil {
		id = uuid.New()
	}
	rec := &LayoutRecord{
		UUID:    id,
		Name:    export.Name,
		SavedAt: export.SavedAt,
		Records: make([]core.MarkerRecord, 0, len(export.Markers)),
	}
	for i, m := range export.Markers {
		kind, err := core.ParseKind(m.Type)
		if err != nil {
			return nil, fmt.Errorf("marker %d: %w", i, err)
		}
		mode, err := core.ParseMode(m.Mode)
		if err != nil {
			return nil, fmt.Errorf("marker %d: %w", i, err)
		}
		rec.Records = append(rec.Records, core.MarkerRecord{
			ID:       m.ID,
			Tag:      m.Tag,
			Position: m.Position,
			Type:     kind,
			Mode:     mode,
			Color:    m.Color,
		})
	}
	return rec, nil
}

// readSnapshots parses every snapshot in the output directory
func (b *Backend) readSnapshots() ([]*LayoutRecord, error) {
	entries, err := os.ReadDir(b.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory: %w", err)
	}

	var out []*LayoutRecord
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() {
			continue
		}
		var compressed bool
		switch {
		case strings.HasSuffix(n, gzExt):
			compressed = true
		case strings.HasSuffix(n, jsonExt):
		default:
			continue
		}

		export, err := readExport(filepath.Join(b.cfg.OutputDir, n), compressed)
		if err != nil {
			return nil, err
		}
		rec, err := parseExport(export)
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", n, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func readExport(path string, compressed bool) (LayoutExport, error) {
	var export LayoutExport

	f, err := os.Open(path)
	if err != nil {
		return export, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return export, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return export, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return export, nil
}

func writeJSON(path string, data LayoutExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data LayoutExport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}
