// Package convert provides functions to convert between GORM models and core models
package convert

import (
	"fmt"
	"time"

	"github.com/OCAP2/cursortools/internal/model"
	"github.com/OCAP2/cursortools/pkg/core"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CoreToMarkerRow converts a core.MarkerRecord to a GORM model.MarkerRow at position seq.
func CoreToMarkerRow(rec core.MarkerRecord, seq int) model.MarkerRow {
	return model.MarkerRow{
		Seq:       seq,
		DisplayID: rec.ID,
		Tag:       rec.Tag,
		Position:  rec.Position,
		Type:      rec.Type.String(),
		Mode:      rec.Mode.String(),
		Color:     rec.Color,
	}
}

// MarkerRowToCore converts a GORM model.MarkerRow back to a core.MarkerRecord.
func MarkerRowToCore(row model.MarkerRow) (core.MarkerRecord, error) {
	kind, err := core.ParseKind(row.Type)
	if err != nil {
		return core.MarkerRecord{}, fmt.Errorf("marker row %d: %w", row.ID, err)
	}
	mode, err := core.ParseMode(row.Mode)
	if err != nil {
		return core.MarkerRecord{}, fmt.Errorf("marker row %d: %w", row.ID, err)
	}
	return core.MarkerRecord{
		ID:       row.DisplayID,
		Tag:      row.Tag,
		Position: row.Position,
		Type:     kind,
		Mode:     mode,
		Color:    row.Color,
	}, nil
}

// CoreToLayout builds a new layout with a fresh UUID. Rows keep record order.
func CoreToLayout(name string, records []core.MarkerRecord, meta map[string]any) model.Layout {
	rows := make([]model.MarkerRow, len(records))
	for i, rec := range records {
		rows[i] = CoreToMarkerRow(rec, i)
	}
	var m datatypes.JSONMap
	if meta != nil {
		m = datatypes.JSONMap(meta)
	}
	return model.Layout{
		UUID:    uuid.New(),
		Name:    name,
		SavedAt: time.Now().UTC(),
		Meta:    m,
		Markers: rows,
	}
}

// LayoutToCore converts a layout's rows to records ordered by Seq.
// Rows must already be sorted by Seq.
func LayoutToCore(l model.Layout) ([]core.MarkerRecord, error) {
	out := make([]core.MarkerRecord, 0, len(l.Markers))
	for _, row := range l.Markers {
		rec, err := MarkerRowToCore(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
