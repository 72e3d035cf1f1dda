package layout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/OCAP2/cursortools/pkg/core"
)

// Columns is the header written by WriteCSV
var Columns = []string{"id", "tag", "position", "type", "mode", "color"}

// column aliases accepted by ReadCSV
var columnAliases = map[string]string{
	"xpos": "position",
}

// WriteCSV writes records with a header row
func WriteCSV(w io.Writer, records []core.MarkerRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		row := []string{
			strconv.Itoa(rec.ID),
			rec.Tag,
			strconv.FormatFloat(rec.Position, 'g', -1, 64),
			rec.Type.String(),
			rec.Mode.String(),
			rec.Color,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record %d: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses records written by WriteCSV. Columns are matched by name,
// case-insensitively, in any order. position and type are required; a missing
// mode means interact.
func ReadCSV(r io.Reader) ([]core.MarkerRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if alias, ok := columnAliases[name]; ok {
			name = alias
		}
		cols[name] = i
	}
	for _, required := range []string{"position", "type"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrInvalidRecord, required)
		}
	}

	var out []core.MarkerRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}
		rec, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(row []string, cols map[string]int) (core.MarkerRecord, error) {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec core.MarkerRecord
	var err error

	if s := get("id"); s != "" {
		// ids may have been written as floats by other tools
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return rec, fmt.Errorf("%w: id %q", ErrInvalidRecord, s)
		}
		rec.ID = int(f)
	}
	if rec.Position, err = strconv.ParseFloat(get("position"), 64); err != nil {
		return rec, fmt.Errorf("%w: position %q", ErrInvalidRecord, get("position"))
	}
	if rec.Type, err = core.ParseKind(get("type")); err != nil {
		return rec, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if s := get("mode"); s != "" {
		if rec.Mode, err = core.ParseMode(s); err != nil {
			return rec, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
	}
	if i, ok := cols["tag"]; ok && i < len(row) {
		rec.Tag = row[i]
	}
	rec.Color = get("color")
	return rec, nil
}
