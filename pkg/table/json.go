package table

import (
	"bytes"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
	"github.com/matzehuels/tagcloud/pkg/term"
)

// Document is the JSON table format.
type Document struct {
	Columns []ColumnDoc `json:"columns"`
	Rows    []RowDoc    `json:"rows"`
}

// ColumnDoc is a column declaration. An empty type means string.
type ColumnDoc struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// RowDoc is one JSON row.
type RowDoc struct {
	ID    string            `json:"id,omitempty"`
	Cells []json.RawMessage `json:"cells"`
	Size  *float64          `json:"size,omitempty"`
	Color string            `json:"color,omitempty"`
}

var null = []byte("null")

// ReadJSON decodes a JSON table from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Table, error) {
	var doc Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode table")
	}
	return doc.Table()
}

// Table converts the document into a table.
func (d *Document) Table() (*Table, error) {
	if len(d.Columns) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "table has no columns")
	}

	cols := make([]tagcloud.Column, len(d.Columns))
	seen := make(map[string]bool, len(d.Columns))
	for i, c := range d.Columns {
		if err := errors.ValidateColumnName(c.Name); err != nil {
			return nil, err
		}
		if seen[c.Name] {
			return nil, errors.New(errors.ErrCodeInvalidColumn, "duplicate column %q", c.Name)
		}
		seen[c.Name] = true

		typ := tagcloud.ColumnType(c.Type)
		switch typ {
		case "":
			typ = tagcloud.TypeString
		case tagcloud.TypeString, tagcloud.TypeNumber, tagcloud.TypeTerm:
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "column %q: unknown type %q", c.Name, c.Type)
		}
		cols[i] = tagcloud.Column{Name: c.Name, Type: typ}
	}

	t := &Table{Schema: tagcloud.NewSchema(cols...), Records: make([]Record, 0, len(d.Rows))}
	for i, row := range d.Rows {
		rec := Record{id: row.ID, cells: make([]tagcloud.Cell, len(cols))}
		if rec.id == "" {
			rec.id = "Row" + strconv.Itoa(i)
		}
		if len(row.Cells) != len(cols) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "row %s: %d cells, want %d", rec.id, len(row.Cells), len(cols))
		}
		if row.Size != nil {
			rec.size = *row.Size
		}
		if row.Color != "" {
			c, err := tagcloud.ParseColor(row.Color)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "row %s: color", rec.id)
			}
			rec.color, rec.hasColor = c, true
		}
		for j, raw := range row.Cells {
			cell, err := decodeCell(raw, cols[j].Type)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "row %s, column %q", rec.id, cols[j].Name)
			}
			rec.cells[j] = cell
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// decodeCell reads one cell. Values that do not fit the column type are kept
// as decoded; the engine treats a non-numeric weight as missing.
func decodeCell(raw json.RawMessage, typ tagcloud.ColumnType) (tagcloud.Cell, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, null) {
		return tagcloud.MissingCell, nil
	}
	if typ == tagcloud.TypeTerm && raw[0] == '{' {
		var tm term.Term
		if err := json.Unmarshal(raw, &tm); err != nil {
			return tagcloud.Cell{}, err
		}
		return tagcloud.NewCell(term.New(tm.Text, tm.Tags...)), nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return tagcloud.Cell{}, err
	}
	return tagcloud.NewCell(v), nil
}

// WriteJSON encodes t in the format read by [ReadJSON].
func WriteJSON(w io.Writer, t *Table) error {
	doc := Document{
		Columns: make([]ColumnDoc, len(t.Schema.Columns)),
		Rows:    make([]RowDoc, len(t.Records)),
	}
	for i, c := range t.Schema.Columns {
		doc.Columns[i] = ColumnDoc{Name: c.Name, Type: string(c.Type)}
	}
	for i, rec := range t.Records {
		row := RowDoc{ID: rec.id, Cells: make([]json.RawMessage, len(rec.cells))}
		if rec.size != 0 {
			size := rec.size
			row.Size = &size
		}
		if rec.hasColor {
			row.Color = rec.color.Hex()
		}
		for j, c := range rec.cells {
			b, err := json.Marshal(c.Value())
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode row %s", rec.id)
			}
			row.Cells[j] = b
		}
		doc.Rows[i] = row
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
