package table

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

// CSVOptions maps CSV columns to row properties.
type CSVOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune `toml:"comma" json:"comma,omitempty"`

	// IDColumn holds the row ids. Without it rows are named Row0, Row1, ...
	IDColumn string `toml:"id_column" json:"id_column,omitempty"`

	// SizeColumn holds the row-level size property.
	SizeColumn string `toml:"row_size_column" json:"row_size_column,omitempty"`

	// ColorColumn holds the row-level colour as #rgb, #rrggbb or #rrggbbaa.
	ColorColumn string `toml:"row_color_column" json:"row_color_column,omitempty"`

	// MissingToken is a cell value read as missing in addition to "".
	MissingToken string `toml:"missing_token" json:"missing_token,omitempty"`

	// TermColumns are typed as term columns.
	TermColumns []string `toml:"term_columns" json:"term_columns,omitempty"`
}

// ReadCSV reads a CSV table with a header row. ReadCSV does not close r.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty table: no header row")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read header")
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	lay, err := newLayout(header, opts)
	if err != nil {
		return nil, err
	}

	var raw [][]string
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read row %d", len(raw))
		}
		raw = append(raw, fields)
	}

	missing := func(s string) bool {
		return s == "" || (opts.MissingToken != "" && s == opts.MissingToken)
	}

	cols := make([]tagcloud.Column, len(lay.data))
	numeric := make([]bool, len(lay.data))
	for j, src := range lay.data {
		cols[j] = tagcloud.Column{Name: header[src], Type: tagcloud.TypeString}
		if slices.Contains(opts.TermColumns, header[src]) {
			cols[j].Type = tagcloud.TypeTerm
			continue
		}
		if isNumberColumn(raw, src, missing) {
			cols[j].Type = tagcloud.TypeNumber
			numeric[j] = true
		}
	}

	t := &Table{Schema: tagcloud.NewSchema(cols...), Records: make([]Record, 0, len(raw))}
	for i, fields := range raw {
		rec := Record{id: "Row" + strconv.Itoa(i), cells: make([]tagcloud.Cell, len(lay.data))}
		if lay.id >= 0 {
			rec.id = fields[lay.id]
		}
		if lay.size >= 0 {
			s, err := strconv.ParseFloat(strings.TrimSpace(fields[lay.size]), 64)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "row %s: size %q is not a number", rec.id, fields[lay.size])
			}
			rec.size = s
		}
		if lay.color >= 0 && !missing(fields[lay.color]) {
			c, err := tagcloud.ParseColor(strings.TrimSpace(fields[lay.color]))
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "row %s: color", rec.id)
			}
			rec.color, rec.hasColor = c, true
		}
		for j, src := range lay.data {
			v := fields[src]
			switch {
			case missing(v):
				rec.cells[j] = tagcloud.MissingCell
			case numeric[j]:
				f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
				rec.cells[j] = tagcloud.NewCell(tagcloud.Numeral{Raw: v, Value: f})
			default:
				rec.cells[j] = tagcloud.NewCell(v)
			}
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

// layout records which header positions are row properties and which are data.
type layout struct {
	id, size, color int
	data            []int
}

func newLayout(header []string, opts CSVOptions) (layout, error) {
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if err := errors.ValidateColumnName(name); err != nil {
			return layout{}, err
		}
		if seen[name] {
			return layout{}, errors.New(errors.ErrCodeInvalidColumn, "duplicate column %q", name)
		}
		seen[name] = true
	}

	find := func(name string) (int, error) {
		if name == "" {
			return -1, nil
		}
		i := slices.Index(header, name)
		if i < 0 {
			return -1, errors.New(errors.ErrCodeInvalidColumn, "column %q not found (columns: %v)", name, header)
		}
		return i, nil
	}

	var l layout
	var err error
	if l.id, err = find(opts.IDColumn); err != nil {
		return layout{}, err
	}
	if l.size, err = find(opts.SizeColumn); err != nil {
		return layout{}, err
	}
	if l.color, err = find(opts.ColorColumn); err != nil {
		return layout{}, err
	}
	for _, name := range opts.TermColumns {
		if _, err := find(name); err != nil {
			return layout{}, err
		}
	}
	for i := range header {
		if i != l.id && i != l.size && i != l.color {
			l.data = append(l.data, i)
		}
	}
	return l, nil
}

// isNumberColumn reports whether column col has at least one present cell and
// every present cell parses as a float.
func isNumberColumn(rows [][]string, col int, missing func(string) bool) bool {
	present := false
	for _, fields := range rows {
		v := fields[col]
		if missing(v) {
			continue
		}
		if _, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return false
		}
		present = true
	}
	return present
}
