package table

import (
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

// Record is one row of a [Table]. It implements [tagcloud.Row].
type Record struct {
	id       string
	cells    []tagcloud.Cell
	size     float64
	color    tagcloud.Color
	hasColor bool
}

var _ tagcloud.Row = Record{}

// NewRecord builds a record from raw cell values. nil values are missing.
func NewRecord(id string, values ...any) Record {
	cells := make([]tagcloud.Cell, len(values))
	for i, v := range values {
		cells[i] = tagcloud.NewCell(v)
	}
	return Record{id: id, cells: cells}
}

// WithSize returns a copy of r with the row-level size property set.
func (r Record) WithSize(size float64) Record {
	r.size = size
	return r
}

// WithColor returns a copy of r with the row-level colour set.
func (r Record) WithColor(c tagcloud.Color) Record {
	r.color, r.hasColor = c, true
	return r
}

func (r Record) ID() string { return r.id }

func (r Record) Cell(i int) tagcloud.Cell {
	if i < 0 || i >= len(r.cells) {
		return tagcloud.MissingCell
	}
	return r.cells[i]
}

func (r Record) Size() float64 { return r.size }

func (r Record) Color() (tagcloud.Color, bool) { return r.color, r.hasColor }

// Table is a fully read input table.
type Table struct {
	Schema  tagcloud.Schema
	Records []Record
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// Source returns a fresh row source over the records.
func (t *Table) Source() *Source { return NewSource(t.Schema, t.Records) }

// Source is a slice-backed [tagcloud.RowSource].
type Source struct {
	schema  tagcloud.Schema
	records []Record
	pos     int
}

var _ tagcloud.RowSource = (*Source)(nil)

// NewSource returns a row source over records.
func NewSource(schema tagcloud.Schema, records []Record) *Source {
	return &Source{schema: schema, records: records}
}

func (s *Source) Schema() tagcloud.Schema { return s.schema }

func (s *Source) Next() bool {
	if s.pos >= len(s.records) {
		return false
	}
	s.pos++
	return true
}

func (s *Source) Row() tagcloud.Row { return s.records[s.pos-1] }

func (s *Source) Err() error { return nil }
