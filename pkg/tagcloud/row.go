package tagcloud

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ColumnType is the declared value type of a table column. The engine itself
// only distinguishes numbers from everything else; other types exist so that
// a [TermCapability] can decide whether it understands a column.
type ColumnType string

// Built-in column types.
const (
	TypeString ColumnType = "string"
	TypeNumber ColumnType = "number"
	TypeTerm   ColumnType = "term"
)

// Column describes one column of the input table.
type Column struct {
	Name string
	Type ColumnType
}

// Schema is the ordered column layout shared by every row of a [RowSource].
type Schema struct {
	Columns []Column
}

// NewSchema builds a schema from columns.
func NewSchema(cols ...Column) Schema {
	return Schema{Columns: cols}
}

// Index returns the position of the named column, or -1 if absent.
func (s Schema) Index(name string) int {
	for i, c := range s.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Len returns the number of columns.
func (s Schema) Len() int { return len(s.Columns) }

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Cell is a single table value. The zero Cell is missing.
type Cell struct {
	value any
}

// MissingCell is the missing value.
var MissingCell = Cell{}

// NewCell wraps v. A nil v yields a missing cell.
func NewCell(v any) Cell {
	return Cell{value: v}
}

// Missing reports whether the cell holds no value.
func (c Cell) Missing() bool { return c.value == nil }

// Value returns the raw value, nil when missing.
func (c Cell) Value() any { return c.value }

// Text returns the string representation of the cell. Missing cells yield "".
func (c Cell) Text() string {
	switch v := c.value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// Float returns the numeric value of the cell. Only Go numeric types (and
// json.Number) are numeric-compatible; strings are never converted here.
func (c Cell) Float() (float64, bool) {
	switch v := c.value.(type) {
	case float64:
		return v, true
	case Numeral:
		return v.Value, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return math.NaN(), false
		}
		return f, true
	default:
		return 0, false
	}
}

// Numeral is a number parsed from text. It is numeric for weights but keeps
// its source text for labels, so "007" and "7" stay distinct.
type Numeral struct {
	Raw   string
	Value float64
}

// String returns the source text unchanged.
func (n Numeral) String() string { return n.Raw }

// MarshalJSON encodes finite values as numbers and the rest as their text.
func (n Numeral) MarshalJSON() ([]byte, error) {
	if math.IsNaN(n.Value) || math.IsInf(n.Value, 0) {
		return []byte(strconv.Quote(n.Raw)), nil
	}
	return []byte(strconv.FormatFloat(n.Value, 'g', -1, 64)), nil
}

// Row is a single input row. Implementations are owned by the row source and
// only need to stay valid until the next call to [RowSource.Next].
type Row interface {
	// ID returns the stable row identifier.
	ID() string

	// Cell returns the cell at index. Out-of-range indexes yield a missing cell.
	Cell(index int) Cell

	// Size returns the row-level size property.
	Size() float64

	// Color returns the row-level colour property, if the row has one.
	Color() (Color, bool)
}

// RowSource streams rows in source order, in the style of database/sql.Rows:
//
//	for src.Next() {
//	    row := src.Row()
//	}
//	if err := src.Err(); err != nil { ... }
type RowSource interface {
	Schema() Schema
	Next() bool
	Row() Row
	Err() error
}
