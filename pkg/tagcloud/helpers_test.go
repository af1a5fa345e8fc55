package tagcloud

import (
	"errors"
	"fmt"
)

type testRow struct {
	id    string
	cells []Cell
	size  float64
	color *Color
}

func (r testRow) ID() string { return r.id }

func (r testRow) Cell(i int) Cell {
	if i < 0 || i >= len(r.cells) {
		return MissingCell
	}
	return r.cells[i]
}

func (r testRow) Size() float64 { return r.size }

func (r testRow) Color() (Color, bool) {
	if r.color == nil {
		return Color{}, false
	}
	return *r.color, true
}

type testSource struct {
	schema Schema
	rows   []Row
	pos    int
	err    error // returned by Err after the rows are exhausted
	nexts  int   // number of Next calls
}

func (s *testSource) Schema() Schema { return s.schema }

func (s *testSource) Next() bool {
	s.nexts++
	if s.pos >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

func (s *testSource) Row() Row { return s.rows[s.pos-1] }

func (s *testSource) Err() error {
	if s.pos >= len(s.rows) {
		return s.err
	}
	return nil
}

var wordSchema = NewSchema(
	Column{Name: "word", Type: TypeString},
	Column{Name: "count", Type: TypeNumber},
)

// wordRows builds rows of (word, count) pairs; a nil word or count is missing.
func wordRows(pairs ...[2]any) *testSource {
	src := &testSource{schema: wordSchema}
	for i, p := range pairs {
		src.rows = append(src.rows, testRow{
			id:    fmt.Sprintf("Row%d", i),
			cells: []Cell{NewCell(p[0]), NewCell(p[1])},
		})
	}
	return src
}

func wordConfig() Config {
	cfg := DefaultConfig()
	cfg.LabelColumn = "word"
	cfg.SizeColumn = "count"
	return cfg
}

var termSchema = NewSchema(
	Column{Name: "term", Type: TypeTerm},
	Column{Name: "count", Type: TypeNumber},
)

// termCap reads cells holding a Term value.
type termCap struct{}

func (termCap) Supports(t ColumnType) bool { return t == TypeTerm }

func (termCap) Extract(c Cell) (Term, error) {
	t, ok := c.Value().(Term)
	if !ok {
		return Term{}, errors.New("not a term")
	}
	return t, nil
}

func termRows(terms ...any) *testSource {
	src := &testSource{schema: termSchema}
	for i, t := range terms {
		src.rows = append(src.rows, testRow{
			id:    fmt.Sprintf("Row%d", i),
			cells: []Cell{NewCell(t), NewCell(1.0)},
		})
	}
	return src
}

func termConfig(ignoreTags bool) Config {
	cfg := DefaultConfig()
	cfg.LabelColumn = "term"
	cfg.SizeColumn = "count"
	cfg.TermMode = true
	cfg.IgnoreTermTags = ignoreTags
	return cfg
}

func texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}
