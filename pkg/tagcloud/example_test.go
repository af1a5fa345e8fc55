package tagcloud_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

type wordRow struct {
	id    string
	word  any
	count any
}

func (r wordRow) ID() string { return r.id }

func (r wordRow) Cell(i int) tagcloud.Cell {
	switch i {
	case 0:
		return tagcloud.NewCell(r.word)
	case 1:
		return tagcloud.NewCell(r.count)
	}
	return tagcloud.MissingCell
}

func (wordRow) Size() float64 { return 0 }
func (wordRow) Color() (tagcloud.Color, bool) { return tagcloud.Color{}, false }

type sliceSource struct {
	rows []wordRow
	pos  int
}

func (s *sliceSource) Schema() tagcloud.Schema {
	return tagcloud.NewSchema(
		tagcloud.Column{Name: "word", Type: tagcloud.TypeString},
		tagcloud.Column{Name: "count", Type: tagcloud.TypeNumber},
	)
}

func (s *sliceSource) Next() bool {
	if s.pos >= len(s.rows) {
		return false
	}
	s.pos++
	return true
}

func (s *sliceSource) Row() tagcloud.Row { return s.rows[s.pos-1] }
func (s *sliceSource) Err() error { return nil }

func ExampleRun() {
	src := &sliceSource{rows: []wordRow{
		{"r0", "cat", 3},
		{"r1", nil, 2},
		{"r2", "dog", 2},
		{"r3", "cat", 5},
	}}

	cfg := tagcloud.DefaultConfig()
	cfg.LabelColumn = "word"
	cfg.SizeColumn = "count"

	res, err := tagcloud.Run(context.Background(), src, cfg)
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, e := range res.Entries {
		fmt.Println(e.Text, e.Size, e.RowIDs)
	}
	fmt.Println("missing:", res.Stats.MissingCount, "clipped:", res.Stats.Clipped)
	// Output:
	// cat 8 [r0 r3]
	// dog 2 [r2]
	// missing: 1 clipped: false
}
