package table

import (
	"context"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

func TestReadCSV(t *testing.T) {
	in := "\ufeffid,word,count,weight,color\n" +
		"a,cat,3,1.5,#ff0000\n" +
		"b,dog,,0.5,\n" +
		"c,?,2.5,2,#00f\n"

	tbl, err := ReadCSV(strings.NewReader(in), CSVOptions{
		IDColumn:     "id",
		SizeColumn:   "weight",
		ColorColumn:  "color",
		MissingToken: "?",
	})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if got := tbl.Schema.Names(); !slices.Equal(got, []string{"word", "count"}) {
		t.Fatalf("columns = %v, want [word count]", got)
	}
	if tbl.Schema.Columns[0].Type != tagcloud.TypeString || tbl.Schema.Columns[1].Type != tagcloud.TypeNumber {
		t.Errorf("types = %+v", tbl.Schema.Columns)
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}

	a := tbl.Records[0]
	if a.ID() != "a" || a.Size() != 1.5 || a.Cell(0).Text() != "cat" {
		t.Errorf("record a = %+v", a)
	}
	if f, ok := a.Cell(1).Float(); !ok || f != 3 {
		t.Errorf("count = %v, %v; want 3", f, ok)
	}
	if c, ok := a.Color(); !ok || c != tagcloud.RGB(255, 0, 0) {
		t.Errorf("color = %v, %v", c, ok)
	}

	b := tbl.Records[1]
	if !b.Cell(1).Missing() {
		t.Error("empty count should be missing")
	}
	if _, ok := b.Color(); ok {
		t.Error("empty color should be absent")
	}

	c := tbl.Records[2]
	if !c.Cell(0).Missing() {
		t.Error("missing token should be missing")
	}
	if col, _ := c.Color(); col != tagcloud.RGB(0, 0, 255) {
		t.Errorf("short color = %v", col)
	}
}

func TestReadCSVDefaults(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("word,count\ncat,x\ndog,2\n"), CSVOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Records[0].ID() != "Row0" || tbl.Records[1].ID() != "Row1" {
		t.Errorf("ids = %s, %s", tbl.Records[0].ID(), tbl.Records[1].ID())
	}
	// A single non-numeric cell keeps the column a string column.
	if tbl.Schema.Columns[1].Type != tagcloud.TypeString {
		t.Errorf("count type = %s, want string", tbl.Schema.Columns[1].Type)
	}
}

func TestReadCSVTermColumns(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("term\tn\ngo[VB]\t1\n"), CSVOptions{Comma: '\t', TermColumns: []string{"term"}})
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Schema.Columns[0].Type != tagcloud.TypeTerm {
		t.Errorf("term type = %s", tbl.Schema.Columns[0].Type)
	}
	if tbl.Records[0].Cell(0).Text() != "go[VB]" {
		t.Errorf("term cell = %q", tbl.Records[0].Cell(0).Text())
	}
}

func TestReadCSVNumericLabels(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader("word,count\n007,1\n7,1\n1.0,1\nNaN,2\n"), CSVOptions{})
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if tbl.Schema.Columns[0].Type != tagcloud.TypeNumber {
		t.Fatalf("word type = %s, want number", tbl.Schema.Columns[0].Type)
	}
	if f, ok := tbl.Records[0].Cell(0).Float(); !ok || f != 7 {
		t.Errorf("Float() = %v, %v; want 7", f, ok)
	}

	cfg := tagcloud.DefaultConfig()
	cfg.LabelColumn, cfg.SizeColumn = "word", "count"
	res, err := tagcloud.Run(context.Background(), tbl.Source(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got []string
	for _, e := range res.Entries {
		got = append(got, e.Text)
		if e.Key != tagcloud.PlainKey(e.Text) {
			t.Errorf("key %v does not match text %q", e.Key, e.Text)
		}
	}
	if want := []string{"NaN", "007", "7", "1.0"}; !slices.Equal(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts CSVOptions
		code errors.Code
	}{
		{"empty", "", CSVOptions{}, errors.ErrCodeInvalidInput},
		{"duplicate header", "a,a\n1,2\n", CSVOptions{}, errors.ErrCodeInvalidColumn},
		{"empty header", "a,\n1,2\n", CSVOptions{}, errors.ErrCodeInvalidColumn},
		{"unknown id column", "a,b\n1,2\n", CSVOptions{IDColumn: "id"}, errors.ErrCodeInvalidColumn},
		{"unknown term column", "a,b\n1,2\n", CSVOptions{TermColumns: []string{"t"}}, errors.ErrCodeInvalidColumn},
		{"ragged row", "a,b\n1\n", CSVOptions{}, errors.ErrCodeInvalidFormat},
		{"bad size", "a,s\nx,big\n", CSVOptions{SizeColumn: "s"}, errors.ErrCodeInvalidInput},
		{"bad color", "a,c\nx,red\n", CSVOptions{ColorColumn: "c"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in), tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadCSV() = %v, want code %s", err, tt.code)
			}
		})
	}
}
