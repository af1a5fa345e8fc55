package tagcloud

import (
	"testing"
)

func TestResolveLabelRowID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseRowID = true
	cfg.UseSizeProperty = true

	row := testRow{id: "r7"}
	l, ok, err := ResolveLabel(row, cfg, Schema{}, nil)
	if err != nil || !ok {
		t.Fatalf("ResolveLabel() = %v, %v", ok, err)
	}
	if l.Key != RowIDKey("r7") || l.Text != "r7" {
		t.Errorf("ResolveLabel() = %+v", l)
	}
}

func TestResolveLabelPlain(t *testing.T) {
	tests := []struct {
		name     string
		cell     Cell
		wantOK   bool
		wantText string
	}{
		{"string", NewCell("cat"), true, "cat"},
		{"empty string is a label", NewCell(""), true, ""},
		{"number label", NewCell(42), true, "42"},
		{"float label", NewCell(1.5), true, "1.5"},
		{"numeral keeps source text", NewCell(Numeral{Raw: "007", Value: 7}), true, "007"},
		{"numeral keeps trailing zero", NewCell(Numeral{Raw: "1.0", Value: 1}), true, "1.0"},
		{"missing", MissingCell, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := testRow{id: "r", cells: []Cell{tt.cell, NewCell(1)}}
			l, ok, err := ResolveLabel(row, wordConfig(), wordSchema, nil)
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if l.Text != tt.wantText || l.Key != PlainKey(tt.wantText) {
				t.Errorf("label = %+v, want plain %q", l, tt.wantText)
			}
		})
	}
}

func TestResolveLabelTerm(t *testing.T) {
	run := Term{Text: "run", Words: []string{"run"}, Tags: []string{"VB"}}
	row := testRow{id: "r", cells: []Cell{NewCell(run), NewCell(1)}}

	l, ok, err := ResolveLabel(row, termConfig(false), termSchema, termCap{})
	if err != nil || !ok {
		t.Fatalf("ResolveLabel() = %v, %v", ok, err)
	}
	if l.Key.Kind != KeyTerm || !l.Key.HasTags {
		t.Errorf("key = %v, want term with tags", l.Key)
	}
	if l.Text != "run" || len(l.Tags) != 1 || l.Tags[0] != "VB" {
		t.Errorf("label = %+v", l)
	}

	l, _, _ = ResolveLabel(row, termConfig(true), termSchema, termCap{})
	if l.Key.HasTags || l.Key.Tags != "" {
		t.Errorf("key = %v, want tags folded", l.Key)
	}
}

func TestResolveLabelTermFallback(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantOK   bool
		wantKind KeyKind
	}{
		{"not a term falls back to text", "plain words", true, KeyPlain},
		{"empty term falls back to text", Term{}, true, KeyPlain},
		{"empty fallback text is missing", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := testRow{id: "r", cells: []Cell{NewCell(tt.value), NewCell(1)}}
			l, ok, err := ResolveLabel(row, termConfig(false), termSchema, termCap{})
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && l.Key.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", l.Key.Kind, tt.wantKind)
			}
		})
	}
}

func TestResolveLabelTermCapabilityProbe(t *testing.T) {
	run := Term{Text: "run", Tags: []string{"VB"}}
	row := testRow{id: "r", cells: []Cell{NewCell(run), NewCell(1)}}

	// Without a capability the term cell is plain text.
	l, ok, _ := ResolveLabel(row, termConfig(false), termSchema, nil)
	if !ok || l.Key.Kind != KeyPlain {
		t.Errorf("no capability: label = %+v, ok = %v", l, ok)
	}

	// Term mode off: the capability is ignored.
	cfg := termConfig(false)
	cfg.TermMode = false
	l, _, _ = ResolveLabel(row, cfg, termSchema, termCap{})
	if l.Key.Kind != KeyPlain {
		t.Errorf("term mode off: kind = %v, want plain", l.Key.Kind)
	}

	// Column type not supported by the capability.
	stringSchema := NewSchema(Column{Name: "term", Type: TypeString}, Column{Name: "count", Type: TypeNumber})
	l, _, _ = ResolveLabel(row, termConfig(false), stringSchema, termCap{})
	if l.Key.Kind != KeyPlain {
		t.Errorf("unsupported type: kind = %v, want plain", l.Key.Kind)
	}
}

func TestTermKeyIdentity(t *testing.T) {
	tests := []struct {
		name      string
		a, b      LabelKey
		wantEqual bool
	}{
		{
			name:      "same words different tags",
			a:         TermKey([]string{"run"}, []string{"v"}, false),
			b:         TermKey([]string{"run"}, []string{"n"}, false),
			wantEqual: false,
		},
		{
			name:      "same words different tags folded",
			a:         TermKey([]string{"run"}, []string{"v"}, true),
			b:         TermKey([]string{"run"}, []string{"n"}, true),
			wantEqual: true,
		},
		{
			name:      "word order matters",
			a:         TermKey([]string{"new", "york"}, nil, true),
			b:         TermKey([]string{"york", "new"}, nil, true),
			wantEqual: false,
		},
		{
			name:      "tag order does not matter",
			a:         TermKey([]string{"go"}, []string{"a", "b"}, false),
			b:         TermKey([]string{"go"}, []string{"b", "a", "a"}, false),
			wantEqual: true,
		},
		{
			name:      "no tags differs from folded",
			a:         TermKey([]string{"go"}, nil, false),
			b:         TermKey([]string{"go"}, nil, true),
			wantEqual: false,
		},
		{
			name:      "word boundaries are preserved",
			a:         TermKey([]string{"a b", "c"}, nil, true),
			b:         TermKey([]string{"a", "b c"}, nil, true),
			wantEqual: false,
		},
		{
			name:      "term differs from plain text",
			a:         TermKey([]string{"go"}, nil, true),
			b:         PlainKey("go"),
			wantEqual: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a == tt.b; got != tt.wantEqual {
				t.Errorf("%v == %v: got %v, want %v", tt.a, tt.b, got, tt.wantEqual)
			}
		})
	}
}

func TestLabelKeyString(t *testing.T) {
	tests := []struct {
		key  LabelKey
		want string
	}{
		{PlainKey("cat"), "plain(cat)"},
		{RowIDKey("Row0"), "row_id(Row0)"},
		{TermKey([]string{"go"}, nil, true), `term("go")`},
		{TermKey([]string{"go"}, []string{"VB"}, false), `term("go" | "VB")`},
		{LabelKey{Kind: KeyRow, Ordinal: 3}, "row(#3)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
