package tagcloud

import (
	"slices"
	"strconv"
	"strings"
)

// KeyKind discriminates the shapes a [LabelKey] can take.
type KeyKind uint8

const (
	// KeyRowID identifies a row by its identifier (no label column configured).
	KeyRowID KeyKind = iota + 1
	// KeyPlain identifies a row by the raw string of its label cell.
	KeyPlain
	// KeyTerm identifies a row by a term's word list and, unless tags are
	// folded, its tag set.
	KeyTerm
	// KeyRow is unique per row; used when aggregation is disabled.
	KeyRow
)

// String returns the kind name.
func (k KeyKind) String() string {
	switch k {
	case KeyRowID:
		return "row_id"
	case KeyPlain:
		return "plain"
	case KeyTerm:
		return "term"
	case KeyRow:
		return "row"
	default:
		return "unknown"
	}
}

// LabelKey is the aggregation identity of a row. It is comparable and
// compares structurally, so it is used directly as a map key.
type LabelKey struct {
	Kind KeyKind `json:"kind" bson:"kind"`

	// Text is the row id, the plain label text, or the encoded word list of a term.
	Text string `json:"text" bson:"text"`

	// Tags is the encoded tag set of a term. Only meaningful when HasTags is set.
	Tags    string `json:"tags,omitempty" bson:"tags,omitempty"`
	HasTags bool   `json:"has_tags,omitempty" bson:"has_tags,omitempty"`

	// Ordinal is the zero-based position of the row in the source (KeyRow only).
	Ordinal int `json:"ordinal,omitempty" bson:"ordinal,omitempty"`
}

// String renders the key for diagnostics.
func (k LabelKey) String() string {
	switch k.Kind {
	case KeyTerm:
		if k.HasTags {
			return "term(" + k.Text + " | " + k.Tags + ")"
		}
		return "term(" + k.Text + ")"
	case KeyRow:
		return "row(#" + strconv.Itoa(k.Ordinal) + ")"
	default:
		return k.Kind.String() + "(" + k.Text + ")"
	}
}

// RowIDKey returns the key for a row identified by id.
func RowIDKey(id string) LabelKey { return LabelKey{Kind: KeyRowID, Text: id} }

// PlainKey returns the key for a plain text label.
func PlainKey(text string) LabelKey { return LabelKey{Kind: KeyPlain, Text: text} }

// TermKey returns the key for a term. Word order is significant. When
// ignoreTags is set the tags are left out of the identity entirely; otherwise
// the tags are compared as a set.
func TermKey(words, tags []string, ignoreTags bool) LabelKey {
	k := LabelKey{Kind: KeyTerm, Text: encodeList(words)}
	if !ignoreTags {
		k.Tags = encodeList(canonicalTags(tags))
		k.HasTags = true
	}
	return k
}

// encodeList joins quoted items so that no two distinct lists share an encoding.
func encodeList(items []string) string {
	var b strings.Builder
	for i, s := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Quote(s))
	}
	return b.String()
}

// canonicalTags sorts and de-duplicates tags.
func canonicalTags(tags []string) []string {
	out := slices.Clone(tags)
	slices.Sort(out)
	return slices.Compact(out)
}

// Term is the structured label a [TermCapability] extracts from a cell.
type Term struct {
	// Text is the display text.
	Text string
	// Words are the constituent words. When empty, Text is used as the only word.
	Words []string
	// Tags are attached tags (part-of-speech, entity types, ...).
	Tags []string
}

// TermCapability is the optional plug-in that understands structured term
// cells. The engine probes it once per run with the label column's type.
type TermCapability interface {
	// Supports reports whether cells of the given column type hold terms.
	Supports(t ColumnType) bool

	// Extract reads the term held by a present cell.
	Extract(c Cell) (Term, error)
}

// Label is the resolved identity and display text of a row.
type Label struct {
	Key  LabelKey
	Text string
	// Tags of the term the label came from; nil for non-term labels.
	Tags []string
}

// labelResolver is built once per run; it fixes the label source and the
// outcome of the term capability probe.
type labelResolver struct {
	useRowID   bool
	column     int
	terms      TermCapability // nil unless the probe succeeded
	ignoreTags bool
}

func newLabelResolver(cfg Config, b binding, schema Schema, terms TermCapability) *labelResolver {
	r := &labelResolver{
		useRowID:   cfg.UseRowID,
		column:     b.label,
		ignoreTags: cfg.IgnoreTermTags,
	}
	if !cfg.UseRowID && cfg.TermMode && terms != nil && terms.Supports(schema.Columns[b.label].Type) {
		r.terms = terms
	}
	return r
}

// usesTerms reports whether the term capability is active for this run.
func (r *labelResolver) usesTerms() bool { return r.terms != nil }

// resolve returns the label of row, or false when the label is missing.
func (r *labelResolver) resolve(row Row) (Label, bool) {
	if r.useRowID {
		id := row.ID()
		return Label{Key: RowIDKey(id), Text: id}, true
	}

	cell := row.Cell(r.column)
	if cell.Missing() {
		return Label{}, false
	}

	if r.terms != nil {
		if l, ok := r.resolveTerm(cell); ok {
			return l, true
		}
		// Extraction failed: fall back to the cell's string form. An empty
		// fallback is as good as missing.
		text := cell.Text()
		if text == "" {
			return Label{}, false
		}
		return Label{Key: PlainKey(text), Text: text}, true
	}

	text := cell.Text()
	return Label{Key: PlainKey(text), Text: text}, true
}

func (r *labelResolver) resolveTerm(cell Cell) (Label, bool) {
	t, err := r.terms.Extract(cell)
	if err != nil {
		return Label{}, false
	}
	words := t.Words
	if len(words) == 0 {
		if t.Text == "" {
			return Label{}, false
		}
		words = []string{t.Text}
	}
	text := t.Text
	if text == "" {
		text = strings.Join(words, " ")
	}
	return Label{
		Key:  TermKey(words, t.Tags, r.ignoreTags),
		Text: text,
		Tags: slices.Clone(t.Tags),
	}, true
}

// ResolveLabel resolves the label of a single row. It validates cfg against
// schema first, so it is mostly useful for tests and one-off lookups; [Run]
// builds the resolver once per run instead.
func ResolveLabel(row Row, cfg Config, schema Schema, terms TermCapability) (Label, bool, error) {
	b, err := cfg.bind(schema)
	if err != nil {
		return Label{}, false, err
	}
	l, ok := newLabelResolver(cfg, b, schema, terms).resolve(row)
	return l, ok, nil
}
