package tagcloud

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// ErrCancelled is returned (wrapped together with the context error) when the
// context is cancelled during a run. Partial results are discarded.
var ErrCancelled = errors.New("tagcloud: run cancelled")

// DefaultCheckInterval is the number of rows between cancellation checks.
const DefaultCheckInterval = 256

// Entry is one aggregated label of the cloud.
type Entry struct {
	Key  LabelKey `json:"key" bson:"key"`
	Text string   `json:"text" bson:"text"`
	Size float64  `json:"size" bson:"size"`

	// RowIDs lists every contributing row id once, in first-seen order.
	RowIDs []string `json:"row_ids" bson:"row_ids"`

	// Color is the colour of the row that created the entry (ExtractColor only).
	Color *Color `json:"color,omitempty" bson:"color,omitempty"`

	// Tags of the first term folded into the entry.
	Tags []string `json:"tags,omitempty" bson:"tags,omitempty"`
}

// bucket is an entry under construction.
type bucket struct {
	Entry
	ids map[string]struct{}
}

func (b *bucket) add(id string, w float64) {
	b.Size += w
	if _, ok := b.ids[id]; ok {
		return
	}
	b.ids[id] = struct{}{}
	b.RowIDs = append(b.RowIDs, id)
}

// Aggregation is the insertion-ordered result of folding a row source.
type Aggregation struct {
	buckets []*bucket
	index   map[LabelKey]int

	// Rows is the number of rows read from the source.
	Rows int
	// Missing is the number of rows skipped for a missing label or weight.
	Missing int
	// TermMode reports whether the term capability was active for the run.
	TermMode bool
}

// Len returns the number of distinct entries.
func (a *Aggregation) Len() int { return len(a.buckets) }

// Entries returns copies of the entries in first-seen order.
func (a *Aggregation) Entries() []Entry {
	out := make([]Entry, len(a.buckets))
	for i, b := range a.buckets {
		e := b.Entry
		e.RowIDs = slices.Clone(b.RowIDs)
		out[i] = e
	}
	return out
}

// Lookup returns the entry for key.
func (a *Aggregation) Lookup(key LabelKey) (Entry, bool) {
	i, ok := a.index[key]
	if !ok {
		return Entry{}, false
	}
	e := a.buckets[i].Entry
	e.RowIDs = slices.Clone(e.RowIDs)
	return e, true
}

// TotalSize sums entry sizes in first-seen order.
func (a *Aggregation) TotalSize() float64 {
	var sum float64
	for _, b := range a.buckets {
		sum += b.Size
	}
	return sum
}

// Option tunes a run.
type Option func(*runOptions)

type runOptions struct {
	terms         TermCapability
	checkInterval int
	progress      func(rows int)
}

// WithTermCapability installs the structured-term plug-in. Without it every
// label is handled as plain text.
func WithTermCapability(c TermCapability) Option {
	return func(o *runOptions) { o.terms = c }
}

// WithCheckInterval sets how many rows pass between cancellation checks.
// Values below 1 are treated as 1.
func WithCheckInterval(n int) Option {
	return func(o *runOptions) { o.checkInterval = max(n, 1) }
}

// WithProgress registers a callback invoked with the number of rows read so
// far, at the cancellation check interval.
func WithProgress(fn func(rows int)) Option {
	return func(o *runOptions) { o.progress = fn }
}

func buildOptions(opts []Option) runOptions {
	o := runOptions{checkInterval: DefaultCheckInterval}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Aggregate folds src into entries in a single pass.
//
// The configuration is validated against the source schema before any row is
// read. Rows with a missing label or weight are counted and skipped. When
// cfg.Aggregate is false every row becomes its own entry.
func Aggregate(ctx context.Context, src RowSource, cfg Config, opts ...Option) (*Aggregation, error) {
	o := buildOptions(opts)
	schema := src.Schema()
	b, err := cfg.bind(schema)
	if err != nil {
		return nil, err
	}
	labels := newLabelResolver(cfg, b, schema, o.terms)
	weights := newWeightResolver(cfg, b)

	agg := &Aggregation{
		index:    make(map[LabelKey]int),
		TermMode: labels.usesTerms(),
	}

	for {
		if agg.Rows%o.checkInterval == 0 {
			if o.progress != nil && agg.Rows > 0 {
				o.progress(agg.Rows)
			}
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCancelled, err)
			}
		}
		if !src.Next() {
			break
		}
		row := src.Row()
		ordinal := agg.Rows
		agg.Rows++

		label, ok := labels.resolve(row)
		if !ok {
			agg.Missing++
			continue
		}
		w, ok := weights.resolve(row)
		if !ok {
			agg.Missing++
			continue
		}

		key := label.Key
		if !cfg.Aggregate {
			key = LabelKey{Kind: KeyRow, Text: label.Key.Text, Ordinal: ordinal}
		}

		if i, exists := agg.index[key]; exists {
			agg.buckets[i].add(row.ID(), w)
			continue
		}

		nb := &bucket{
			Entry: Entry{Key: key, Text: label.Text, Tags: label.Tags},
			ids:   make(map[string]struct{}, 1),
		}
		if cfg.ExtractColor {
			if c, ok := row.Color(); ok {
				nb.Color = &c
			}
		}
		nb.add(row.ID(), w)
		agg.index[key] = len(agg.buckets)
		agg.buckets = append(agg.buckets, nb)
	}

	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return agg, nil
}
