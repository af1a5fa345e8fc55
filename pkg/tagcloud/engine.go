package tagcloud

import (
	"context"
	"math"
)

// Stats are the per-run counters a caller needs to warn about omitted rows
// and truncated output.
type Stats struct {
	// Rows is the number of rows read.
	Rows int `json:"rows" bson:"rows"`
	// MissingCount is the number of rows skipped for a missing label or weight.
	MissingCount int `json:"missing_count" bson:"missing_count"`
	// Distinct is the number of entries before clipping.
	Distinct int `json:"distinct" bson:"distinct"`
	// Clipped is true iff Distinct exceeded the configured maximum.
	Clipped bool `json:"clipped" bson:"clipped"`
	// TermMode reports whether labels were resolved as terms.
	TermMode bool `json:"term_mode,omitempty" bson:"term_mode,omitempty"`
}

// Result is the ranked, clipped output of a run.
type Result struct {
	Entries []Entry `json:"entries" bson:"entries"`
	Stats   Stats   `json:"stats" bson:"stats"`
}

// MinSize returns the smallest entry size, or 0 for an empty result.
func (r *Result) MinSize() float64 {
	if len(r.Entries) == 0 {
		return 0
	}
	// Entries are sorted descending; skip trailing NaNs.
	for i := len(r.Entries) - 1; i >= 0; i-- {
		if s := r.Entries[i].Size; !math.IsNaN(s) {
			return s
		}
	}
	return 0
}

// MaxSize returns the largest entry size, or 0 for an empty result.
func (r *Result) MaxSize() float64 {
	if len(r.Entries) == 0 || math.IsNaN(r.Entries[0].Size) {
		return 0
	}
	return r.Entries[0].Size
}

// Run aggregates src under cfg, ranks the entries and clips them to
// cfg.MaxCount.
//
// Configuration errors are returned before any row is read. If ctx is
// cancelled the run stops at the next check and returns an error matching
// both [ErrCancelled] and ctx.Err(); no partial result is returned.
func Run(ctx context.Context, src RowSource, cfg Config, opts ...Option) (*Result, error) {
	agg, err := Aggregate(ctx, src, cfg, opts...)
	if err != nil {
		return nil, err
	}
	entries, clipped := RankAndClip(agg.Entries(), cfg.MaxCount)
	return &Result{
		Entries: entries,
		Stats: Stats{
			Rows:         agg.Rows,
			MissingCount: agg.Missing,
			Distinct:     agg.Len(),
			Clipped:      clipped,
			TermMode:     agg.TermMode,
		},
	}, nil
}
