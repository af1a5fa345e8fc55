package tagcloud

import (
	"cmp"
	"slices"
)

// RankAndClip orders entries by descending size and keeps at most maxCount.
//
// The sort is stable, so entries of equal size keep their input order; fed
// with [Aggregation.Entries] that is first-seen order, which makes the output
// reproducible for identical input. NaN sizes rank after every number.
// clipped reports whether entries had to be dropped. The input slice is not
// modified.
func RankAndClip(entries []Entry, maxCount int) ([]Entry, bool) {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b Entry) int {
		return cmp.Compare(b.Size, a.Size)
	})

	maxCount = max(maxCount, 0)
	if len(ranked) > maxCount {
		return ranked[:maxCount:maxCount], true
	}
	return ranked, false
}
