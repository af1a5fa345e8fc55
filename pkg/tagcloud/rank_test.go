package tagcloud

import (
	"math"
	"slices"
	"testing"
)

func entries(sizes ...float64) []Entry {
	out := make([]Entry, len(sizes))
	for i, s := range sizes {
		out[i] = Entry{Key: LabelKey{Kind: KeyRow, Ordinal: i}, Size: s}
	}
	return out
}

func ordinals(entries []Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Key.Ordinal
	}
	return out
}

func TestRankAndClip(t *testing.T) {
	tests := []struct {
		name        string
		sizes       []float64
		max         int
		want        []int
		wantClipped bool
	}{
		{"descending", []float64{1, 3, 2}, 10, []int{1, 2, 0}, false},
		{"ties keep input order", []float64{2, 5, 2, 5, 2}, 10, []int{1, 3, 0, 2, 4}, false},
		{"clip", []float64{1, 2, 3, 4}, 2, []int{3, 2}, true},
		{"exactly max is not clipped", []float64{1, 2}, 2, []int{1, 0}, false},
		{"clip inside a tie", []float64{1, 1, 1}, 2, []int{0, 1}, true},
		{"negative weights", []float64{-1, 0, -5}, 10, []int{1, 0, 2}, false},
		{"nan ranks last", []float64{math.NaN(), 1, 2}, 10, []int{2, 1, 0}, false},
		{"empty", nil, 3, []int{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, clipped := RankAndClip(entries(tt.sizes...), tt.max)
			if !slices.Equal(ordinals(got), tt.want) {
				t.Errorf("order = %v, want %v", ordinals(got), tt.want)
			}
			if clipped != tt.wantClipped {
				t.Errorf("clipped = %v, want %v", clipped, tt.wantClipped)
			}
		})
	}
}

func TestRankAndClipDoesNotMutateInput(t *testing.T) {
	in := entries(1, 3, 2)
	got, _ := RankAndClip(in, 2)
	if !slices.Equal(ordinals(in), []int{0, 1, 2}) {
		t.Errorf("input reordered: %v", ordinals(in))
	}
	// The clipped slice must not share spare capacity with anything appendable.
	if cap(got) != 2 {
		t.Errorf("cap = %d, want 2", cap(got))
	}
}

func TestResultMinMax(t *testing.T) {
	var empty Result
	if empty.MinSize() != 0 || empty.MaxSize() != 0 {
		t.Error("empty result should report zero bounds")
	}

	ranked, _ := RankAndClip(entries(4, math.NaN(), 1, 9), 10)
	r := Result{Entries: ranked}
	if r.MaxSize() != 9 || r.MinSize() != 1 {
		t.Errorf("bounds = [%v, %v], want [1, 9]", r.MinSize(), r.MaxSize())
	}
}
