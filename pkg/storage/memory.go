package storage

import (
	"cmp"
	"context"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/matzehuels/tagcloud/pkg/errors"
)

// DefaultMemoryRuns bounds a MemoryStore created with size 0.
const DefaultMemoryRuns = 256

// MemoryStore keeps the most recently used runs in memory.
type MemoryStore struct {
	runs *lru.Cache[string, Run]
}

// NewMemoryStore returns a store holding at most size runs.
func NewMemoryStore(size int) (*MemoryStore, error) {
	if size <= 0 {
		size = DefaultMemoryRuns
	}
	runs, err := lru.New[string, Run](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{runs: runs}, nil
}

// Save stores a copy of run, replacing any run with the same id.
func (s *MemoryStore) Save(_ context.Context, run Run) error {
	if err := errors.ValidateRunID(run.ID); err != nil {
		return err
	}
	s.runs.Add(run.ID, run.clone())
	return nil
}

// Get returns a copy of the run with the given id.
func (s *MemoryStore) Get(_ context.Context, id string) (Run, error) {
	run, ok := s.runs.Get(id)
	if !ok {
		return Run{}, errors.New(errors.ErrCodeNotFound, "run %s not found", id)
	}
	return run.clone(), nil
}

// List returns copies of at most limit runs, newest first.
func (s *MemoryStore) List(_ context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	runs := s.runs.Values()
	slices.SortStableFunc(runs, func(a, b Run) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	for i := range runs {
		runs[i] = runs[i].clone()
	}
	return runs, nil
}

// Delete removes the run with the given id.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	if !s.runs.Remove(id) {
		return errors.New(errors.ErrCodeNotFound, "run %s not found", id)
	}
	return nil
}

// Close drops all runs.
func (s *MemoryStore) Close(context.Context) error {
	s.runs.Purge()
	return nil
}

var _ RunStore = (*MemoryStore)(nil)
