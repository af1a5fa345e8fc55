// Package storage persists aggregation runs so that API clients can fetch
// them again by id.
//
// Two backends are provided:
//   - [MemoryStore]: LRU-bounded, for a single process and for tests
//   - [MongoStore]: a MongoDB collection, for shared deployments
package storage

import (
	"context"
	"slices"
	"time"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

// DefaultListLimit bounds List when no limit is given.
const DefaultListLimit = 50

// Run is a stored aggregation.
type Run struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	Format    string          `json:"format" bson:"format"`
	Config    tagcloud.Config `json:"config" bson:"config"`
	InputHash string          `json:"input_hash" bson:"input_hash"`

	Entries []tagcloud.Entry `json:"entries" bson:"entries"`
	Stats   tagcloud.Stats   `json:"stats" bson:"stats"`
}

// clone copies r so that the copy shares no slices or colours with r.
func (r Run) clone() Run {
	r.Entries = slices.Clone(r.Entries)
	for i := range r.Entries {
		e := &r.Entries[i]
		e.RowIDs = slices.Clone(e.RowIDs)
		e.Tags = slices.Clone(e.Tags)
		if e.Color != nil {
			c := *e.Color
			e.Color = &c
		}
	}
	return r
}

// NewRun builds a run record from a pipeline result.
func NewRun(res *pipeline.Result, opts pipeline.Options, now time.Time) Run {
	return Run{
		ID:        res.RunID,
		CreatedAt: now.UTC(),
		Format:    opts.Format,
		Config:    opts.Config,
		InputHash: res.InputHash,
		Entries:   res.Entries,
		Stats:     res.Stats,
	}
}

// RunStore is implemented by run storage backends.
//
// Get and Delete return an error coded NOT_FOUND for unknown ids. Backend
// failures are coded STORAGE_ERROR.
type RunStore interface {
	Save(ctx context.Context, run Run) error
	Get(ctx context.Context, id string) (Run, error)
	// List returns up to limit runs, newest first. limit <= 0 means
	// DefaultListLimit.
	List(ctx context.Context, limit int) ([]Run, error)
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}
