// Package pipeline runs tag cloud aggregation end to end: decode an input
// table, aggregate it, and cache the result.
//
// The CLI and the HTTP server both go through a [Runner], so caching, logging
// and metrics behave the same at every entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.LabelColumn = "word"
//	opts.SizeColumn = "count"
//	result, err := runner.Execute(ctx, data, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range result.Entries {
//	    fmt.Println(e.Text, e.Size)
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/table"
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
)

// DefaultFormat is the input format assumed when none is given.
const DefaultFormat = table.FormatCSV

// Options configures one pipeline run. It decodes from TOML config files and
// JSON API requests; the engine settings are promoted from the embedded
// [tagcloud.Config].
type Options struct {
	tagcloud.Config

	// Format of the input table: csv, tsv or json.
	Format string `toml:"format" json:"format,omitempty"`

	// CSV maps CSV columns to row properties.
	CSV table.CSVOptions `toml:"csv" json:"csv,omitempty"`

	// Refresh skips the cache lookup and overwrites the cached result.
	Refresh bool `toml:"-" json:"refresh,omitempty"`

	// CheckInterval overrides the number of rows between cancellation checks.
	CheckInterval int `toml:"check_interval" json:"-"`

	Logger   *log.Logger    `toml:"-" json:"-"`
	Progress func(rows int) `toml:"-" json:"-"`

	validated bool
}

// DefaultOptions returns options with the engine defaults (aggregation on,
// default maximum) and CSV input.
func DefaultOptions() Options {
	return Options{Config: tagcloud.DefaultConfig(), Format: string(DefaultFormat)}
}

// ValidateAndSetDefaults checks the options and fills in the format and
// logger. Engine defaults come from [DefaultOptions] only: an explicit
// MaxCount of 0 is rejected. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Format == "" {
		o.Format = string(DefaultFormat)
	}
	format, err := table.ParseFormat(o.Format)
	if err != nil {
		return err
	}
	o.Format = string(format)

	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.CheckInterval < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "check_interval must not be negative")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result is the outcome of a pipeline run.
type Result struct {
	// RunID identifies this execution. Cache hits get a fresh id.
	RunID string `json:"run_id" bson:"run_id"`

	// InputHash is the SHA-256 of the raw input.
	InputHash string `json:"input_hash" bson:"input_hash"`

	Entries []tagcloud.Entry `json:"entries" bson:"entries"`
	Stats   tagcloud.Stats   `json:"stats" bson:"stats"`

	Duration time.Duration `json:"duration_ns" bson:"duration_ns"`
	CacheHit bool          `json:"cache_hit" bson:"cache_hit"`
}
