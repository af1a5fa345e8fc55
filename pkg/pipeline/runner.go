package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/table"
	"github.com/matzehuels/tagcloud/pkg/tagcloud"
	"github.com/matzehuels/tagcloud/pkg/term"
)

// resultKeyType labels result cache events.
const resultKeyType = "result"

// Runner executes the pipeline with caching.
//
// A Runner holds no per-run state; concurrent Execute calls are safe as long
// as the cache is.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Fetcher *Fetcher
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// means [cache.DefaultKeyer].
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Logger:  logger,
		Fetcher: NewFetcher(),
	}
}

// Execute aggregates the table encoded in input.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	start := time.Now()
	result := &Result{
		RunID:     uuid.NewString(),
		InputHash: cache.Hash(input),
	}
	key := r.Keyer.ResultKey(result.InputHash, cache.ResultKeyOpts{
		Format: opts.Format,
		Config: opts.Config,
		CSV:    opts.CSV,
	})

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			result.Entries = cached.Entries
			result.Stats = cached.Stats
			result.CacheHit = true
			result.Duration = time.Since(start)
			logger.Debug("result cache hit", "input", result.InputHash[:12], "entries", len(result.Entries))
			warn(logger, result.Stats, len(result.Entries))
			return result, nil
		}
	}

	tbl, err := table.Read(bytes.NewReader(input), table.Format(opts.Format), opts.CSV)
	if err != nil {
		return nil, err
	}
	logger.Debug("read table", "format", opts.Format, "rows", tbl.Len(), "columns", tbl.Schema.Names())

	res, err := r.aggregate(ctx, tbl, opts)
	if err != nil {
		return nil, err
	}
	result.Entries = res.Entries
	result.Stats = res.Stats
	result.Duration = time.Since(start)

	logger.Info("aggregated",
		"rows", res.Stats.Rows,
		"entries", len(res.Entries),
		"missing", res.Stats.MissingCount,
		"clipped", res.Stats.Clipped,
		"duration", result.Duration)
	warn(logger, res.Stats, len(res.Entries))

	r.store(ctx, key, res, logger)
	return result, nil
}

// ExecuteFile reads path and executes the pipeline. An empty opts.Format is
// detected from the file extension.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	if opts.Format == "" {
		format, err := table.Detect(path)
		if err != nil {
			return nil, err
		}
		opts.Format = string(format)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return r.Execute(ctx, data, opts)
}

func (r *Runner) aggregate(ctx context.Context, tbl *table.Table, opts Options) (*tagcloud.Result, error) {
	runOpts := []tagcloud.Option{tagcloud.WithTermCapability(term.Capability{})}
	if opts.CheckInterval > 0 {
		runOpts = append(runOpts, tagcloud.WithCheckInterval(opts.CheckInterval))
	}
	if opts.Progress != nil {
		runOpts = append(runOpts, tagcloud.WithProgress(opts.Progress))
	}

	hooks := observability.Aggregate()
	hooks.OnAggregateStart(ctx, opts.Format)
	start := time.Now()
	res, err := tagcloud.Run(ctx, tbl.Source(), opts.Config, runOpts...)

	var summary observability.AggregateSummary
	if res != nil {
		summary = observability.AggregateSummary{
			Rows:    res.Stats.Rows,
			Missing: res.Stats.MissingCount,
			Entries: len(res.Entries),
			Clipped: res.Stats.Clipped,
		}
	}
	hooks.OnAggregateComplete(ctx, opts.Format, summary, time.Since(start), err)

	if stderrors.Is(err, tagcloud.ErrCancelled) {
		return nil, errors.Wrap(errors.ErrCodeCancelled, err, "aggregation cancelled")
	}
	return res, err
}

// cachedResult is the cached form of an aggregation.
type cachedResult struct {
	Entries []tagcloud.Entry `json:"entries"`
	Stats   tagcloud.Stats   `json:"stats"`
}

func (r *Runner) lookup(ctx context.Context, key string) (*cachedResult, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, resultKeyType)
		return nil, false
	}
	var cached cachedResult
	if err := json.Unmarshal(data, &cached); err != nil {
		observability.Cache().OnCacheMiss(ctx, resultKeyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, resultKeyType)
	return &cached, true
}

func (r *Runner) store(ctx context.Context, key string, res *tagcloud.Result, logger *log.Logger) {
	data, err := json.Marshal(cachedResult{Entries: res.Entries, Stats: res.Stats})
	if err != nil {
		logger.Warn("encode result for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLResult); err != nil {
		logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, resultKeyType, len(data))
}

// warn surfaces the omission and truncation notices.
func warn(logger *log.Logger, s tagcloud.Stats, kept int) {
	if s.MissingCount > 0 {
		logger.Warn("rows omitted: missing label or weight", "count", s.MissingCount)
	}
	if s.Clipped {
		logger.Warn("result clipped to maximum entry count", "kept", kept, "distinct", s.Distinct)
	}
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
