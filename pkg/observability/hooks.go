// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through the registered hooks; the binary decides
// what, if anything, receives them. Defaults are no-ops, so library code
// never depends on a metrics backend. [PromHooks] is the Prometheus
// implementation used by the server.
//
// # Usage
//
// Register hooks at startup:
//
//	prom := observability.NewPromHooks(prometheus.DefaultRegisterer)
//	observability.SetAggregateHooks(prom)
//	observability.SetCacheHooks(prom)
//	observability.SetHTTPHooks(prom)
//
// Libraries call hooks around their work:
//
//	observability.Aggregate().OnAggregateStart(ctx, format)
//	// ... run the engine ...
//	observability.Aggregate().OnAggregateComplete(ctx, format, summary, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// AggregateSummary is what a finished aggregation reports to hooks.
type AggregateSummary struct {
	Rows    int
	Missing int
	Entries int
	Clipped bool
}

// AggregateHooks receives events from aggregation runs.
type AggregateHooks interface {
	OnAggregateStart(ctx context.Context, format string)
	OnAggregateComplete(ctx context.Context, format string, s AggregateSummary, duration time.Duration, err error)
}

// CacheHooks receives events from result cache access.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives events from the HTTP API.
type HTTPHooks interface {
	// OnResponse records a served request. route is the matched route
	// pattern, not the raw path.
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
}

// NoopAggregateHooks ignores all events.
type NoopAggregateHooks struct{}

func (NoopAggregateHooks) OnAggregateStart(context.Context, string) {}
func (NoopAggregateHooks) OnAggregateComplete(context.Context, string, AggregateSummary, time.Duration, error) {
}

// NoopCacheHooks ignores all events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores all events.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

var (
	aggregateHooks AggregateHooks = NoopAggregateHooks{}
	cacheHooks     CacheHooks     = NoopCacheHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetAggregateHooks registers aggregation hooks. nil is ignored.
func SetAggregateHooks(h AggregateHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		aggregateHooks = h
	}
}

// SetCacheHooks registers cache hooks. nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Aggregate returns the registered aggregation hooks.
func Aggregate() AggregateHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return aggregateHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores the no-op defaults. Used by tests.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	aggregateHooks = NoopAggregateHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
