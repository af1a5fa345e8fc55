package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PromHooks records hook events as Prometheus metrics. It implements
// AggregateHooks, CacheHooks and HTTPHooks.
type PromHooks struct {
	runs        *prometheus.CounterVec
	runDuration *prometheus.HistogramVec
	rows        prometheus.Counter
	missingRows prometheus.Counter
	clipped     prometheus.Counter

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheBytes  *prometheus.CounterVec

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewPromHooks registers the metrics with reg.
func NewPromHooks(reg prometheus.Registerer) *PromHooks {
	f := promauto.With(reg)
	return &PromHooks{
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tagcloud_aggregations_total",
			Help: "Aggregation runs by input format and result",
		}, []string{"format", "result"}),
		runDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tagcloud_aggregation_duration_seconds",
			Help:    "Aggregation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}, []string{"format"}),
		rows: f.NewCounter(prometheus.CounterOpts{
			Name: "tagcloud_rows_total",
			Help: "Rows read by aggregation runs",
		}),
		missingRows: f.NewCounter(prometheus.CounterOpts{
			Name: "tagcloud_missing_rows_total",
			Help: "Rows skipped for a missing label or weight",
		}),
		clipped: f.NewCounter(prometheus.CounterOpts{
			Name: "tagcloud_clipped_runs_total",
			Help: "Runs whose result was truncated to the maximum entry count",
		}),
		cacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tagcloud_cache_hits_total",
			Help: "Result cache hits",
		}, []string{"key_type"}),
		cacheMisses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tagcloud_cache_misses_total",
			Help: "Result cache misses",
		}, []string{"key_type"}),
		cacheBytes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tagcloud_cache_written_bytes_total",
			Help: "Bytes written to the result cache",
		}, []string{"key_type"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tagcloud_http_requests_total",
			Help: "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tagcloud_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (p *PromHooks) OnAggregateStart(context.Context, string) {}

func (p *PromHooks) OnAggregateComplete(_ context.Context, format string, s AggregateSummary, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.runs.WithLabelValues(format, result).Inc()
	p.runDuration.WithLabelValues(format).Observe(d.Seconds())
	if err != nil {
		return
	}
	p.rows.Add(float64(s.Rows))
	p.missingRows.Add(float64(s.Missing))
	if s.Clipped {
		p.clipped.Inc()
	}
}

func (p *PromHooks) OnCacheHit(_ context.Context, keyType string) {
	p.cacheHits.WithLabelValues(keyType).Inc()
}

func (p *PromHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheMisses.WithLabelValues(keyType).Inc()
}

func (p *PromHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *PromHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ AggregateHooks = (*PromHooks)(nil)
	_ CacheHooks     = (*PromHooks)(nil)
	_ HTTPHooks      = (*PromHooks)(nil)
)
