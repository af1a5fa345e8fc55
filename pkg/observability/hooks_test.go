package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	a := NoopAggregateHooks{}
	a.OnAggregateStart(ctx, "csv")
	a.OnAggregateComplete(ctx, "csv", AggregateSummary{Rows: 10}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "result")
	c.OnCacheMiss(ctx, "result")
	c.OnCacheSet(ctx, "result", 1024)

	NoopHTTPHooks{}.OnResponse(ctx, "POST", "/v1/aggregate", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Aggregate().(NoopAggregateHooks); !ok {
		t.Error("Aggregate() should return NoopAggregateHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	custom := &testAggregateHooks{}
	SetAggregateHooks(custom)
	if Aggregate() != custom {
		t.Error("SetAggregateHooks should set custom hooks")
	}
	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}
	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Aggregate().(NoopAggregateHooks); !ok {
		t.Error("Reset() should restore NoopAggregateHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testAggregateHooks{}
	SetAggregateHooks(custom)
	SetAggregateHooks(nil)
	if Aggregate() != custom {
		t.Error("SetAggregateHooks(nil) should be ignored")
	}
}

func TestPromHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPromHooks(reg)
	ctx := context.Background()

	p.OnAggregateComplete(ctx, "csv", AggregateSummary{Rows: 10, Missing: 2, Entries: 3, Clipped: true}, time.Millisecond, nil)
	p.OnAggregateComplete(ctx, "csv", AggregateSummary{Rows: 99}, time.Millisecond, errors.New("boom"))
	p.OnCacheHit(ctx, "result")
	p.OnCacheMiss(ctx, "result")
	p.OnCacheMiss(ctx, "result")
	p.OnCacheSet(ctx, "result", 512)
	p.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)

	want := map[string]float64{
		"tagcloud_aggregations_total":        2,
		"tagcloud_rows_total":                10,
		"tagcloud_missing_rows_total":        2,
		"tagcloud_clipped_runs_total":        1,
		"tagcloud_cache_hits_total":          1,
		"tagcloud_cache_misses_total":        2,
		"tagcloud_cache_written_bytes_total": 512,
		"tagcloud_http_requests_total":       1,
	}
	got := counterTotals(t, reg)
	for name, w := range want {
		if got[name] != w {
			t.Errorf("%s = %v, want %v", name, got[name], w)
		}
	}
}

// counterTotals sums every counter series per metric family.
func counterTotals(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if c := m.GetCounter(); c != nil {
				out[mf.GetName()] += c.GetValue()
			}
		}
	}
	return out
}

type testAggregateHooks struct{ NoopAggregateHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
