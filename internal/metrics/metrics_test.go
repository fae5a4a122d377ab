package metrics

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPricingMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPricingMetrics(reg)

	m.ObserveResolve("matched", true, 5*time.Millisecond)
	m.ObserveResolve("matched", false, 5*time.Millisecond)
	m.IncMutation("create", nil)
	m.IncMutation("create", errors.New("boom"))
	m.IncTxRetry("update")
	m.IncInvalidation("queued")
	m.ObserveJob("seasonal_sweep", time.Second, nil)

	if got := testutil.ToFloat64(m.resolveTotal.WithLabelValues("matched", "hit")); got != 1 {
		t.Fatalf("resolve hit want 1 got %f", got)
	}
	if got := testutil.ToFloat64(m.mutationTotal.WithLabelValues("create", "error")); got != 1 {
		t.Fatalf("mutation error want 1 got %f", got)
	}
	if got := testutil.ToFloat64(m.txRetries.WithLabelValues("update")); got != 1 {
		t.Fatalf("tx retry want 1 got %f", got)
	}
	if got := testutil.ToFloat64(m.jobResult.WithLabelValues("seasonal_sweep", "success")); got != 1 {
		t.Fatalf("job success want 1 got %f", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *PricingMetrics
	m.ObserveResolve("matched", false, time.Millisecond)
	m.IncMutation("create", nil)
	m.IncTxRetry("create")
	m.IncInvalidation("direct")
	m.ObserveJob("job", time.Millisecond, nil)

	empty := NewPricingMetrics(nil)
	empty.IncMutation("create", nil)
}

func TestMetricsHandlerExposesFamilies(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPricingMetrics(reg)
	m.IncInvalidation("direct")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(w.Body.String(), "duomart_pricing_invalidation_total") {
		t.Fatalf("metrics output missing invalidation counter: %s", w.Body.String())
	}
}
