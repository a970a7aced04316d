package prometheus

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shallyquinn/Chatbot/internal/infrastructure/monitoring/logging"
)

func newTestCollector(t *testing.T) MetricsCollector {
	t.Helper()
	c, err := NewMetricsCollector(CollectorConfig{Namespace: "honey"}, logging.NewNopLogger())
	require.NoError(t, err)
	return c
}

func TestNewMetricsCollector_RequiresNamespace(t *testing.T) {
	t.Parallel()

	_, err := NewMetricsCollector(CollectorConfig{}, logging.NewNopLogger())
	assert.Error(t, err)
}

func TestRegisterCounter_IncrementsAndScrapes(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	counter := c.RegisterCounter("requests_total", "Total requests", "status")
	counter.WithLabelValues("ok").Inc()
	counter.WithLabelValues("ok").Add(2)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `honey_requests_total{status="ok"} 3`)
}

func TestRegister_IsIdempotentPerName(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	first := c.RegisterCounter("dup_total", "Duplicate", "l")
	second := c.RegisterCounter("dup_total", "Duplicate", "l")

	first.WithLabelValues("a").Inc()
	second.WithLabelValues("a").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `honey_dup_total{l="a"} 2`)
}

func TestRegisterGauge_SetAndMove(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	gauge := c.RegisterGauge("queue_depth", "Queue depth", "queue")
	gauge.WithLabelValues("main").Set(5)
	gauge.WithLabelValues("main").Inc()
	gauge.WithLabelValues("main").Dec()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `honey_queue_depth{queue="main"} 5`)
}

func TestRegisterHistogram_DefaultBuckets(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	hist := c.RegisterHistogram("latency_seconds", "Latency", nil, "op")
	hist.WithLabelValues("load").Observe(0.02)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `honey_latency_seconds_count{op="load"} 1`)
	assert.Contains(t, body, `honey_latency_seconds_bucket{op="load",le="0.025"} 1`)
}

func TestRegister_TypeMismatchFallsBackToNoop(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	c.RegisterCounter("mixed_total", "Mixed", "l")
	gauge := c.RegisterGauge("mixed_total", "Mixed", "l")

	// Must not panic; records go nowhere.
	gauge.WithLabelValues("a").Set(1)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.NotContains(t, rec.Body.String(), `honey_mixed_total{l="a"} 1`)
}

func TestTimer_ObservesElapsedTime(t *testing.T) {
	t.Parallel()

	c := newTestCollector(t)
	hist := c.RegisterHistogram("timed_seconds", "Timed", DefaultHTTPDurationBuckets, "op")

	timer := NewTimer(hist.WithLabelValues("work"))
	time.Sleep(time.Millisecond)
	timer.ObserveDuration()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `honey_timed_seconds_count{op="work"} 1`)
}

func TestTimer_NilHistogramIsSafe(t *testing.T) {
	t.Parallel()

	timer := &Timer{}
	assert.NotPanics(t, timer.ObserveDuration)
}
