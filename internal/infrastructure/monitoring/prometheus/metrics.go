package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric the service exposes.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Area resolution
	ResolutionRequestsTotal CounterVec
	ResolutionDuration      HistogramVec
	ResolutionMatchCount    HistogramVec

	// Clinic lookup
	ClinicLookupsTotal CounterVec

	// Conversation / model calls
	ConversationsTotal CounterVec
	OracleCallsTotal   CounterVec
	OracleCallDuration HistogramVec

	// Reply cache
	CacheHitsTotal   CounterVec
	CacheMissesTotal CounterVec

	// Dataset
	DatasetRowsLoaded GaugeVec
	DatasetDegraded   GaugeVec

	// System health
	HealthCheckStatus GaugeVec
	ErrorsTotal       CounterVec
}

var (
	// DefaultHTTPDurationBuckets suits sub-second handler latencies.
	DefaultHTTPDurationBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	// DefaultOracleDurationBuckets suits multi-second model round trips.
	DefaultOracleDurationBuckets = []float64{.5, 1, 2, 5, 10, 30, 60, 120}
	// DefaultMatchCountBuckets covers typical shortlist sizes.
	DefaultMatchCountBuckets = []float64{0, 1, 2, 5, 10, 25, 50}
)

// NewAppMetrics registers every application metric on the collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "In-flight HTTP requests", "method", "path")

	m.ResolutionRequestsTotal = collector.RegisterCounter("resolution_requests_total", "Area resolution requests", "status")
	m.ResolutionDuration = collector.RegisterHistogram("resolution_duration_seconds", "Area resolution duration", DefaultHTTPDurationBuckets)
	m.ResolutionMatchCount = collector.RegisterHistogram("resolution_match_count", "Matches returned per resolution", DefaultMatchCountBuckets)

	m.ClinicLookupsTotal = collector.RegisterCounter("clinic_lookups_total", "Clinic directory lookups", "kind", "found")

	m.ConversationsTotal = collector.RegisterCounter("conversations_total", "Conversation turns by outcome", "outcome")
	m.OracleCallsTotal = collector.RegisterCounter("oracle_calls_total", "Model completion calls", "model", "status")
	m.OracleCallDuration = collector.RegisterHistogram("oracle_call_duration_seconds", "Model completion duration", DefaultOracleDurationBuckets, "model")

	m.CacheHitsTotal = collector.RegisterCounter("cache_hits_total", "Reply cache hits", "cache")
	m.CacheMissesTotal = collector.RegisterCounter("cache_misses_total", "Reply cache misses", "cache")

	m.DatasetRowsLoaded = collector.RegisterGauge("dataset_rows_loaded", "Rows loaded per dataset table", "table")
	m.DatasetDegraded = collector.RegisterGauge("dataset_degraded", "Dataset degraded flag (1=degraded)", "table")

	m.HealthCheckStatus = collector.RegisterGauge("health_check_status", "Health check status (1=up, 0=down)", "component")
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Errors by component", "component", "error_type")

	return m
}

// ─── Recording helpers ──────────────────────────────────────────────────────

func RecordHTTPRequest(m *AppMetrics, method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func RecordResolution(m *AppMetrics, matches int, degraded bool, duration time.Duration) {
	status := "ok"
	if degraded {
		status = "degraded"
	}
	m.ResolutionRequestsTotal.WithLabelValues(status).Inc()
	m.ResolutionDuration.WithLabelValues().Observe(duration.Seconds())
	m.ResolutionMatchCount.WithLabelValues().Observe(float64(matches))
}

func RecordClinicLookup(m *AppMetrics, kind string, found bool) {
	m.ClinicLookupsTotal.WithLabelValues(kind, strconv.FormatBool(found)).Inc()
}

func RecordConversation(m *AppMetrics, outcome string) {
	m.ConversationsTotal.WithLabelValues(outcome).Inc()
}

func RecordOracleCall(m *AppMetrics, model string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.OracleCallsTotal.WithLabelValues(model, status).Inc()
	m.OracleCallDuration.WithLabelValues(model).Observe(duration.Seconds())
}

func RecordCacheAccess(m *AppMetrics, cache string, hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues(cache).Inc()
	} else {
		m.CacheMissesTotal.WithLabelValues(cache).Inc()
	}
}

func RecordDatasetLoad(m *AppMetrics, table string, rows int, degraded bool) {
	m.DatasetRowsLoaded.WithLabelValues(table).Set(float64(rows))
	flag := 0.0
	if degraded {
		flag = 1.0
	}
	m.DatasetDegraded.WithLabelValues(table).Set(flag)
}

func RecordError(m *AppMetrics, component, errorType string) {
	m.ErrorsTotal.WithLabelValues(component, errorType).Inc()
}
