// Package metrics provides Prometheus metrics for the headcount analytics service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	batchBuckets   []float64
	enabled        bool
	constLabels    map[string]string
	registry       prometheus.Registerer

	// Analyst queries
	analystQueries *prometheus.CounterVec
	analystLatency *prometheus.HistogramVec

	// Ingestion
	recordsLoaded   *prometheus.CounterVec
	recordsRejected *prometheus.CounterVec
	districtsLoaded prometheus.Gauge
	loadDuration    prometheus.Histogram

	// Report rendering
	pagesRendered  *prometheus.CounterVec
	renderDuration prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors and process
	errorRateByComponent *prometheus.CounterVec
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

var globalMu sync.RWMutex //nolint:gochecknoglobals // guards globalManager swaps

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "headcount",
		subsystem:      "analytics",
		latencyBuckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100, 500, 1000},
		batchBuckets:   []float64{1, 5, 10, 50, 100, 250, 500, 1000, 5000},
		enabled:        true,
		constLabels:    make(map[string]string),
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled }

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.analystQueries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analyst_queries_total",
		Help:        "Analyst queries by operation and outcome",
		ConstLabels: m.constLabels,
	}, []string{"operation", "outcome"})

	m.analystLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analyst_latency_milliseconds",
		Help:        "Analyst query latency in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.recordsLoaded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "loader_records_total",
		Help:        "Source records stored by category",
		ConstLabels: m.constLabels,
	}, []string{"category"})

	m.recordsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "loader_records_rejected_total",
		Help:        "Source records skipped because their value could not be read",
		ConstLabels: m.constLabels,
	}, []string{"category"})

	m.districtsLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "districts_loaded",
		Help:        "Number of districts known to the repositories",
		ConstLabels: m.constLabels,
	})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_duration_milliseconds",
		Help:        "Time spent loading the source files in milliseconds",
		Buckets:     m.batchBuckets,
		ConstLabels: m.constLabels,
	})

	m.pagesRendered = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pages_rendered_total",
		Help:        "Report pages written by kind",
		ConstLabels: m.constLabels,
	}, []string{"kind"})

	m.renderDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "render_duration_milliseconds",
		Help:        "Time spent building the static report in milliseconds",
		Buckets:     m.batchBuckets,
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "errors_by_component_total",
		Help:        "Errors by component and type",
		ConstLabels: m.constLabels,
	}, []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_bytes",
		Help:        "Heap memory in use in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutines",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

// manager returns the global manager when recording is enabled.
func manager() *Manager {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalManager == nil || !globalManager.enabled {
		return nil
	}
	return globalManager
}

// SetGlobal replaces the manager behind the package-level recorders and returns the
// previous one.
func SetGlobal(m *Manager) *Manager {
	globalMu.Lock()
	defer globalMu.Unlock()
	prev := globalManager
	globalManager = m
	return prev
}

// RecordAnalystQuery counts one analyst query.
func RecordAnalystQuery(operation, outcome string) {
	if m := manager(); m != nil {
		m.analystQueries.WithLabelValues(operation, outcome).Inc()
	}
}

// RecordAnalystLatency records analyst query latency in milliseconds.
func RecordAnalystLatency(operation string, latencyMs float64) {
	if m := manager(); m != nil {
		m.analystLatency.WithLabelValues(operation).Observe(latencyMs)
	}
}

// RecordRecordsLoaded adds n stored records for category.
func RecordRecordsLoaded(category string, n int) {
	if m := manager(); m != nil {
		m.recordsLoaded.WithLabelValues(category).Add(float64(n))
	}
}

// RecordRecordRejected counts one skipped record for category.
func RecordRecordRejected(category string) {
	if m := manager(); m != nil {
		m.recordsRejected.WithLabelValues(category).Inc()
	}
}

// UpdateDistrictsLoaded sets the number of known districts.
func UpdateDistrictsLoaded(count int) {
	if m := manager(); m != nil {
		m.districtsLoaded.Set(float64(count))
	}
}

// RecordLoadDuration records data load time in milliseconds.
func RecordLoadDuration(ms float64) {
	if m := manager(); m != nil {
		m.loadDuration.Observe(ms)
	}
}

// RecordPageRendered counts one written page of kind.
func RecordPageRendered(kind string) {
	if m := manager(); m != nil {
		m.pagesRendered.WithLabelValues(kind).Inc()
	}
}

// RecordRenderDuration records report build time in milliseconds.
func RecordRenderDuration(ms float64) {
	if m := manager(); m != nil {
		m.renderDuration.Observe(ms)
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if m := manager(); m != nil {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if m := manager(); m != nil {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
	}
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	if m := manager(); m != nil {
		m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets the heap memory in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	if m := manager(); m != nil {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	if m := manager(); m != nil {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
