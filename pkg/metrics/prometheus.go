// Package metrics provides Prometheus metrics for the proximity service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the proximity service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Query metrics - the resolve pipeline as a whole
	queriesResolved    prometheus.Counter
	queriesFailed      *prometheus.CounterVec
	refinementsApplied prometheus.Counter

	// Provider metrics - outbound geocoding and routing calls
	geocodeRequests prometheus.Counter
	geocodeFailures prometheus.Counter
	geocodeLatency  prometheus.Histogram
	routingRequests prometheus.Counter
	routingFailures prometheus.Counter
	routingLatency  prometheus.Histogram

	// Dataset metrics
	facilitiesLoaded prometheus.Gauge
	regionCount      prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "naijacare",
		subsystem:        "proximity",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics registers every metric against the configured registry.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.queriesResolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queries_resolved_total",
		Help:      "Total number of proximity queries resolved successfully",
	})

	m.queriesFailed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "queries_failed_total",
			Help:      "Total number of proximity queries that failed, by reason",
		},
		[]string{"reason"},
	)

	m.refinementsApplied = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refinements_applied_total",
		Help:      "Total number of candidates enriched with drive-time data",
	})

	m.geocodeRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "geocode_requests_total",
		Help:      "Total number of geocoding provider calls",
	})

	m.geocodeFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "geocode_failures_total",
		Help:      "Total number of geocoding provider calls that failed or matched nothing",
	})

	m.geocodeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "geocode_latency_milliseconds",
		Help:      "Latency of geocoding provider calls",
		Buckets:   m.histogramBuckets,
	})

	m.routingRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "routing_requests_total",
		Help:      "Total number of routing provider calls",
	})

	m.routingFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "routing_failures_total",
		Help:      "Total number of routing provider calls that failed or found no route",
	})

	m.routingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "routing_latency_milliseconds",
		Help:      "Latency of routing provider calls",
		Buckets:   m.histogramBuckets,
	})

	m.facilitiesLoaded = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "facilities_loaded",
		Help:      "Number of facilities loaded from the dataset",
	})

	m.regionCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "region_count",
		Help:      "Number of distinct regions in the dataset",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordQueryResolved increments the resolved queries counter.
func RecordQueryResolved() {
	globalManager.queriesResolved.Inc()
}

// RecordQueryFailed increments the failed queries counter for a reason.
func RecordQueryFailed(reason string) {
	globalManager.queriesFailed.WithLabelValues(reason).Inc()
}

// RecordRefinementApplied increments the applied refinements counter.
func RecordRefinementApplied() {
	globalManager.refinementsApplied.Inc()
}

// RecordGeocodeRequest increments the geocode requests counter.
func RecordGeocodeRequest() {
	globalManager.geocodeRequests.Inc()
}

// RecordGeocodeFailure increments the geocode failures counter.
func RecordGeocodeFailure() {
	globalManager.geocodeFailures.Inc()
}

// RecordGeocodeDuration records geocode call latency in milliseconds.
func RecordGeocodeDuration(latencyMs float64) {
	globalManager.geocodeLatency.Observe(latencyMs)
}

// RecordRoutingRequest increments the routing requests counter.
func RecordRoutingRequest() {
	globalManager.routingRequests.Inc()
}

// RecordRoutingFailure increments the routing failures counter.
func RecordRoutingFailure() {
	globalManager.routingFailures.Inc()
}

// RecordRoutingDuration records routing call latency in milliseconds.
func RecordRoutingDuration(latencyMs float64) {
	globalManager.routingLatency.Observe(latencyMs)
}

// UpdateFacilitiesLoaded sets the loaded facility count.
func UpdateFacilitiesLoaded(count int) {
	globalManager.facilitiesLoaded.Set(float64(count))
}

// UpdateRegionCount sets the distinct region count.
func UpdateRegionCount(count int) {
	globalManager.regionCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
