package houdiniswap

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request lifecycle:
// request counts and latency, retries, cache effectiveness and error kinds.
// It is safe for concurrent use.
type MetricsCollector struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	retriesTotal    *prometheus.CounterVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
}

// NewMetricsCollector creates a collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer, for callers that isolate metric registries.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "houdiniswap_requests_total",
				Help: "Total number of API requests made",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "houdiniswap_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		retriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "houdiniswap_retries_total",
				Help: "Total number of retry attempts",
			},
			[]string{"method", "endpoint"},
		),
		cacheHits: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "houdiniswap_cache_hits_total",
				Help: "Total number of token cache hits",
			},
			[]string{"operation"},
		),
		cacheMisses: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "houdiniswap_cache_misses_total",
				Help: "Total number of token cache misses",
			},
			[]string{"operation"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "houdiniswap_errors_total",
				Help: "Total number of errors by kind",
			},
			[]string{"kind", "endpoint"},
		),
	}
}

// RecordRequest records one completed request. statusCode is zero when the
// request never produced an HTTP response.
func (m *MetricsCollector) RecordRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.requestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRetry records one retry attempt.
func (m *MetricsCollector) RecordRetry(method, endpoint string) {
	m.retriesTotal.WithLabelValues(method, endpoint).Inc()
}

// RecordCacheHit records a token cache hit for the named operation.
func (m *MetricsCollector) RecordCacheHit(operation string) {
	m.cacheHits.WithLabelValues(operation).Inc()
}

// RecordCacheMiss records a token cache miss for the named operation.
func (m *MetricsCollector) RecordCacheMiss(operation string) {
	m.cacheMisses.WithLabelValues(operation).Inc()
}

// RecordError records a classified failure.
func (m *MetricsCollector) RecordError(kind, endpoint string) {
	m.errorsTotal.WithLabelValues(kind, endpoint).Inc()
}
