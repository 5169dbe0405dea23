package mywebapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for the request lifecycle,
// the response cache and the open-request tracker. It is safe for concurrent
// use, and every Record method is a no-op on a nil receiver.
type MetricsCollector struct {
	requestsStarted  *prometheus.CounterVec
	requestsResolved *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheSize   *prometheus.GaugeVec

	suppressedTotal    *prometheus.CounterVec
	invalidationsTotal *prometheus.CounterVec
	errorsTotal        *prometheus.CounterVec

	registry prometheus.Registerer
}

// Request outcomes recorded on resolution.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeCached  = "cached"
)

// NewMetricsCollector creates a metrics collector on the default registerer.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWithRegistry(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWithRegistry creates a collector using the supplied
// registerer.
func NewMetricsCollectorWithRegistry(registry prometheus.Registerer) *MetricsCollector {
	return &MetricsCollector{
		requestsStarted: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywebapi_requests_started_total",
				Help: "Total number of fetches dispatched",
			},
			[]string{"method", "endpoint"},
		),
		requestsResolved: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywebapi_requests_resolved_total",
				Help: "Total number of requests resolved, by outcome",
			},
			[]string{"method", "endpoint", "outcome"},
		),
		requestDuration: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mywebapi_request_duration_seconds",
				Help:    "Duration of dispatched fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		requestsInFlight: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mywebapi_requests_in_flight",
				Help: "Number of fetches currently in flight",
			},
			[]string{"method", "endpoint"},
		),
		cacheHits: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywebapi_cache_hits_total",
				Help: "Total number of requests completed from the cache",
			},
			[]string{"method", "endpoint"},
		),
		cacheMisses: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywebapi_cache_misses_total",
				Help: "Total number of cache lookups that missed",
			},
			[]string{"method", "endpoint"},
		),
		cacheSize: promauto.With(registry).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mywebapi_cache_size",
				Help: "Current number of entries in the response cache",
			},
			[]string{"name"},
		),
		suppressedTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywebapi_requests_suppressed_total",
				Help: "Total number of duplicate requests dropped while in flight",
			},
			[]string{"method", "endpoint"},
		),
		invalidationsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywebapi_content_invalidations_total",
				Help: "Total number of content invalidations",
			},
			[]string{"content"},
		),
		errorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mywebapi_errors_total",
				Help: "Total number of fetch errors encountered",
			},
			[]string{"type", "method", "endpoint"},
		),
		registry: registry,
	}
}

// RecordRequestStart increments dispatch counters and the in-flight gauge.
func (mc *MetricsCollector) RecordRequestStart(method, endpoint string) {
	if mc == nil {
		return
	}
	mc.requestsStarted.WithLabelValues(method, endpoint).Inc()
	mc.requestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// RecordRequestEnd decrements the in-flight gauge and records duration.
func (mc *MetricsCollector) RecordRequestEnd(method, endpoint string, duration time.Duration) {
	if mc == nil {
		return
	}
	mc.requestsInFlight.WithLabelValues(method, endpoint).Dec()
	mc.requestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordResolved records a request resolution with its outcome.
func (mc *MetricsCollector) RecordResolved(method, endpoint, outcome string) {
	if mc == nil {
		return
	}
	mc.requestsResolved.WithLabelValues(method, endpoint, outcome).Inc()
}

// RecordCacheHit records a request completed from the cache.
func (mc *MetricsCollector) RecordCacheHit(method, endpoint string) {
	if mc == nil {
		return
	}
	mc.cacheHits.WithLabelValues(method, endpoint).Inc()
}

// RecordCacheMiss records a cache lookup that missed.
func (mc *MetricsCollector) RecordCacheMiss(method, endpoint string) {
	if mc == nil {
		return
	}
	mc.cacheMisses.WithLabelValues(method, endpoint).Inc()
}

// RecordCacheSize records the current cache entry count.
func (mc *MetricsCollector) RecordCacheSize(name string, size int) {
	if mc == nil {
		return
	}
	mc.cacheSize.WithLabelValues(name).Set(float64(size))
}

// RecordSuppressed records a duplicate request dropped by the tracker.
func (mc *MetricsCollector) RecordSuppressed(method, endpoint string) {
	if mc == nil {
		return
	}
	mc.suppressedTotal.WithLabelValues(method, endpoint).Inc()
}

// RecordInvalidation records a bulk invalidation of a content name.
func (mc *MetricsCollector) RecordInvalidation(content string) {
	if mc == nil {
		return
	}
	mc.invalidationsTotal.WithLabelValues(content).Inc()
}

// RecordError records a fetch error by type.
func (mc *MetricsCollector) RecordError(errorType, method, endpoint string) {
	if mc == nil {
		return
	}
	mc.errorsTotal.WithLabelValues(errorType, method, endpoint).Inc()
}
