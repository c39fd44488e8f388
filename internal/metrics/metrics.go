// Package metrics provides Prometheus metrics collection for the blend service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// EvaluationsTotal tracks formulation evaluations by compliance outcome.
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "formulation_evaluations_total",
			Help: "Total number of formulation evaluations",
		},
		[]string{"outcome"},
	)

	// EvaluationDuration tracks the duration of one calculator pipeline run.
	EvaluationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "formulation_evaluation_duration_seconds",
			Help:    "Formulation evaluation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	// MaterialResolutionsTotal tracks how slot entries were resolved.
	MaterialResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "material_resolutions_total",
			Help: "Total number of material resolutions by source",
		},
		[]string{"source"},
	)

	// GatewayRequestsTotal tracks estimation gateway calls by result.
	GatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimation_gateway_requests_total",
			Help: "Total number of estimation gateway requests",
		},
		[]string{"result"},
	)

	// GatewayRequestDuration tracks estimation gateway latency.
	GatewayRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "estimation_gateway_request_duration_seconds",
			Help:    "Estimation gateway request duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	// CatalogReloadsTotal tracks catalog snapshot reloads.
	CatalogReloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_reloads_total",
			Help: "Total number of catalog reloads",
		},
		[]string{"source", "result"},
	)

	// CatalogMaterials tracks the number of materials in the active snapshot.
	CatalogMaterials = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_materials",
			Help: "Number of materials in the active catalog snapshot",
		},
	)

	// SessionsActive tracks live formulation sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "formulation_sessions_active",
			Help: "Number of live formulation sessions",
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
		[]string{"cache"},
	)

	// CircuitBreakerState tracks breaker state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// AsyncLogEntriesTotal counts request and audit log entries by outcome.
	AsyncLogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "async_log_entries_total",
			Help: "Log entries handled by the async logger (enqueued, dropped, written, error)",
		},
		[]string{"result"},
	)

	// RequestsAbortedTotal counts requests cut short by a panic, a deadline or the rate limiter.
	RequestsAbortedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_aborted_total",
			Help: "Requests cut short by recovery, timeout or rate limit middleware",
		},
		[]string{"reason", "path"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordEvaluation records metrics for a calculator pipeline run.
// outcome is "pass", "fail" or "issues".
func RecordEvaluation(duration time.Duration, outcome string) {
	EvaluationDuration.Observe(duration.Seconds())
	EvaluationsTotal.WithLabelValues(outcome).Inc()
}

// RecordMaterialResolution records how a slot entry was resolved.
func RecordMaterialResolution(source string) {
	MaterialResolutionsTotal.WithLabelValues(source).Inc()
}

// RecordGatewayRequest records an estimation gateway call.
func RecordGatewayRequest(duration time.Duration, result string) {
	GatewayRequestDuration.Observe(duration.Seconds())
	GatewayRequestsTotal.WithLabelValues(result).Inc()
}

// RecordCatalogReload records a catalog reload and the resulting snapshot size.
func RecordCatalogReload(source, result string, materials int) {
	CatalogReloadsTotal.WithLabelValues(source, result).Inc()
	if result == "success" {
		CatalogMaterials.Set(float64(materials))
	}
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(cache string, size, capacity int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
	CacheCapacity.WithLabelValues(cache).Set(float64(capacity))
}

// SetCircuitBreakerState records the state of a named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordAsyncLogEntry records the outcome of one async log entry.
func RecordAsyncLogEntry(result string) {
	AsyncLogEntriesTotal.WithLabelValues(result).Inc()
}

// RecordAsyncLogEntries records the outcome of a written batch.
func RecordAsyncLogEntries(result string, n int) {
	AsyncLogEntriesTotal.WithLabelValues(result).Add(float64(n))
}

// RecordAbortedRequest records a request ended by a panic or timeout.
func RecordAbortedRequest(reason, path string) {
	RequestsAbortedTotal.WithLabelValues(reason, path).Inc()
}
