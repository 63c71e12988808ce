// Package metrics defines the Prometheus instruments the service exports
// and small helpers for recording into them. Instruments register themselves
// on the default registry at init so the /metrics endpoint only needs
// promhttp.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts requests by method, path, and response status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradegate_http_requests_total",
			Help: "Total HTTP requests served.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradegate_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// OperationsTotal counts dispatched operations by name and outcome
	// (ok, client_fault, or server_fault).
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradegate_operations_total",
			Help: "Dispatched operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)
)

// RecordHTTPRequest records one served request on the HTTP instruments.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordOperation records one dispatched operation and its outcome.
func RecordOperation(operation, outcome string) {
	OperationsTotal.WithLabelValues(operation, outcome).Inc()
}
