package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ServerMetrics tracks metrics for the validation HTTP server.
//
// Metrics:
//   - bpmnlint_http_requests_total: requests by method, path, and status
//   - bpmnlint_http_request_duration_seconds: request duration histogram
type ServerMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewServerMetrics creates and registers server metrics with the provided
// registry.
func NewServerMetrics(registry *prometheus.Registry) *ServerMetrics {
	sm := &ServerMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bpmnlint",
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served",
			},
			[]string{"method", "path", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bpmnlint",
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 5.0},
			},
			[]string{"method", "path"},
		),
	}

	registry.MustRegister(sm.requestsTotal, sm.requestDuration)

	return sm
}

// RecordRequest records one served HTTP request.
func (sm *ServerMetrics) RecordRequest(method, path, status string, duration time.Duration) {
	sm.requestsTotal.WithLabelValues(method, path, status).Inc()
	sm.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
