package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// Collector is the orchestrator for all Prometheus metrics in bpmnlint.
// It manages metric registration and provides a unified interface for
// recording metrics across the validator, the server, and the watcher.
type Collector struct {
	enabled  bool
	registry *prometheus.Registry

	validation *ValidationMetrics
	server     *ServerMetrics
}

// NewCollector creates a new metrics collector registered against the given
// Prometheus registry. If registry is nil, a fresh registry is used.
//
// Example:
//
//	collector := metrics.NewCollector(true, nil)
//	http.Handle("/metrics", collector.Handler())
func NewCollector(enabled bool, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Collector{
		enabled:    enabled,
		registry:   registry,
		validation: NewValidationMetrics(registry),
		server:     NewServerMetrics(registry),
	}
}

// Enabled reports whether metric recording is active.
func (c *Collector) Enabled() bool { return c.enabled }

// RecordValidation records metrics for one completed validation run.
//
// Parameters:
//   - source: where the diagram came from ("file", "api", "git", "watch")
//   - rep: the aggregated validation report
//   - duration: total validation duration including decode
func (c *Collector) RecordValidation(source string, rep report.Report, duration time.Duration) {
	if !c.enabled {
		return
	}

	outcome := "valid"
	if !rep.Valid {
		outcome = "invalid"
	}
	c.validation.RecordRun(source, outcome, duration)
	for _, f := range rep.Findings {
		c.validation.RecordFinding(string(f.Severity), string(f.Code))
	}
}

// RecordValidationFailure records a validation call that aborted before
// producing a report (decode failure, duplicate ids).
func (c *Collector) RecordValidationFailure(source, reason string) {
	if !c.enabled {
		return
	}
	c.validation.RecordFailure(source, reason)
}

// RecordHTTPRequest records metrics for one served HTTP request.
func (c *Collector) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if !c.enabled {
		return
	}
	c.server.RecordRequest(method, path, status, duration)
}

// SetTrackedDiagrams updates the gauge of diagrams in the registry.
func (c *Collector) SetTrackedDiagrams(n int) {
	if !c.enabled {
		return
	}
	c.validation.SetTracked(n)
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }
