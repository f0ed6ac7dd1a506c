package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ValidationMetrics tracks metrics for diagram validation runs.
//
// Metrics:
//   - bpmnlint_validations_total: validation runs by source and outcome
//   - bpmnlint_validation_duration_seconds: validation duration histogram
//   - bpmnlint_findings_total: findings by severity and code
//   - bpmnlint_validation_failures_total: aborted validations by reason
//   - bpmnlint_tracked_diagrams: diagrams currently registered
type ValidationMetrics struct {
	runsTotal     *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	findingsTotal *prometheus.CounterVec
	failuresTotal *prometheus.CounterVec
	tracked       prometheus.Gauge
}

// NewValidationMetrics creates and registers validation metrics with the
// provided registry.
func NewValidationMetrics(registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bpmnlint",
				Name:      "validations_total",
				Help:      "Total number of diagram validation runs",
			},
			[]string{"source", "outcome"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bpmnlint",
				Name:      "validation_duration_seconds",
				Help:      "Duration of diagram validation runs in seconds",
				// Structural validation is fast; sub-second buckets.
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"source"},
		),

		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bpmnlint",
				Name:      "findings_total",
				Help:      "Total number of validation findings by severity and code",
			},
			[]string{"severity", "code"},
		),

		failuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bpmnlint",
				Name:      "validation_failures_total",
				Help:      "Validations aborted before producing a report",
			},
			[]string{"source", "reason"},
		),

		tracked: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "bpmnlint",
				Name:      "tracked_diagrams",
				Help:      "Number of diagrams currently registered for re-validation",
			},
		),
	}

	registry.MustRegister(
		vm.runsTotal,
		vm.duration,
		vm.findingsTotal,
		vm.failuresTotal,
		vm.tracked,
	)

	return vm
}

// RecordRun records a completed validation run.
func (vm *ValidationMetrics) RecordRun(source, outcome string, duration time.Duration) {
	vm.runsTotal.WithLabelValues(source, outcome).Inc()
	vm.duration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordFinding records one finding.
func (vm *ValidationMetrics) RecordFinding(severity, code string) {
	vm.findingsTotal.WithLabelValues(severity, code).Inc()
}

// RecordFailure records an aborted validation.
func (vm *ValidationMetrics) RecordFailure(source, reason string) {
	vm.failuresTotal.WithLabelValues(source, reason).Inc()
}

// SetTracked updates the tracked diagram gauge.
func (vm *ValidationMetrics) SetTracked(n int) {
	vm.tracked.Set(float64(n))
}
