// Package metrics provides Prometheus metrics collection for bpmnlint.
//
// # Overview
//
// The metrics package tracks validation runs, findings, HTTP traffic, and
// the registry of tracked diagrams. All metrics live under the "bpmnlint"
// namespace and are registered against an isolated Prometheus registry so
// tests and embedders never collide with the global default.
//
// # Metrics
//
//   - bpmnlint_validations_total{source,outcome}
//   - bpmnlint_validation_duration_seconds{source}
//   - bpmnlint_findings_total{severity,code}
//   - bpmnlint_validation_failures_total{source,reason}
//   - bpmnlint_tracked_diagrams
//   - bpmnlint_http_requests_total{method,path,status}
//   - bpmnlint_http_request_duration_seconds{method,path}
//
// # Usage
//
//	collector := metrics.NewCollector(true, nil)
//
//	rep, err := validator.New().Validate(diagram)
//	collector.RecordValidation("file", rep, time.Since(started))
//
//	http.Handle("/metrics", collector.Handler())
//
// Recording is a no-op when the collector is created disabled, so call
// sites never need to guard on configuration themselves.
package metrics
