// Package telemetry groups the observability subpackages used across
// bpmnlint.
//
// # Components
//
//   - logging: structured logging built on log/slog
//   - metrics: Prometheus metrics collection
//   - tracing: OpenTelemetry distributed tracing over OTLP
//   - health: liveness and readiness probes
//
// Each subpackage is wired from the telemetry section of the
// configuration:
//
//	cfg := config.MustGetConfig()
//
//	logger, err := logging.New(logging.Config{
//		Level:  cfg.Telemetry.Logging.Level,
//		Format: cfg.Telemetry.Logging.Format,
//	})
//
//	collector := metrics.NewCollector(cfg.Telemetry.Metrics.Enabled, nil)
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	defer tracer.Shutdown(context.Background())
//
// The subpackages are independent; the CLI uses only logging while the
// validation server wires all four.
package telemetry
