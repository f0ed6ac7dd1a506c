// Package tracing provides distributed tracing built on OpenTelemetry.
//
// Spans are exported over OTLP gRPC to a collector. When tracing is
// disabled in the configuration, New returns a noop tracer so callers
// never need to branch on whether tracing is on.
//
// Typical usage:
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing)
//	if err != nil {
//		return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, "validate")
//	defer span.End()
//	tracing.SetDiagramAttributes(span, diagram.ID, "http")
//
// Trace context crosses HTTP boundaries via the W3C traceparent and
// tracestate headers; Extract, Inject, and HTTPMiddleware handle the
// header plumbing.
package tracing
