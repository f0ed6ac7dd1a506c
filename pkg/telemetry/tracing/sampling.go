package tracing

import (
	"fmt"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// createSampler builds a parent-based sampler from the configured ratio.
//
// The ratio picks the strategy: 0 disables sampling entirely, 1 samples
// every trace, and anything in between uses TraceIDRatioBased so that
// the sampling decision is consistent across services sharing a trace.
//
// All samplers are wrapped in ParentBased so a child span inherits its
// parent's sampling decision when one exists.
func createSampler(ratio float64) (sdktrace.Sampler, error) {
	if ratio < 0.0 || ratio > 1.0 {
		return nil, fmt.Errorf("sample ratio must be between 0.0 and 1.0, got %f", ratio)
	}

	var base sdktrace.Sampler
	switch {
	case ratio == 0.0:
		base = sdktrace.NeverSample()
	case ratio == 1.0:
		base = sdktrace.AlwaysSample()
	default:
		base = sdktrace.TraceIDRatioBased(ratio)
	}

	return sdktrace.ParentBased(base), nil
}
