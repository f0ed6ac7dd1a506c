package tracing

import (
	"context"
	"errors"
	"testing"

	"flowgate-hq/bpmnlint/pkg/bpmn/report"
	"flowgate-hq/bpmnlint/pkg/config"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewNilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewDisabled(t *testing.T) {
	tracer, err := New(&config.TracingConfig{Enabled: false})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tracer.Enabled() {
		t.Error("tracer should report disabled")
	}

	// Noop tracer still hands out usable spans.
	ctx, span := tracer.Start(context.Background(), "noop")
	span.End()
	if TraceID(ctx) != "" {
		t.Errorf("noop span should carry no trace id, got %q", TraceID(ctx))
	}

	if err := tracer.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestNewInvalidSampleRatio(t *testing.T) {
	_, err := New(&config.TracingConfig{
		Enabled:     true,
		Endpoint:    "localhost:4317",
		SampleRatio: 1.5,
	})
	if err == nil {
		t.Fatal("expected error for out-of-range sample ratio")
	}
}

func TestTraceAndSpanIDs(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer provider.Shutdown(context.Background())

	ctx, span := provider.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	if TraceID(ctx) == "" {
		t.Error("expected non-empty trace id")
	}
	if SpanID(ctx) == "" {
		t.Error("expected non-empty span id")
	}
	if TraceID(context.Background()) != "" {
		t.Error("background context should have no trace id")
	}
}

func TestSetErrorAndAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer provider.Shutdown(context.Background())

	_, span := provider.Tracer("test").Start(context.Background(), "validate")
	SetDiagramAttributes(span, "order-fulfilment", "file")
	SetReportAttributes(span, report.Report{Valid: false, ErrorCount: 2, WarningCount: 1})
	SetRuleAttribute(span, "connectivity")
	SetError(span, errors.New("decode failed"))
	SetError(span, nil)
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 recorded span, got %d", len(spans))
	}

	got := make(map[string]any)
	for _, attr := range spans[0].Attributes() {
		got[string(attr.Key)] = attr.Value.AsInterface()
	}

	if got[AttrDiagramID] != "order-fulfilment" {
		t.Errorf("diagram id attribute = %v", got[AttrDiagramID])
	}
	if got[AttrSource] != "file" {
		t.Errorf("source attribute = %v", got[AttrSource])
	}
	if got[AttrValid] != false {
		t.Errorf("valid attribute = %v", got[AttrValid])
	}
	if got[AttrErrorCount] != int64(2) {
		t.Errorf("error count attribute = %v", got[AttrErrorCount])
	}
	if got[AttrRule] != "connectivity" {
		t.Errorf("rule attribute = %v", got[AttrRule])
	}
	if got["error"] != true {
		t.Errorf("error attribute = %v", got["error"])
	}
	if got["error.message"] != "decode failed" {
		t.Errorf("error.message attribute = %v", got["error.message"])
	}

	events := spans[0].Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 recorded error event, got %d", len(events))
	}
}

func TestSetStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer provider.Shutdown(context.Background())

	_, ok := provider.Tracer("test").Start(context.Background(), "ok")
	SetStatus(ok, nil)
	ok.End()

	_, failed := provider.Tracer("test").Start(context.Background(), "failed")
	SetStatus(failed, errors.New("boom"))
	failed.End()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Status().Code.String() != "Ok" {
		t.Errorf("ok span status = %v", spans[0].Status().Code)
	}
	if spans[1].Status().Code.String() != "Error" {
		t.Errorf("failed span status = %v", spans[1].Status().Code)
	}
	if spans[1].Status().Description != "boom" {
		t.Errorf("failed span description = %q", spans[1].Status().Description)
	}
}
