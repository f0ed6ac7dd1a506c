package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"flowgate-hq/bpmnlint/pkg/telemetry/metrics"
)

func TestRequestIDMiddlewareGeneratesUUID(t *testing.T) {
	var captured string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RequestIDMiddleware(inner).ServeHTTP(rec, req)

	if captured == "" {
		t.Fatal("expected request id in context")
	}
	if _, err := uuid.Parse(captured); err != nil {
		t.Errorf("request id %q is not a UUID: %v", captured, err)
	}
	if got := rec.Header().Get(RequestIDHeader); got != captured {
		t.Errorf("response header %q does not match context id %q", got, captured)
	}
}

func TestRequestIDMiddlewareKeepsClientID(t *testing.T) {
	var captured string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	rec := httptest.NewRecorder()
	RequestIDMiddleware(inner).ServeHTTP(rec, req)

	if captured != "client-supplied-id" {
		t.Errorf("expected client id to be kept, got %q", captured)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := testLogger(t)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	RecoveryMiddleware(logger)(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 after panic, got %d", rec.Code)
	}
	if body := rec.Body.String(); body == "" {
		t.Error("expected JSON error body")
	}
}

func TestLoggingMiddlewarePreservesStatus(t *testing.T) {
	logger := testLogger(t)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	LoggingMiddleware(logger)(inner).ServeHTTP(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected 418 to pass through, got %d", rec.Code)
	}
}

func TestMetricsMiddlewareRecords(t *testing.T) {
	collector := metrics.NewCollector(true, nil)
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/diagrams", nil)
	rec := httptest.NewRecorder()
	MetricsMiddleware(collector)(inner).ServeHTTP(rec, req)

	families, err := collector.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := false
	for _, fam := range families {
		if fam.GetName() == "bpmnlint_http_requests_total" {
			found = true
		}
	}
	if !found {
		t.Error("expected bpmnlint_http_requests_total metric after request")
	}
}

func TestResponseWriterDoubleWriteHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusInternalServerError)

	if rw.statusCode != http.StatusCreated {
		t.Errorf("expected first status to stick, got %d", rw.statusCode)
	}
}
