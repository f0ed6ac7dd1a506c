package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flowgate-hq/bpmnlint/pkg/bpmn/codec"
	"flowgate-hq/bpmnlint/pkg/bpmn/sample"
	"flowgate-hq/bpmnlint/pkg/config"
	"flowgate-hq/bpmnlint/pkg/registry"
	"flowgate-hq/bpmnlint/pkg/telemetry/health"
	"flowgate-hq/bpmnlint/pkg/telemetry/logging"
	"flowgate-hq/bpmnlint/pkg/telemetry/metrics"
)

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	logger, err := logging.New(logging.Config{Level: "error", Format: "text", Writer: io.Discard})
	if err != nil {
		t.Fatalf("logging.New failed: %v", err)
	}
	return logger
}

func newTestServer(t *testing.T, mutate func(*config.Config, *Deps)) *Server {
	t.Helper()

	cfg := config.NewDefaultConfig()

	deps := Deps{
		Logger:    testLogger(t),
		Collector: metrics.NewCollector(true, nil),
		Checker:   health.New(0),
		Registry:  registry.NewMemoryBackend(),
	}
	if mutate != nil {
		mutate(cfg, &deps)
	}

	srv, err := New(cfg, deps)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return srv
}

func validDiagramJSON(t *testing.T) []byte {
	t.Helper()
	data, err := codec.EncodeJSON(sample.ApprovalProcess())
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	return data
}

func TestValidateEndpointValidDiagram(t *testing.T) {
	srv := newTestServer(t, nil)
	handler := srv.Handler()

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(validDiagramJSON(t)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(RequestIDHeader) == "" {
		t.Error("expected X-Request-ID response header")
	}

	var resp ValidateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Report.Valid {
		t.Errorf("expected valid report, got findings: %+v", resp.Report.Findings)
	}
	if resp.DiagramID == "" {
		t.Error("expected diagram id in response")
	}
	if resp.RequestID == "" {
		t.Error("expected request id in response")
	}
}

func TestValidateEndpointYAML(t *testing.T) {
	srv := newTestServer(t, nil)

	data, err := codec.EncodeYAML(sample.Collaboration())
	if err != nil {
		t.Fatalf("EncodeYAML failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/yaml")
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ValidateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Report.Valid {
		t.Errorf("expected valid report, got findings: %+v", resp.Report.Findings)
	}
}

func TestValidateEndpointInvalidDiagram(t *testing.T) {
	srv := newTestServer(t, nil)

	body := []byte(`{
		"id": "broken",
		"processes": [{
			"id": "p1",
			"tasks": [{"id": "t1", "name": "Lonely task"}]
		}]
	}`)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with findings, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ValidateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Report.Valid {
		t.Error("expected invalid report for process without start event")
	}
	if resp.Report.ErrorCount == 0 {
		t.Error("expected at least one error finding")
	}
}

func TestValidateEndpointMalformedBody(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestValidateEndpointEmptyBody(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(nil))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty body, got %d", rec.Code)
	}
}

func TestValidateEndpointBodyTooLarge(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config, _ *Deps) {
		cfg.Server.MaxBodyBytes = 16
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(validDiagramJSON(t)))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestValidateEndpointMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/validate", nil)
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestValidateEndpointDuplicateIDAborts(t *testing.T) {
	srv := newTestServer(t, nil)

	body := []byte(`{
		"id": "dup",
		"processes": [{
			"id": "p1",
			"events": [{"id": "e1", "event_type": "start"}],
			"tasks": [{"id": "e1"}]
		}]
	}`)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for duplicate element id, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestValidateUpdatesRegistry(t *testing.T) {
	backend := registry.NewMemoryBackend()
	srv := newTestServer(t, func(_ *config.Config, deps *Deps) {
		deps.Registry = backend
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(validDiagramJSON(t)))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	entries, err := backend.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 registry entry, got %d", len(entries))
	}

	entry := entries[0]
	if !entry.LastValid {
		t.Error("expected entry marked valid")
	}
	if entry.Source != "http" {
		t.Errorf("expected source http, got %q", entry.Source)
	}
	if entry.Processes == 0 || entry.Elements == 0 {
		t.Errorf("expected process and element counts, got %d/%d", entry.Processes, entry.Elements)
	}
	if entry.LastValidatedAt.IsZero() {
		t.Error("expected LastValidatedAt to be set")
	}
}

func TestDiagramsEndpoint(t *testing.T) {
	backend := registry.NewMemoryBackend()
	srv := newTestServer(t, func(_ *config.Config, deps *Deps) {
		deps.Registry = backend
	})

	now := time.Now().UTC()
	for _, id := range []string{"order", "invoice"} {
		err := backend.Upsert(context.Background(), &registry.Entry{
			DiagramID:       id,
			Source:          "file",
			LastValid:       true,
			LastValidatedAt: now,
		})
		if err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/diagrams", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp DiagramsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected 2 diagrams, got %d", resp.Count)
	}
	if len(resp.Diagrams) != 2 || resp.Diagrams[0].DiagramID != "invoice" {
		t.Errorf("expected sorted diagram listing, got %+v", resp.Diagrams)
	}
}

func TestDiagramsEndpointWithoutRegistry(t *testing.T) {
	srv := newTestServer(t, func(_ *config.Config, deps *Deps) {
		deps.Registry = nil
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/diagrams", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 without registry, got %d", rec.Code)
	}
}

func TestDiagramsEndpointMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodDelete, "/v1/diagrams", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t, nil)
	handler := srv.Handler()

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 from metrics endpoint, got %d", rec.Code)
	}
}

func TestDisabledRulesRespected(t *testing.T) {
	srv := newTestServer(t, func(cfg *config.Config, _ *Deps) {
		cfg.Lint.DisabledRules = []string{"structure"}
	})

	// No start event: a structure finding that disappears when the
	// structure rule group is disabled.
	body := []byte(`{
		"id": "no-start",
		"processes": [{
			"id": "p1",
			"tasks": [{"id": "t1"}],
			"events": [{"id": "end", "event_type": "end"}],
			"sequence_flows": [{"id": "f1", "source_ref": "t1", "target_ref": "end"}]
		}]
	}`)

	req := httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ValidateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, f := range resp.Report.Findings {
		if f.Rule == "structure" {
			t.Errorf("expected no structure findings with rule disabled, got %+v", f)
		}
	}
}

func TestIsYAMLContentType(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"application/yaml", true},
		{"application/x-yaml", true},
		{"text/yaml; charset=utf-8", true},
		{"application/json", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isYAMLContentType(tt.contentType); got != tt.want {
			t.Errorf("isYAMLContentType(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}
