package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCheckLiveness(t *testing.T) {
	checker := New(0)
	status := checker.CheckLiveness(context.Background())

	if status.Status != "ok" {
		t.Errorf("liveness status = %q, want ok", status.Status)
	}
	if status.Timestamp.IsZero() {
		t.Error("liveness timestamp should be set")
	}
}

func TestCheckReadinessNoChecks(t *testing.T) {
	checker := New(0)
	status := checker.CheckReadiness(context.Background())

	if status.Status != "ready" {
		t.Errorf("status = %q, want ready", status.Status)
	}
}

func TestCheckReadinessAllHealthy(t *testing.T) {
	checker := New(0)
	checker.Register("history", func(ctx context.Context) error { return nil })
	checker.Register("registry", func(ctx context.Context) error { return nil })

	status := checker.CheckReadiness(context.Background())

	if status.Status != "ready" {
		t.Errorf("status = %q, want ready", status.Status)
	}
	if len(status.Checks) != 2 {
		t.Fatalf("expected 2 check results, got %d", len(status.Checks))
	}
	for name, result := range status.Checks {
		if result.Status != "ok" {
			t.Errorf("check %q status = %q, want ok", name, result.Status)
		}
	}
}

func TestCheckReadinessDegraded(t *testing.T) {
	checker := New(0)
	checker.Register("history", func(ctx context.Context) error { return nil })
	checker.Register("source", func(ctx context.Context) error {
		return errors.New("repository unreachable")
	})

	status := checker.CheckReadiness(context.Background())

	if status.Status != "degraded" {
		t.Errorf("status = %q, want degraded", status.Status)
	}
	if status.Checks["source"].Message != "repository unreachable" {
		t.Errorf("source message = %q", status.Checks["source"].Message)
	}
}

func TestCheckReadinessTimeout(t *testing.T) {
	checker := New(20 * time.Millisecond)
	checker.Register("slow", func(ctx context.Context) error {
		select {
		case <-time.After(time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	status := checker.CheckReadiness(context.Background())

	if status.Status != "degraded" {
		t.Errorf("status = %q, want degraded", status.Status)
	}
	if status.Checks["slow"].Status != "unhealthy" {
		t.Errorf("slow check status = %q, want unhealthy", status.Checks["slow"].Status)
	}
}

func TestUnregister(t *testing.T) {
	checker := New(0)
	checker.Register("history", func(ctx context.Context) error { return errors.New("down") })
	checker.Unregister("history")

	if names := checker.CheckNames(); len(names) != 0 {
		t.Errorf("expected no checks, got %v", names)
	}
	if status := checker.CheckReadiness(context.Background()); status.Status != "ready" {
		t.Errorf("status = %q, want ready", status.Status)
	}
}

func TestLivenessHandler(t *testing.T) {
	checker := New(0)
	handler := checker.LivenessHandler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", rec.Code)
	}

	var status Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if status.Status != "ok" {
		t.Errorf("body status = %q, want ok", status.Status)
	}
}

func TestLivenessHandlerMethodNotAllowed(t *testing.T) {
	checker := New(0)
	handler := checker.LivenessHandler()

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status code = %d, want 405", rec.Code)
	}
}

func TestReadinessHandlerDegradedReturns503(t *testing.T) {
	checker := New(0)
	checker.Register("history", func(ctx context.Context) error {
		return errors.New("database locked")
	})
	handler := checker.ReadinessHandler()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status code = %d, want 503", rec.Code)
	}

	var status Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if status.Checks["history"].Message != "database locked" {
		t.Errorf("history message = %q", status.Checks["history"].Message)
	}
}

func TestVersionHandler(t *testing.T) {
	handler := VersionHandler("0.3.0", "abc1234", "2026-08-30T00:00:00Z")

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", rec.Code)
	}

	var info VersionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if info.Version != "0.3.0" {
		t.Errorf("version = %q", info.Version)
	}
	if info.GoVersion == "" {
		t.Error("go_version should be populated")
	}
}
