package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

func TestRecordValidation(t *testing.T) {
	c := NewCollector(true, prometheus.NewRegistry())

	rep := report.Aggregate([]report.Finding{
		report.Errorf(report.CodeDanglingReference, "references", []string{"f1"}, "dangling"),
		report.Warnf(report.CodeRedundantGateway, "gateways", []string{"g1"}, "redundant"),
	})
	c.RecordValidation("file", rep, 25*time.Millisecond)

	out := scrape(t, c)
	for _, want := range []string{
		`bpmnlint_validations_total{outcome="invalid",source="file"} 1`,
		`bpmnlint_findings_total{code="DanglingReference",severity="error"} 1`,
		`bpmnlint_findings_total{code="RedundantGateway",severity="warning"} 1`,
		"bpmnlint_validation_duration_seconds",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("scrape missing %q", want)
		}
	}
}

func TestRecordValidationValidOutcome(t *testing.T) {
	c := NewCollector(true, prometheus.NewRegistry())
	c.RecordValidation("api", report.Aggregate(nil), time.Millisecond)

	if out := scrape(t, c); !strings.Contains(out, `bpmnlint_validations_total{outcome="valid",source="api"} 1`) {
		t.Errorf("scrape missing valid outcome:\n%s", out)
	}
}

func TestRecordHTTPRequestAndGauge(t *testing.T) {
	c := NewCollector(true, prometheus.NewRegistry())
	c.RecordHTTPRequest("POST", "/v1/validate", "200", 10*time.Millisecond)
	c.SetTrackedDiagrams(7)
	c.RecordValidationFailure("api", "decode")

	out := scrape(t, c)
	for _, want := range []string{
		`bpmnlint_http_requests_total{method="POST",path="/v1/validate",status="200"} 1`,
		"bpmnlint_tracked_diagrams 7",
		`bpmnlint_validation_failures_total{reason="decode",source="api"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("scrape missing %q:\n%s", want, out)
		}
	}
}

func TestDisabledCollectorRecordsNothing(t *testing.T) {
	c := NewCollector(false, prometheus.NewRegistry())
	c.RecordValidation("file", report.Aggregate(nil), time.Millisecond)
	c.RecordHTTPRequest("GET", "/healthz", "200", time.Millisecond)

	out := scrape(t, c)
	if strings.Contains(out, `source="file"`) || strings.Contains(out, `path="/healthz"`) {
		t.Errorf("disabled collector recorded samples:\n%s", out)
	}
	if c.Enabled() {
		t.Error("Enabled() should be false")
	}
}
