package cli

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestProgressReporterLifecycle(t *testing.T) {
	var buf bytes.Buffer
	progress := NewProgressReporter(&buf)

	progress.Start(10)
	for i := int64(1); i <= 10; i++ {
		progress.Update(i)
	}
	progress.Finish()

	out := buf.String()
	if !strings.Contains(out, "100.0%") {
		t.Errorf("expected 100%% in output: %q", out)
	}
	if !strings.Contains(out, "(10/10)") {
		t.Errorf("expected final count in output: %q", out)
	}
}

func TestProgressReporterZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	progress := NewProgressReporter(&buf)

	progress.Start(0)
	progress.Finish()

	// No bar rendered for zero total, only the trailing newline.
	if strings.Contains(buf.String(), "%") {
		t.Errorf("expected no progress bar for zero total: %q", buf.String())
	}
}

func TestProgressReporterError(t *testing.T) {
	var buf bytes.Buffer
	progress := NewProgressReporter(&buf)

	progress.Start(5)
	progress.Error(fmt.Errorf("decode failed"))

	if !strings.Contains(buf.String(), "decode failed") {
		t.Errorf("expected error in output: %q", buf.String())
	}
}

func TestNewProgressReporterNilWriter(t *testing.T) {
	if NewProgressReporter(nil) == nil {
		t.Fatal("expected non-nil reporter")
	}
}
