package cli

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("server.listen_address", "must be host:port")

	if !strings.Contains(err.Error(), "server.listen_address") {
		t.Errorf("expected field in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "must be host:port") {
		t.Errorf("expected detail in message, got %q", err.Error())
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("file not found")
	err := NewCommandError("lint", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "lint") {
		t.Errorf("expected command name in message, got %q", err.Error())
	}
}

func TestLintError(t *testing.T) {
	err := &LintError{Diagrams: 3, Errors: 2, Warnings: 1}

	msg := err.Error()
	for _, want := range []string{"2 error(s)", "1 warning(s)", "3 diagram(s)"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}

	var lintErr *LintError
	if !errors.As(error(err), &lintErr) {
		t.Error("expected errors.As to match *LintError")
	}
}
