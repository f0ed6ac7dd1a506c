package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is human-readable text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
)

// ParseFormat validates a format string from a command flag.
func ParseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text or json)", s)
	}
}

// Formatter formats command output.
type Formatter interface {
	Format(data any) ([]byte, error)
	FormatTo(w io.Writer, data any) error
}

// TextFormatter formats output as plain text.
type TextFormatter struct{}

// Format converts data to text format.
func (f *TextFormatter) Format(data any) ([]byte, error) {
	return []byte(fmt.Sprintf("%v\n", data)), nil
}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	_, err := fmt.Fprintf(w, "%v\n", data)
	return err
}

// JSONFormatter formats output as JSON.
type JSONFormatter struct {
	Indent bool
}

// Format converts data to JSON format.
func (f *JSONFormatter) Format(data any) ([]byte, error) {
	if f.Indent {
		return json.MarshalIndent(data, "", "  ")
	}
	return json.Marshal(data)
}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// NewFormatter creates a new formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	default:
		return &TextFormatter{}
	}
}

// RenderReport writes a validation report as human-readable text. The
// label identifies the diagram (a file path or diagram id).
func RenderReport(w io.Writer, label string, rep report.Report) error {
	if rep.Valid && len(rep.Findings) == 0 {
		_, err := fmt.Fprintf(w, "✓ %s: valid\n", label)
		return err
	}

	marker := "✓"
	if !rep.Valid {
		marker = "✗"
	}
	if _, err := fmt.Fprintf(w, "%s %s: %d error(s), %d warning(s)\n",
		marker, label, rep.ErrorCount, rep.WarningCount); err != nil {
		return err
	}

	for _, f := range rep.Findings {
		if err := renderFinding(w, f); err != nil {
			return err
		}
	}
	return nil
}

func renderFinding(w io.Writer, f report.Finding) error {
	severity := strings.ToUpper(string(f.Severity))
	elements := ""
	if len(f.ElementIDs) > 0 {
		elements = " [" + strings.Join(f.ElementIDs, ", ") + "]"
	}
	_, err := fmt.Fprintf(w, "  %-7s %s (%s)%s: %s\n",
		severity, f.Code, f.Rule, elements, f.Message)
	return err
}

// RenderSummary writes a one-line total after a multi-diagram lint.
func RenderSummary(w io.Writer, diagrams, invalid, errors, warnings int) error {
	if invalid == 0 && errors == 0 {
		_, err := fmt.Fprintf(w, "\n%d diagram(s) validated, all valid (%d warning(s))\n",
			diagrams, warnings)
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d diagram(s) validated, %d invalid: %d error(s), %d warning(s)\n",
		diagrams, invalid, errors, warnings)
	return err
}
