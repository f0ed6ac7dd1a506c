package report

import (
	"fmt"
	"strings"
)

// Report is the aggregated outcome of one validation call.
type Report struct {
	// Valid is true iff no finding has severity error.
	Valid bool `json:"valid"`

	// Findings lists all issues in stable order: by rule group, then by
	// first-encountered element id.
	Findings []Finding `json:"findings"`

	// ErrorCount and WarningCount summarize the findings list.
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
}

// Aggregate builds a Report from a findings list, preserving order.
func Aggregate(findings []Finding) Report {
	r := Report{
		Findings: make([]Finding, len(findings)),
	}
	copy(r.Findings, findings)
	for _, f := range r.Findings {
		switch f.Severity {
		case SeverityError:
			r.ErrorCount++
		case SeverityWarning:
			r.WarningCount++
		}
	}
	r.Valid = r.ErrorCount == 0
	return r
}

// Errors returns the error-severity findings.
func (r Report) Errors() []Finding {
	return r.bySeverity(SeverityError)
}

// Warnings returns the warning-severity findings.
func (r Report) Warnings() []Finding {
	return r.bySeverity(SeverityWarning)
}

func (r Report) bySeverity(sev Severity) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f)
		}
	}
	return out
}

// HasErrors reports whether the report contains any error findings.
func (r Report) HasErrors() bool { return r.ErrorCount > 0 }

// HasWarnings reports whether the report contains any warning findings.
func (r Report) HasWarnings() bool { return r.WarningCount > 0 }

// Render formats the report as a multi-line, human-readable summary.
// Identical reports render byte-identically.
func (r Report) Render() string {
	if len(r.Findings) == 0 {
		return "Validation passed: no issues found.\n"
	}

	var sb strings.Builder
	sb.WriteString("BPMN Validation Report\n")
	sb.WriteString("======================\n\n")

	if errs := r.Errors(); len(errs) > 0 {
		sb.WriteString("ERRORS:\n")
		for _, f := range errs {
			writeFindingLine(&sb, f)
		}
		sb.WriteString("\n")
	}

	if warns := r.Warnings(); len(warns) > 0 {
		sb.WriteString("WARNINGS:\n")
		for _, f := range warns {
			writeFindingLine(&sb, f)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("SUMMARY:\n")
	fmt.Fprintf(&sb, "  Errors:   %d\n", r.ErrorCount)
	fmt.Fprintf(&sb, "  Warnings: %d\n", r.WarningCount)
	fmt.Fprintf(&sb, "  Total:    %d\n", len(r.Findings))
	return sb.String()
}

func writeFindingLine(sb *strings.Builder, f Finding) {
	fmt.Fprintf(sb, "  - [%s] %s", f.Code, f.Message)
	if len(f.ElementIDs) > 0 {
		fmt.Fprintf(sb, " (element: %s)", strings.Join(f.ElementIDs, ", "))
	}
	sb.WriteString("\n")
}
