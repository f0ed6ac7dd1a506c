package report

import (
	"fmt"
	"strings"
)

// Severity grades a finding. Errors make the diagram invalid; warnings
// flag discouraged but legal structure.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code identifies the class of a finding. Codes are stable across releases;
// downstream tooling treats them as a taxonomy.
type Code string

const (
	// Reference integrity
	CodeDanglingReference   Code = "DanglingReference"
	CodeInvalidFlowEndpoint Code = "InvalidFlowEndpoint"

	// Connectivity
	CodeOrphanNode       Code = "OrphanNode"
	CodeInvalidEventFlow Code = "InvalidEventFlow"

	// Reachability
	CodeUnreachableNode Code = "UnreachableNode"

	// Gateway semantics
	CodeAmbiguousGatewayRole     Code = "AmbiguousGatewayRole"
	CodeInvalidParallelCondition Code = "InvalidParallelCondition"
	CodeRedundantGateway         Code = "RedundantGateway"
	CodeGatewayMissingFlow       Code = "GatewayMissingFlow"
	CodeGatewayDirectionMismatch Code = "GatewayDirectionMismatch"

	// Pool and lane consistency
	CodeLaneProcessMismatch     Code = "LaneProcessMismatch"
	CodeInvalidMessageFlowScope Code = "InvalidMessageFlowScope"

	// Data object lifecycle
	CodeInvalidDataState Code = "InvalidDataState"

	// Process-level structure
	CodeMissingStartEvent   Code = "MissingStartEvent"
	CodeMultipleStartEvents Code = "MultipleStartEvents"
	CodeMissingEndEvent     Code = "MissingEndEvent"
)

// Finding is one reported validation issue.
type Finding struct {
	// Code classifies the issue.
	Code Code `json:"code"`

	// Severity is error or warning.
	Severity Severity `json:"severity"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// ElementIDs names the affected elements, most specific first.
	ElementIDs []string `json:"element_ids"`

	// Rule names the rule group that produced the finding.
	Rule string `json:"rule"`
}

// Errorf builds an error-severity finding with a formatted message.
func Errorf(code Code, rule string, elementIDs []string, format string, args ...any) Finding {
	return Finding{
		Code:       code,
		Severity:   SeverityError,
		Message:    fmt.Sprintf(format, args...),
		ElementIDs: elementIDs,
		Rule:       rule,
	}
}

// Warnf builds a warning-severity finding with a formatted message.
func Warnf(code Code, rule string, elementIDs []string, format string, args ...any) Finding {
	return Finding{
		Code:       code,
		Severity:   SeverityWarning,
		Message:    fmt.Sprintf(format, args...),
		ElementIDs: elementIDs,
		Rule:       rule,
	}
}

// String renders the finding as a single line: severity, code, message,
// and affected elements.
func (f Finding) String() string {
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(string(f.Severity)))
	sb.WriteString(" [")
	sb.WriteString(string(f.Code))
	sb.WriteString("] ")
	sb.WriteString(f.Message)
	if len(f.ElementIDs) > 0 {
		sb.WriteString(" (element: ")
		sb.WriteString(strings.Join(f.ElementIDs, ", "))
		sb.WriteString(")")
	}
	return sb.String()
}

// IsError reports whether the finding has error severity.
func (f Finding) IsError() bool { return f.Severity == SeverityError }
