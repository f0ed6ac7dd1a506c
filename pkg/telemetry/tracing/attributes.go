package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"flowgate-hq/bpmnlint/pkg/bpmn/report"
)

// Span attribute keys. Standard keys follow OpenTelemetry semantic
// conventions; custom keys use the "bpmnlint.*" namespace.
const (
	AttrDiagramID = "bpmnlint.diagram_id"
	AttrSource    = "bpmnlint.source"
	AttrRequestID = "bpmnlint.request_id"
	AttrRule      = "bpmnlint.rule"

	AttrValid        = "bpmnlint.report.valid"
	AttrErrorCount   = "bpmnlint.report.errors"
	AttrWarningCount = "bpmnlint.report.warnings"

	AttrProcessCount = "bpmnlint.diagram.processes"
	AttrElementCount = "bpmnlint.diagram.elements"
)

// SetDiagramAttributes sets diagram identity attributes on a span.
func SetDiagramAttributes(span trace.Span, diagramID, source string) {
	span.SetAttributes(
		attribute.String(AttrDiagramID, diagramID),
		attribute.String(AttrSource, source),
	)
}

// SetReportAttributes records the outcome of a validation run on a span.
func SetReportAttributes(span trace.Span, rep report.Report) {
	span.SetAttributes(
		attribute.Bool(AttrValid, rep.Valid),
		attribute.Int(AttrErrorCount, rep.ErrorCount),
		attribute.Int(AttrWarningCount, rep.WarningCount),
	)
}

// SetRuleAttribute names the rule a span covers.
func SetRuleAttribute(span trace.Span, rule string) {
	span.SetAttributes(attribute.String(AttrRule, rule))
}

// SetRequestIDAttribute tags a span with the server request id.
func SetRequestIDAttribute(span trace.Span, requestID string) {
	span.SetAttributes(attribute.String(AttrRequestID, requestID))
}
