package logging

import (
	"context"
)

// Context keys for common log fields.
type contextKey string

const (
	// RequestIDKey is the context key for request IDs.
	RequestIDKey contextKey = "request_id"

	// DiagramIDKey is the context key for diagram identifiers.
	DiagramIDKey contextKey = "diagram_id"

	// SourceKey is the context key for diagram source paths.
	SourceKey contextKey = "source"

	// RuleKey is the context key for rule group names.
	RuleKey contextKey = "rule"
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithDiagramID adds a diagram identifier to the context.
func WithDiagramID(ctx context.Context, diagramID string) context.Context {
	return context.WithValue(ctx, DiagramIDKey, diagramID)
}

// GetDiagramID retrieves the diagram identifier from the context.
func GetDiagramID(ctx context.Context) string {
	if diagramID, ok := ctx.Value(DiagramIDKey).(string); ok {
		return diagramID
	}
	return ""
}

// WithSource adds a diagram source path to the context.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, SourceKey, source)
}

// GetSource retrieves the diagram source path from the context.
func GetSource(ctx context.Context) string {
	if source, ok := ctx.Value(SourceKey).(string); ok {
		return source
	}
	return ""
}

// WithRule adds a rule group name to the context.
func WithRule(ctx context.Context, rule string) context.Context {
	return context.WithValue(ctx, RuleKey, rule)
}

// GetRule retrieves the rule group name from the context.
func GetRule(ctx context.Context) string {
	if rule, ok := ctx.Value(RuleKey).(string); ok {
		return rule
	}
	return ""
}

// extractContextFields extracts common fields from context for logging.
// Returns a slice of key-value pairs suitable for logger.With().
func extractContextFields(ctx context.Context) []any {
	var fields []any

	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if diagramID := GetDiagramID(ctx); diagramID != "" {
		fields = append(fields, "diagram_id", diagramID)
	}
	if source := GetSource(ctx); source != "" {
		fields = append(fields, "source", source)
	}
	if rule := GetRule(ctx); rule != "" {
		fields = append(fields, "rule", rule)
	}

	return fields
}
