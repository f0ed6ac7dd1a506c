// Package logging provides structured logging for bpmnlint.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON and text formats
//   - Context-aware logging with request and diagram metadata
//   - Configurable log levels (debug, info, warn, error)
//
// # Usage
//
//	// Create a logger
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	// Log structured data
//	logger.Info("diagram validated",
//	    "diagram_id", "approval_process",
//	    "errors", 0,
//	    "warnings", 1,
//	    "duration_ms", 12,
//	)
//
//	// Create context-aware logger
//	ctx := logging.WithRequestID(ctx, "req-123")
//	ctxLogger := logger.WithContext(ctx)
//	ctxLogger.Info("validating")  // Includes request_id automatically
//
// # Context Fields
//
// The package recognizes request_id, diagram_id, source, and rule context
// keys. The *Context logging methods and WithContext extract them
// automatically so call sites only pass domain fields.
package logging
