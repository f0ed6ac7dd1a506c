package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"flowgate-hq/bpmnlint/pkg/bpmn/codec"
	"flowgate-hq/bpmnlint/pkg/bpmn/model"
	"flowgate-hq/bpmnlint/pkg/bpmn/report"
	"flowgate-hq/bpmnlint/pkg/bpmn/validator"
	"flowgate-hq/bpmnlint/pkg/registry"
	"flowgate-hq/bpmnlint/pkg/telemetry/logging"
	"flowgate-hq/bpmnlint/pkg/telemetry/tracing"
)

// ValidateResponse is the body returned by POST /v1/validate.
type ValidateResponse struct {
	DiagramID string        `json:"diagram_id"`
	RequestID string        `json:"request_id,omitempty"`
	Report    report.Report `json:"report"`
}

// DiagramsResponse is the body returned by GET /v1/diagrams.
type DiagramsResponse struct {
	Diagrams []*registry.Entry `json:"diagrams"`
	Count    int               `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleValidate decodes the posted diagram, runs the rule battery, and
// returns the report. The diagram is recorded in the registry and the
// validation history when those are configured.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	start := time.Now()

	maxBody := s.config.Server.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 10 * 1024 * 1024
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "request body is empty")
		return
	}

	var diagram *model.Diagram
	if isYAMLContentType(r.Header.Get("Content-Type")) {
		diagram, err = codec.DecodeYAML(body)
	} else {
		diagram, err = codec.DecodeJSON(body)
	}
	if err != nil {
		if s.collector != nil {
			s.collector.RecordValidationFailure("http", "decode")
		}
		writeError(w, http.StatusBadRequest, "failed to decode diagram: "+err.Error())
		return
	}

	ctx = logging.WithDiagramID(ctx, diagram.ID)

	span := tracing.SpanFromContext(ctx)
	if s.tracer != nil && s.tracer.Enabled() {
		ctx, span = s.tracer.Start(ctx, "bpmnlint.validate")
		defer span.End()
		tracing.SetDiagramAttributes(span, diagram.ID, "http")
		tracing.SetRequestIDAttribute(span, GetRequestID(ctx))
	}

	rep, err := s.newValidator().Validate(diagram)
	duration := time.Since(start)
	if err != nil {
		if s.collector != nil {
			s.collector.RecordValidationFailure("http", "fatal")
		}
		if s.tracer != nil && s.tracer.Enabled() {
			tracing.SetError(span, err)
		}
		writeError(w, http.StatusUnprocessableEntity, "validation aborted: "+err.Error())
		return
	}

	if s.tracer != nil && s.tracer.Enabled() {
		tracing.SetReportAttributes(span, rep)
	}
	if s.collector != nil {
		s.collector.RecordValidation("http", rep, duration)
	}

	s.recordRun(ctx, diagram, "http", "", rep, duration)

	s.logger.InfoContext(ctx, "diagram validated",
		"diagram_id", diagram.ID,
		"valid", rep.Valid,
		"errors", rep.ErrorCount,
		"warnings", rep.WarningCount,
		"duration_ms", duration.Milliseconds(),
	)

	writeJSON(w, http.StatusOK, ValidateResponse{
		DiagramID: diagram.ID,
		RequestID: GetRequestID(ctx),
		Report:    rep,
	})
}

// handleDiagrams lists the tracked diagram registry.
func (s *Server) handleDiagrams(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.registry == nil {
		writeError(w, http.StatusServiceUnavailable, "diagram registry is not enabled")
		return
	}

	entries, err := s.registry.List(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "failed to list diagrams", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list diagrams")
		return
	}

	if s.collector != nil {
		s.collector.SetTrackedDiagrams(len(entries))
	}

	writeJSON(w, http.StatusOK, DiagramsResponse{Diagrams: entries, Count: len(entries)})
}

// newValidator builds a validator honoring the configured disabled
// rules.
func (s *Server) newValidator() *validator.Validator {
	v := validator.New()
	if len(s.config.Lint.DisabledRules) > 0 {
		v.Disable(s.config.Lint.DisabledRules...)
	}
	return v
}

// recordRun writes the validation outcome to history storage and the
// diagram registry.
func (s *Server) recordRun(ctx context.Context, diagram *model.Diagram, src, path string, rep report.Report, duration time.Duration) {
	if s.recorder != nil {
		s.recorder.Record(ctx, diagram.ID, src, path, rep, duration)
	}

	if s.registry != nil {
		elements := 0
		for _, n := range diagram.CountAllElements() {
			elements += n
		}
		entry := &registry.Entry{
			DiagramID:        diagram.ID,
			Name:             diagram.Name,
			Source:           src,
			Path:             path,
			Processes:        len(diagram.Processes),
			Elements:         elements,
			LastValid:        rep.Valid,
			LastErrorCount:   rep.ErrorCount,
			LastWarningCount: rep.WarningCount,
			LastValidatedAt:  time.Now().UTC(),
		}
		if err := s.registry.Upsert(ctx, entry); err != nil {
			s.logger.ErrorContext(ctx, "failed to update diagram registry",
				"diagram_id", diagram.ID, "error", err)
		}
	}
}

func isYAMLContentType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = contentType
	}
	mediaType = strings.ToLower(mediaType)
	return strings.HasSuffix(mediaType, "yaml") || strings.HasSuffix(mediaType, "yml")
}
