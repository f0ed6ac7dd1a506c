package history

import (
	"context"
	"time"
)

// Record captures the outcome of a single validation run. Records are
// immutable once stored and form the audit trail behind the history CLI
// and the /v1/diagrams endpoint.
type Record struct {
	// Identity
	ID        string `json:"id"` // UUID v4
	DiagramID string `json:"diagram_id"`

	// Origin of the diagram
	Source string `json:"source"` // "file", "http", "git"
	Path   string `json:"path,omitempty"`

	// Outcome
	Valid        bool            `json:"valid"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	Findings     []FindingRecord `json:"findings,omitempty"`

	// Timing
	Duration    time.Duration `json:"duration_ms"`
	ValidatedAt time.Time     `json:"validated_at"`
	RecordedAt  time.Time     `json:"recorded_at"`
}

// FindingRecord is the stored form of a single finding.
type FindingRecord struct {
	Severity   string   `json:"severity"`
	Code       string   `json:"code"`
	Rule       string   `json:"rule"`
	Message    string   `json:"message"`
	ElementIDs []string `json:"element_ids,omitempty"`
}

// Query defines filter parameters for querying history records.
type Query struct {
	// Time range on ValidatedAt, both bounds inclusive.
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// Filters
	DiagramID string `json:"diagram_id,omitempty"`
	Source    string `json:"source,omitempty"`
	Status    string `json:"status,omitempty"` // "valid", "invalid"

	// Pagination
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`

	// Sorting
	SortBy    string `json:"sort_by,omitempty"`    // "validated_at", "errors", "warnings"
	SortOrder string `json:"sort_order,omitempty"` // "asc", "desc"
}

// Storage defines the interface for history storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a history record.
	Store(ctx context.Context, record *Record) error

	// Query retrieves records matching the query filters.
	// Returns an empty slice if no records match.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the query filters and returns
	// the number deleted. Used for retention enforcement.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Ping verifies the backend is reachable. Wired into readiness checks.
	Ping(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}
