package registry

import (
	"context"
	"fmt"
	"time"

	"flowgate-hq/bpmnlint/pkg/config"
)

// Entry is the registry's view of one tracked diagram: where it came
// from and how its last validation went. GET /v1/diagrams serves these
// entries, and the re-lint scheduler walks them.
type Entry struct {
	// DiagramID is the diagram's declared id.
	DiagramID string `json:"diagram_id"`

	// Name is the diagram's display name, if it declares one.
	Name string `json:"name,omitempty"`

	// Source names where the diagram came from: "file", "http", "git".
	Source string `json:"source"`

	// Path locates the diagram within its source, when applicable.
	Path string `json:"path,omitempty"`

	// Processes and Elements summarize the diagram's size.
	Processes int `json:"processes"`
	Elements  int `json:"elements"`

	// Last validation outcome.
	LastValid        bool      `json:"last_valid"`
	LastErrorCount   int       `json:"last_error_count"`
	LastWarningCount int       `json:"last_warning_count"`
	LastValidatedAt  time.Time `json:"last_validated_at"`

	// FirstSeen is when the diagram was first registered.
	FirstSeen time.Time `json:"first_seen"`
}

// Backend defines the storage interface for the diagram registry.
// Implementations must be safe for concurrent use.
type Backend interface {
	// Upsert registers a diagram or updates its entry. FirstSeen is
	// preserved across updates.
	Upsert(ctx context.Context, entry *Entry) error

	// Get returns the entry for a diagram id, or nil if not tracked.
	Get(ctx context.Context, diagramID string) (*Entry, error)

	// List returns all entries ordered by diagram id.
	List(ctx context.Context) ([]*Entry, error)

	// Remove drops a diagram from the registry.
	Remove(ctx context.Context, diagramID string) error

	// Count returns the number of tracked diagrams.
	Count(ctx context.Context) (int64, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the backend.
	Close() error
}

// New creates a registry backend from the configuration.
func New(cfg *config.RegistryConfig) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("registry config is nil")
	}

	switch cfg.Backend {
	case "memory", "":
		return NewMemoryBackend(), nil
	case "sqlite":
		return NewSQLiteBackend(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown registry backend: %s", cfg.Backend)
	}
}
