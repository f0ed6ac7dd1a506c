package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"flowgate-hq/bpmnlint/pkg/config"
)

// Item is one diagram file a source knows about.
type Item struct {
	// Path is the location on disk, usable with the codec.
	Path string

	// RelPath is the path relative to the source root, used as the
	// stable name across rescans.
	RelPath string

	// Origin names the source kind: "file" or "git".
	Origin string
}

// Source enumerates diagram files from somewhere: local paths or a git
// checkout. Decoding and validation happen elsewhere; a source only
// answers "which files exist right now".
type Source interface {
	// List returns the diagram files currently visible to the source.
	List(ctx context.Context) ([]Item, error)

	// Close releases any resources held by the source.
	Close() error
}

// New creates a source from the configuration. Git sources are cloned
// lazily on the first List call.
func New(cfg *config.SourceConfig) (Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	switch cfg.Mode {
	case "file", "":
		return NewFileSource(cfg.Paths), nil
	case "git":
		return NewGitSource(&cfg.Git)
	default:
		return nil, fmt.Errorf("unknown source mode: %s", cfg.Mode)
	}
}

// diagramExtensions are the file extensions scanned for diagrams.
var diagramExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

func isDiagramFile(name string) bool {
	return diagramExtensions[strings.ToLower(filepath.Ext(name))]
}
