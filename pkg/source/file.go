package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileSource enumerates diagram files from a list of local paths. Each
// configured path may be a single file, a directory (walked
// recursively), or a glob pattern.
type FileSource struct {
	paths []string
}

// NewFileSource creates a file source over the given paths. An empty
// list scans the current directory.
func NewFileSource(paths []string) *FileSource {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	return &FileSource{paths: paths}
}

// List returns all diagram files under the configured paths, sorted and
// deduplicated. Hidden files and directories are skipped.
func (s *FileSource) List(ctx context.Context) ([]Item, error) {
	seen := make(map[string]bool)
	var items []Item

	for _, path := range s.paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		found, err := s.expand(path)
		if err != nil {
			return nil, err
		}
		for _, item := range found {
			if !seen[item.Path] {
				seen[item.Path] = true
				items = append(items, item)
			}
		}
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

// expand resolves one configured path into diagram items.
func (s *FileSource) expand(path string) ([]Item, error) {
	// Glob patterns never stat cleanly, so check for meta characters first.
	if strings.ContainsAny(path, "*?[") {
		return s.expandGlob(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %q: %w", path, err)
	}

	if info.IsDir() {
		return s.walkDirectory(path)
	}

	if !isDiagramFile(path) {
		return nil, fmt.Errorf("unsupported diagram file %q", path)
	}
	return []Item{{Path: path, RelPath: filepath.Base(path), Origin: "file"}}, nil
}

func (s *FileSource) expandGlob(pattern string) ([]Item, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}

	var items []Item
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, err
		}
		if info.IsDir() || !isDiagramFile(match) {
			continue
		}
		items = append(items, Item{Path: match, RelPath: filepath.Base(match), Origin: "file"})
	}
	return items, nil
}

func (s *FileSource) walkDirectory(root string) ([]Item, error) {
	var items []Item

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		base := filepath.Base(path)
		if strings.HasPrefix(base, ".") && path != root {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.IsDir() || !isDiagramFile(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = base
		}
		items = append(items, Item{Path: path, RelPath: rel, Origin: "file"})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", root, err)
	}

	return items, nil
}

// Close is a no-op for the file source.
func (s *FileSource) Close() error {
	return nil
}
