package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"flowgate-hq/bpmnlint/pkg/config"
)

// GitSource loads diagram files from a git repository. The repository
// is cloned into a local working directory on first use and pulled on
// subsequent polls.
type GitSource struct {
	config    *config.GitSourceConfig
	localPath string

	mu   sync.RWMutex
	repo *gogit.Repository
}

const defaultGitTimeout = 60 * time.Second

// NewGitSource creates a git-backed diagram source.
func NewGitSource(cfg *config.GitSourceConfig) (*GitSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("git source config cannot be nil")
	}
	if cfg.Repo == "" {
		return nil, fmt.Errorf("git source repo cannot be empty")
	}
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	if cfg.Path == "" {
		cfg.Path = "."
	}

	localPath := filepath.Join(os.TempDir(), "bpmnlint-diagrams", sanitizeRepoName(cfg.Repo))

	return &GitSource{
		config:    cfg,
		localPath: localPath,
	}, nil
}

// List clones the repository if needed, pulls the latest changes, and
// returns the diagram files found under the configured path.
func (g *GitSource) List(ctx context.Context) ([]Item, error) {
	if err := g.ensureCloned(ctx); err != nil {
		return nil, err
	}
	if err := g.Pull(ctx); err != nil {
		return nil, err
	}
	return g.listFiles()
}

// Pull fetches the latest changes from the remote.
func (g *GitSource) Pull(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.repo == nil {
		return fmt.Errorf("repository not initialized")
	}

	worktree, err := g.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to get worktree: %w", err)
	}

	pullCtx, cancel := context.WithTimeout(ctx, defaultGitTimeout)
	defer cancel()

	err = worktree.PullContext(pullCtx, &gogit.PullOptions{
		RemoteName:    "origin",
		ReferenceName: plumbing.NewBranchReferenceName(g.config.Branch),
	})
	if err != nil && err != gogit.NoErrAlreadyUpToDate {
		return fmt.Errorf("failed to pull repository: %w", err)
	}
	return nil
}

// CurrentCommit returns the SHA of the current HEAD commit.
func (g *GitSource) CurrentCommit() (string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.repo == nil {
		return "", fmt.Errorf("repository not initialized")
	}

	ref, err := g.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// Poll pulls the repository on the configured interval and calls
// onChange whenever HEAD moves. It blocks until the context is
// cancelled. A zero poll interval returns immediately.
func (g *GitSource) Poll(ctx context.Context, onChange func() error) error {
	if g.config.PollInterval <= 0 {
		return nil
	}

	if err := g.ensureCloned(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(g.config.PollInterval)
	defer ticker.Stop()

	last, err := g.CurrentCommit()
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := g.Pull(ctx); err != nil {
				continue
			}
			head, err := g.CurrentCommit()
			if err != nil || head == last {
				continue
			}
			last = head
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}

// Close removes the local clone.
func (g *GitSource) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.repo = nil
	return os.RemoveAll(g.localPath)
}

// LocalPath returns the working directory holding the clone.
func (g *GitSource) LocalPath() string {
	return g.localPath
}

func (g *GitSource) ensureCloned(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.repo != nil {
		return nil
	}

	// Reuse an existing clone from a prior run.
	if _, err := os.Stat(filepath.Join(g.localPath, ".git")); err == nil {
		repo, err := gogit.PlainOpen(g.localPath)
		if err != nil {
			return fmt.Errorf("failed to open existing repository: %w", err)
		}
		g.repo = repo
		return nil
	}

	if err := os.MkdirAll(g.localPath, 0755); err != nil {
		return fmt.Errorf("failed to create clone directory: %w", err)
	}

	cloneCtx, cancel := context.WithTimeout(ctx, defaultGitTimeout)
	defer cancel()

	repo, err := gogit.PlainCloneContext(cloneCtx, g.localPath, false, &gogit.CloneOptions{
		URL:           g.config.Repo,
		ReferenceName: plumbing.NewBranchReferenceName(g.config.Branch),
		SingleBranch:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to clone repository: %w", err)
	}

	g.repo = repo
	return nil
}

func (g *GitSource) listFiles() ([]Item, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	root := filepath.Join(g.localPath, g.config.Path)
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("diagram path does not exist in repository: %w", err)
	}

	var items []Item
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		name := info.Name()
		if strings.HasPrefix(name, ".") {
			if info.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !isDiagramFile(name) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = name
		}
		items = append(items, Item{
			Path:    path,
			RelPath: rel,
			Origin:  "git",
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk diagram directory: %w", err)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Path < items[j].Path })
	return items, nil
}

// sanitizeRepoName turns a clone URL into a filesystem-safe directory
// name so distinct repos get distinct working directories.
func sanitizeRepoName(repo string) string {
	name := strings.TrimSuffix(repo, ".git")
	replacer := strings.NewReplacer("://", "-", "/", "-", ":", "-", "@", "-", "\\", "-")
	name = replacer.Replace(name)
	if name == "" {
		name = "repo"
	}
	return name
}
