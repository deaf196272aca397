package gitcli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osvaldoandrade/treesync/internal/domain"
	"github.com/osvaldoandrade/treesync/internal/progress"
)

// Provider implements the version-control operations a sync pipeline needs
// for one project, rooted at the manifest directory.
type Provider struct {
	tool *Tool
}

func NewProvider() *Provider {
	return &Provider{tool: NewTool()}
}

func (p *Provider) Available() error {
	return p.tool.Available()
}

// Init establishes an empty local repository bound to the project's remote.
// A destination that already holds content is left untouched, so repeated
// syncs never re-clone.
func (p *Provider) Init(ctx context.Context, manifestDir string, project domain.Project, mode domain.Mode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repoPath := filepath.Join(manifestDir, project.Path)
	if entries, err := os.ReadDir(repoPath); err == nil && len(entries) > 0 {
		slog.Debug("destination not empty, skipping init", "project", project.Name, "path", repoPath)
		return nil
	}

	slog.Debug("initializing", "project", project.Name, "path", repoPath)

	if err := os.MkdirAll(repoPath, 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}
	if err := p.tool.runQuiet(ctx, repoPath, "init", "--quiet"); err != nil {
		return fmt.Errorf("initialize repository: %w", err)
	}
	url := project.RemoteURL(mode)
	if err := p.tool.runQuiet(ctx, repoPath, "remote", "add", "origin", url); err != nil {
		return fmt.Errorf("add remote %s: %w", url, err)
	}
	return nil
}

// Checkout fetches remote refs, checks out the project revision, guards
// against a dirty worktree and fast-forwards branch checkouts to their
// freshly fetched upstream.
func (p *Provider) Checkout(ctx context.Context, manifestDir string, project domain.Project, light, force bool, rep progress.Reporter) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repoPath := filepath.Join(manifestDir, project.Path)
	slog.Debug("checking out", "project", project.Name, "path", repoPath, "revision", project.Revision)

	fetchArgs, err := p.fetchArgs(repoPath, light, project.Revision)
	if err != nil {
		return err
	}
	if err := p.tool.runMonitored(ctx, repoPath, fetchArgs, rep, project.Path+" fetch"); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	var checkoutArgs []string
	switch {
	case force:
		checkoutArgs = []string{"checkout", project.Revision, "--progress", "--force"}
	case light:
		checkoutArgs = []string{"checkout", "FETCH_HEAD", "--progress"}
	default:
		checkoutArgs = []string{"checkout", project.Revision, "--progress"}
	}
	if err := p.tool.runMonitored(ctx, repoPath, checkoutArgs, rep, project.Path+" checkout"); err != nil {
		return fmt.Errorf("checkout: %w", err)
	}

	dirty, err := hasLocalModifications(repoPath)
	if err != nil {
		return fmt.Errorf("check worktree state: %w", err)
	}
	if dirty && !force {
		rep.Message(project.Path + " ERROR")
		return ErrDirtyWorktree
	}

	// Checking out a branch does not advance it to the fetched tip; only an
	// explicit fast-forward does, and it must never create a merge commit.
	onBranch, err := headIsBranch(repoPath)
	if err != nil {
		return fmt.Errorf("inspect HEAD: %w", err)
	}
	if onBranch {
		mergeArgs := []string{"merge", "--ff-only", "--progress"}
		if err := p.tool.runMonitored(ctx, repoPath, mergeArgs, rep, project.Path+" merge"); err != nil {
			return fmt.Errorf("fast-forward: %w", err)
		}
	}

	return nil
}

func (p *Provider) CurrentRevision(ctx context.Context, manifestDir string, project domain.Project) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repoPath := filepath.Join(manifestDir, project.Path)
	slog.Debug("reading commit id", "project", project.Name, "path", repoPath)
	return headRevision(repoPath)
}

func (p *Provider) IsModified(ctx context.Context, manifestDir string, project domain.Project) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	repoPath := filepath.Join(manifestDir, project.Path)
	return hasLocalModifications(repoPath)
}

func (p *Provider) fetchArgs(repoPath string, light bool, revision string) ([]string, error) {
	if light {
		return []string{"fetch", "--progress", "--tags", "--prune", "--depth", "1", "origin", revision}, nil
	}
	shallow, err := isShallow(repoPath)
	if err != nil {
		return nil, fmt.Errorf("check shallow state: %w", err)
	}
	if shallow {
		return []string{"fetch", "--progress", "--tags", "--prune", "--unshallow", "origin"}, nil
	}
	return []string{"fetch", "--progress", "--tags", "--prune", "origin"}, nil
}
