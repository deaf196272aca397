package gitcli

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

func headRevision(path string) (string, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return "", fmt.Errorf("open git repo: %w", err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("read HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// headIsBranch reports whether HEAD points at a local branch. Tags and
// detached commits resolve to a hash reference instead.
func headIsBranch(path string) (bool, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return false, fmt.Errorf("open git repo: %w", err)
	}
	ref, err := repo.Head()
	if err != nil {
		return false, fmt.Errorf("read HEAD: %w", err)
	}
	return ref.Name().IsBranch(), nil
}

// isShallow queries the repository's shallow roots. Queried on every sync
// rather than cached, since a previous run may have unshallowed the clone.
func isShallow(path string) (bool, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return false, fmt.Errorf("open git repo: %w", err)
	}
	roots, err := repo.Storer.Shallow()
	if err != nil {
		return false, fmt.Errorf("read shallow roots: %w", err)
	}
	return len(roots) > 0, nil
}

// hasLocalModifications reports whether any tracked file is modified.
// Untracked files never count.
func hasLocalModifications(path string) (bool, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return false, fmt.Errorf("open git repo: %w", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("open worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("read worktree status: %w", err)
	}
	for _, file := range status {
		if file.Staging == git.Untracked || file.Worktree == git.Untracked {
			continue
		}
		if file.Staging != git.Unmodified || file.Worktree != git.Unmodified {
			return true, nil
		}
	}
	return false, nil
}
