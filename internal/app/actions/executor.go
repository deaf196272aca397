// Package actions executes a project's post-checkout file actions.
package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/osvaldoandrade/treesync/internal/domain"
)

type Executor struct{}

func NewExecutor() *Executor {
	return &Executor{}
}

// Run executes the project's actions in declared order. NormalizeActions
// guarantees delete-project sorts last, so file actions always see a live
// checkout.
func (e *Executor) Run(ctx context.Context, manifestDir string, project domain.Project) error {
	for _, action := range project.Actions {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch action.Kind {
		case domain.ActionLinkFile:
			err = e.linkFile(manifestDir, project, action)
		case domain.ActionCopyFile:
			err = e.copyFile(manifestDir, project, action)
		case domain.ActionCopyDir:
			err = e.copyDir(manifestDir, project, action)
		case domain.ActionDeleteProject:
			err = e.deleteProject(manifestDir, project)
		default:
			err = fmt.Errorf("unknown action %q", action.Kind)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) linkFile(manifestDir string, project domain.Project, action domain.Action) error {
	src := filepath.Join(manifestDir, project.Path, action.Src)
	dest := filepath.Join(manifestDir, action.Dest)

	if err := prepareDestination(dest); err != nil {
		return err
	}
	if err := os.Symlink(relativeForSymlink(src, dest), dest); err != nil {
		return fmt.Errorf("link %s to %s: %w", src, dest, err)
	}
	return nil
}

func (e *Executor) copyFile(manifestDir string, project domain.Project, action domain.Action) error {
	src := filepath.Join(manifestDir, project.Path, action.Src)
	dest := filepath.Join(manifestDir, action.Dest)

	if err := prepareDestination(dest); err != nil {
		return err
	}
	if err := copyRegularFile(src, dest); err != nil {
		return fmt.Errorf("copy %s to %s: %w", src, dest, err)
	}
	return nil
}

func (e *Executor) copyDir(manifestDir string, project domain.Project, action domain.Action) error {
	src := filepath.Join(manifestDir, project.Path, action.Src)
	dest := filepath.Join(manifestDir, action.Dest)

	if err := prepareDestination(dest); err != nil {
		return err
	}
	err := filepath.WalkDir(src, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if entry.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyRegularFile(path, target)
	})
	if err != nil {
		return fmt.Errorf("copy directory %s to %s: %w", src, dest, err)
	}
	return nil
}

func (e *Executor) deleteProject(manifestDir string, project domain.Project) error {
	dest := filepath.Join(manifestDir, project.Path)
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("remove directory %s: %w", dest, err)
	}
	return nil
}

// prepareDestination clears whatever sits at dest (file, symlink or
// directory, without following links) and creates missing parents.
func prepareDestination(dest string) error {
	info, err := os.Lstat(dest)
	switch {
	case err == nil:
		if info.IsDir() {
			if err := os.RemoveAll(dest); err != nil {
				return fmt.Errorf("remove directory %s: %w", dest, err)
			}
		} else if err := os.Remove(dest); err != nil {
			return fmt.Errorf("remove %s: %w", dest, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat %s: %w", dest, err)
	}

	parent := filepath.Dir(dest)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create parent directory %s: %w", parent, err)
	}
	return nil
}

// relativeForSymlink returns the link target for src as seen from dest's
// directory, so the workspace stays relocatable.
func relativeForSymlink(src, dest string) string {
	rel, err := filepath.Rel(filepath.Dir(dest), filepath.Dir(src))
	if err != nil {
		return src
	}
	return filepath.Join(rel, filepath.Base(src))
}

func copyRegularFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
