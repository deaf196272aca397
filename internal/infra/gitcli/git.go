// Package gitcli drives the external git command line tool. Long-running
// subcommands (fetch, checkout, merge) stream their stderr through a progress
// monitor; read-only repository facts (head, shallowness, dirtiness) are
// queried in-process through go-git.
package gitcli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

type Tool struct {
	bin string
}

func NewTool() *Tool {
	return &Tool{bin: "git"}
}

// Available reports whether the git binary can be located and executed.
// Everything except manifest generation depends on it, so callers fail fast.
func (t *Tool) Available() error {
	path, err := exec.LookPath(t.bin)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGitNotFound, err)
	}
	if err := exec.Command(path, "--version").Run(); err != nil {
		return fmt.Errorf("%w: %v", ErrGitNotFound, err)
	}
	return nil
}

// runQuiet executes a short git subcommand to completion, discarding stdout.
// On failure the trimmed stderr text becomes part of the error.
func (t *Tool) runQuiet(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, t.bin, args...)
	cmd.Dir = dir
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return fmt.Errorf("git %s: %w", args[0], err)
		}
		return fmt.Errorf("git %s: %s", args[0], detail)
	}
	return nil
}
