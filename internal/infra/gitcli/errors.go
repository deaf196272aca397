package gitcli

import "errors"

var (
	ErrGitNotFound   = errors.New("git is not installed or not on PATH")
	ErrDirtyWorktree = errors.New("repository is dirty, please commit or stash your changes")
)
