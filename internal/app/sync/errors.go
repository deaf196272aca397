package sync

import "errors"

var (
	ErrSyncFailed    = errors.New("failed to sync manifest")
	ErrLightCommitID = errors.New("lightweight sync requires a branch or tag revision")
)
