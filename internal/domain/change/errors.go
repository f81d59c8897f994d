package change

import "errors"

var (
	// ErrCommitFailed indicates the version-control collaborator rejected a change set.
	ErrCommitFailed = errors.New("commit failed")
	// ErrOutsideRoot indicates a tracked path escapes the workspace root.
	ErrOutsideRoot = errors.New("path outside workspace root")
)
