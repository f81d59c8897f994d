package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrNoActiveProject indicates no project is active and none was given.
	ErrNoActiveProject = errors.New("no active project")
	// ErrNotActive indicates a stash of a project whose status is not active.
	ErrNotActive = errors.New("project is not active")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
)
