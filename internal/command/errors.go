package command

import (
	"errors"
	"fmt"

	"github.com/rpggio/gtd/internal/domain/aside"
	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/domain/someday"
	"github.com/rpggio/gtd/internal/domain/task"
	"github.com/rpggio/gtd/internal/repository"
)

var (
	// ErrUsage indicates missing or malformed command arguments.
	ErrUsage = errors.New("usage")
	// ErrUnknownCommand indicates a name outside the command set.
	ErrUnknownCommand = errors.New("unknown command")
)

// UserError is an error rendered for a person at a terminal.
type UserError struct {
	Code         string
	Message      string
	RecoveryHint string
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Line renders the error as a single output line.
func (e *UserError) Line() string {
	if e.RecoveryHint == "" {
		return "❌ " + e.Message
	}
	return fmt.Sprintf("❌ %s (%s)", e.Message, e.RecoveryHint)
}

// Describe maps domain errors to user facing errors. Errors it does not
// recognize keep their own text under the INTERNAL code.
func Describe(err error) *UserError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrUsage):
		return &UserError{Code: "USAGE", Message: err.Error()}
	case errors.Is(err, ErrUnknownCommand):
		return &UserError{Code: "UNKNOWN_COMMAND", Message: err.Error(), RecoveryHint: "Run gtd --help"}
	case errors.Is(err, project.ErrNoActiveProject):
		return &UserError{Code: "NO_ACTIVE_PROJECT", Message: "no active project", RecoveryHint: "Switch to a project or name one"}
	case errors.Is(err, project.ErrProjectNotFound):
		return &UserError{Code: "PROJECT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Check ID spelling"}
	case errors.Is(err, project.ErrNotActive):
		return &UserError{Code: "NOT_ACTIVE", Message: err.Error(), RecoveryHint: "Only active projects can be stashed"}
	case errors.Is(err, task.ErrTaskNotFound):
		return &UserError{Code: "TASK_NOT_FOUND", Message: err.Error(), RecoveryHint: "Check ID spelling"}
	case errors.Is(err, ident.ErrUnknownPrefix):
		return &UserError{Code: "UNKNOWN_PREFIX", Message: err.Error()}
	case errors.Is(err, repository.ErrMalformedRecord):
		return &UserError{Code: "MALFORMED_RECORD", Message: err.Error(), RecoveryHint: "Fix the record frontmatter"}
	case errors.Is(err, change.ErrCommitFailed):
		return &UserError{Code: "COMMIT_FAILED", Message: err.Error(), RecoveryHint: "Changes were rolled back"}
	case errors.Is(err, aside.ErrInvalidReply):
		return &UserError{Code: "INVALID_REPLY", Message: err.Error(), RecoveryHint: "Use one of the listed actions"}
	case errors.Is(err, task.ErrInvalidInput),
		errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, someday.ErrInvalidInput):
		return &UserError{Code: "INVALID_INPUT", Message: err.Error()}
	default:
		return &UserError{Code: "INTERNAL", Message: err.Error()}
	}
}
