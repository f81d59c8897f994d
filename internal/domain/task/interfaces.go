package task

import (
	"context"

	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/domain/project"
)

// Repository provides persistence for task records.
type Repository interface {
	Create(ctx context.Context, proj *project.Project, t *Task, cs *change.Set) error
	Get(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, projectID string) ([]Task, error)
}

// ProjectResolver finds the destination project of a new task.
type ProjectResolver interface {
	Get(ctx context.Context, id string) (*project.Project, error)
	ActiveID(ctx context.Context) (string, error)
}

// ProjectIndex maintains the task list inside a project's index document.
type ProjectIndex interface {
	AddTaskRef(ctx context.Context, proj *project.Project, ref project.TaskRef, cs *change.Set) (bool, error)
}

// IDAllocator reserves task identifiers.
type IDAllocator interface {
	Reserve(ctx context.Context, prefix ident.Prefix) (string, error)
}

// ChangeStarter opens a change set against the workspace.
type ChangeStarter interface {
	Begin(message string) *change.Set
}

// ActivityLogger journals task mutations.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
