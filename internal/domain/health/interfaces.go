package health

import (
	"context"

	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/domain/task"
)

// TaskLister lists every task record.
type TaskLister interface {
	List(ctx context.Context, projectID string) ([]task.Task, error)
}

// StashLister lists stash index entries.
type StashLister interface {
	ListStashed(ctx context.Context) ([]project.StashEntry, error)
	Get(ctx context.Context, id string) (*project.Project, error)
}
