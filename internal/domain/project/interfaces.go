package project

import (
	"context"

	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/ident"
)

// Repository provides persistence for projects and their index documents.
type Repository interface {
	Create(ctx context.Context, proj *Project, overview string, cs *change.Set) error
	Get(ctx context.Context, id string) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, proj *Project, cs *change.Set) error
	AddTaskRef(ctx context.Context, proj *Project, ref TaskRef, cs *change.Set) (bool, error)
}

// PointerStore holds the active project pointer. An empty id means none.
type PointerStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, id string, cs *change.Set) error
}

// StashIndex keeps one reference record per stashed project.
type StashIndex interface {
	Put(ctx context.Context, proj *Project, cs *change.Set) error
	Remove(ctx context.Context, projectID string, cs *change.Set) error
	List(ctx context.Context) ([]StashEntry, error)
}

// IDAllocator reserves project identifiers.
type IDAllocator interface {
	Reserve(ctx context.Context, prefix ident.Prefix) (string, error)
}

// ActivityLogger journals project mutations.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}

// ChangeStarter opens a change set against the workspace.
type ChangeStarter interface {
	Begin(message string) *change.Set
}
