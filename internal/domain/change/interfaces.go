package change

import (
	"context"

	"github.com/rpggio/gtd/internal/domain/activity"
)

// Committer persists a set of changed paths under version control.
type Committer interface {
	Commit(ctx context.Context, paths []string, message string) error
}

// ActivityLogger journals publish outcomes.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}
