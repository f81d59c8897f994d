package change

import (
	"context"
	"fmt"

	"github.com/rpggio/gtd/internal/domain/activity"
	"go.uber.org/zap"
)

// Outcome describes what happened to a published change set.
type Outcome struct {
	Committed  bool
	RolledBack bool

	// Kept is set when the commit failed and the writes were left in place.
	Kept bool
}

// Publisher hands change sets to the commit collaborator and undoes them
// when the commit fails and rollback is enabled.
type Publisher struct {
	committer  Committer
	activities ActivityLogger
	rollback   bool
	logger     *zap.Logger
}

// NewPublisher creates a new publisher. activities may be nil.
func NewPublisher(committer Committer, activities ActivityLogger, rollbackOnFailure bool, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{
		committer:  committer,
		activities: activities,
		rollback:   rollbackOnFailure,
		logger:     logger,
	}
}

// Publish commits set. A failed commit is logged as a warning; the returned
// error wraps ErrCommitFailed either way so callers can tell the user.
func (p *Publisher) Publish(ctx context.Context, set *Set) (Outcome, error) {
	if set == nil || set.Empty() {
		return Outcome{}, nil
	}

	paths := set.Paths()
	err := p.committer.Commit(ctx, paths, set.Message)
	if err == nil {
		p.logger.Debug("change committed", zap.String("change_id", set.ID), zap.Strings("paths", paths))
		return Outcome{Committed: true}, nil
	}

	p.logger.Warn("commit failed",
		zap.String("change_id", set.ID),
		zap.String("message", set.Message),
		zap.Strings("paths", paths),
		zap.Error(err),
	)
	p.journal(ctx, set, activity.TypeCommitFailed, fmt.Sprintf("commit failed: %v", err))

	if !p.rollback {
		return Outcome{Kept: true}, fmt.Errorf("%w: %v", ErrCommitFailed, err)
	}

	if rbErr := set.Rollback(); rbErr != nil {
		p.logger.Error("rollback failed", zap.String("change_id", set.ID), zap.Error(rbErr))
		return Outcome{}, fmt.Errorf("%w: %v (rollback failed: %v)", ErrCommitFailed, err, rbErr)
	}
	p.journal(ctx, set, activity.TypeChangeRolledBack, fmt.Sprintf("rolled back %q", set.Message))

	return Outcome{RolledBack: true}, fmt.Errorf("%w: %v", ErrCommitFailed, err)
}

func (p *Publisher) journal(ctx context.Context, set *Set, kind activity.ActivityType, summary string) {
	if p.activities == nil {
		return
	}
	if err := p.activities.LogActivity(ctx, &activity.ActivityEntry{
		ActivityType: kind,
		ChangeID:     set.ID,
		Summary:      summary,
	}); err != nil {
		p.logger.Warn("journal write failed", zap.Error(err))
	}
}
