// Package someday captures standalone ideas that belong to no project.
package someday

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/rpggio/gtd/internal/domain/change"
	"go.uber.org/zap"
)

// ErrInvalidInput indicates an empty someday item.
var ErrInvalidInput = errors.New("invalid someday input")

// Repository appends items to the someday list.
type Repository interface {
	Append(ctx context.Context, title string, day time.Time, cs *change.Set) error
}

// ChangeStarter opens a change set against the workspace.
type ChangeStarter interface {
	Begin(message string) *change.Set
}

// ActivityLogger journals someday additions.
type ActivityLogger interface {
	LogActivity(ctx context.Context, entry *activity.ActivityEntry) error
}

// Service handles the someday list.
type Service struct {
	repo       Repository
	changes    ChangeStarter
	activities ActivityLogger
	logger     *zap.Logger
}

// NewService creates a new someday service.
func NewService(repo Repository, changes ChangeStarter, activities ActivityLogger, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, changes: changes, activities: activities, logger: logger}
}

// Add appends title under today's heading.
func (s *Service) Add(ctx context.Context, title string, now time.Time) (_ *change.Set, err error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	cs := s.changes.Begin(fmt.Sprintf("Someday: %s", title))
	defer func() {
		if err != nil {
			err = cs.Abort(err)
		}
	}()
	if err := s.repo.Append(ctx, title, now, cs); err != nil {
		return nil, fmt.Errorf("appending someday item: %w", err)
	}

	if s.activities != nil {
		if err := s.activities.LogActivity(ctx, &activity.ActivityEntry{
			ActivityType: activity.TypeSomedayAdded,
			Summary:      title,
			ChangeID:     cs.ID,
		}); err != nil {
			s.logger.Warn("journal write failed", zap.Error(err))
		}
	}
	return cs, nil
}
