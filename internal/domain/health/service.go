package health

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/gtd/internal/domain/task"
	"go.uber.org/zap"
)

// Service gathers snapshots from the record store and runs the rules.
type Service struct {
	tasks    TaskLister
	projects StashLister
	logger   *zap.Logger
}

// NewService creates a new health service.
func NewService(tasks TaskLister, projects StashLister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{tasks: tasks, projects: projects, logger: logger}
}

// Check computes the alerts for the record set as of now.
func (s *Service) Check(ctx context.Context, now time.Time) ([]Alert, error) {
	tasks, stashes, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return Compute(now, taskSnapshots(tasks), stashes), nil
}

// Dashboard computes counts by status plus the alerts.
func (s *Service) Dashboard(ctx context.Context, now time.Time) (Dashboard, error) {
	tasks, stashes, err := s.snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	counts := make(map[task.Status]int, len(task.Statuses))
	for _, t := range tasks {
		counts[t.Status]++
	}
	return Dashboard{
		Counts: counts,
		Alerts: Compute(now, taskSnapshots(tasks), stashes),
	}, nil
}

func (s *Service) snapshot(ctx context.Context) ([]task.Task, []StashSnapshot, error) {
	tasks, err := s.tasks.List(ctx, "")
	if err != nil {
		return nil, nil, fmt.Errorf("listing tasks: %w", err)
	}

	entries, err := s.projects.ListStashed(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing stash index: %w", err)
	}

	stashes := make([]StashSnapshot, 0, len(entries))
	for _, e := range entries {
		title := e.ProjectID
		if proj, err := s.projects.Get(ctx, e.ProjectID); err == nil {
			title = proj.Title
		} else {
			s.logger.Debug("stash entry without readable project", zap.String("project_id", e.ProjectID), zap.Error(err))
		}
		stashes = append(stashes, StashSnapshot{
			ProjectID: e.ProjectID,
			Title:     title,
			Link:      fmt.Sprintf("[[%s|%s]]", e.Link, e.ProjectID),
			StashedAt: e.StashedAt,
		})
	}
	return tasks, stashes, nil
}

func taskSnapshots(tasks []task.Task) []TaskSnapshot {
	out := make([]TaskSnapshot, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskSnapshot{
			ID:         t.ID,
			Title:      t.Title,
			Status:     t.Status,
			Link:       fmt.Sprintf("[[%s|%s]]", strings.TrimSuffix(t.Path, ".md"), t.ID),
			ModifiedAt: t.ModifiedAt,
		})
	}
	return out
}
