package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/repository"
	"go.uber.org/zap"
)

const defaultContext = "computer"

// Service handles task business logic.
type Service struct {
	tasks      Repository
	projects   ProjectResolver
	index      ProjectIndex
	ids        IDAllocator
	changes    ChangeStarter
	activities ActivityLogger
	logger     *zap.Logger
}

// NewService creates a new task service.
func NewService(
	tasks Repository,
	projects ProjectResolver,
	index ProjectIndex,
	ids IDAllocator,
	changes ChangeStarter,
	activities ActivityLogger,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tasks:      tasks,
		projects:   projects,
		index:      index,
		ids:        ids,
		changes:    changes,
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest describes a task creation request. An empty ProjectID means
// the active project.
type CreateRequest struct {
	Title     string
	ProjectID string
	Status    Status
	Energy    Energy
	Due       *time.Time
	Context   string
	Tags      []string
	Notes     string
}

// Create writes a new task record and links it from the project index.
func (s *Service) Create(ctx context.Context, req CreateRequest) (_ *Task, _ *change.Set, err error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, nil, err
	}

	proj, err := s.resolveProject(ctx, req.ProjectID)
	if err != nil {
		return nil, nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusInbox
	}
	energy := req.Energy
	if energy == "" {
		energy = EnergyMedium
	}
	taskContext := req.Context
	if taskContext == "" {
		taskContext = defaultContext
	}

	id, err := s.ids.Reserve(ctx, ident.PrefixTask)
	if err != nil {
		return nil, nil, fmt.Errorf("allocating task id: %w", err)
	}

	now := time.Now()
	t := &Task{
		ID:         id,
		ProjectID:  proj.ID,
		Title:      strings.TrimSpace(req.Title),
		Status:     status,
		Energy:     energy,
		Due:        req.Due,
		Context:    taskContext,
		Tags:       dedupe(req.Tags),
		Notes:      req.Notes,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	cs := s.changes.Begin(fmt.Sprintf("Add task: %s - %s", t.ID, t.Title))
	defer func() {
		if err != nil {
			err = cs.Abort(err)
		}
	}()
	if err := s.tasks.Create(ctx, proj, t, cs); err != nil {
		return nil, nil, fmt.Errorf("creating task: %w", err)
	}

	added, err := s.index.AddTaskRef(ctx, proj, project.TaskRef{
		ID:     t.ID,
		Title:  t.Title,
		Status: string(t.Status),
	}, cs)
	if err != nil {
		return nil, nil, fmt.Errorf("linking task from project index: %w", err)
	}
	if !added {
		s.logger.Debug("task already listed in project index", zap.String("task_id", t.ID))
	}

	if s.activities != nil {
		subject := t.ID
		if err := s.activities.LogActivity(ctx, &activity.ActivityEntry{
			ProjectID:    proj.ID,
			SubjectID:    &subject,
			ActivityType: activity.TypeTaskCreated,
			Summary:      fmt.Sprintf("created task %s", t.ID),
			ChangeID:     cs.ID,
		}); err != nil {
			s.logger.Warn("journal write failed", zap.Error(err))
		}
	}

	return t, cs, nil
}

// Get returns a task by ID.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	if _, ok := ident.Parse(ident.PrefixTask, id); !ok {
		return nil, fmt.Errorf("%w: %q", ErrTaskNotFound, id)
	}
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		return nil, fmt.Errorf("getting task: %w", err)
	}
	return t, nil
}

// List returns the tasks of projectID ordered by ID, or every task when
// projectID is empty.
func (s *Service) List(ctx context.Context, projectID string) ([]Task, error) {
	if projectID != "" {
		if _, err := s.projects.Get(ctx, projectID); err != nil {
			return nil, err
		}
	}
	return s.tasks.List(ctx, projectID)
}

func (s *Service) resolveProject(ctx context.Context, projectID string) (*project.Project, error) {
	if projectID == "" {
		active, err := s.projects.ActiveID(ctx)
		if err != nil {
			return nil, err
		}
		if active == "" {
			return nil, project.ErrNoActiveProject
		}
		projectID = active
	}
	return s.projects.Get(ctx, projectID)
}

func dedupe(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
