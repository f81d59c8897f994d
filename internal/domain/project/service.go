package project

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/repository"
	"go.uber.org/zap"
)

// Service handles project lifecycle and the active project pointer.
type Service struct {
	repo       Repository
	pointer    PointerStore
	stash      StashIndex
	ids        IDAllocator
	changes    ChangeStarter
	activities ActivityLogger
	logger     *zap.Logger
}

// NewService creates a new project service.
func NewService(
	repo Repository,
	pointer PointerStore,
	stash StashIndex,
	ids IDAllocator,
	changes ChangeStarter,
	activities ActivityLogger,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:       repo,
		pointer:    pointer,
		stash:      stash,
		ids:        ids,
		changes:    changes,
		activities: activities,
		logger:     logger,
	}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Title    string
	Area     string
	Status   Status
	Tags     []string
	Overview string
}

// Create allocates an identifier and writes the project's index document.
func (s *Service) Create(ctx context.Context, req CreateRequest) (_ *Project, _ *change.Set, err error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, nil, ErrInvalidInput
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}
	if !status.Valid() {
		return nil, nil, fmt.Errorf("%w: status %q", ErrInvalidInput, status)
	}

	tags := req.Tags
	if len(tags) == 0 {
		tags = []string{"project"}
	}

	id, err := s.ids.Reserve(ctx, ident.PrefixProject)
	if err != nil {
		return nil, nil, fmt.Errorf("allocating project id: %w", err)
	}

	slug := Slugify(req.Title)
	proj := &Project{
		ID:        id,
		Name:      slug,
		Title:     strings.TrimSpace(req.Title),
		Status:    status,
		Area:      req.Area,
		Stashed:   status == StatusStashed,
		Tags:      tags,
		CreatedAt: time.Now(),
		Folder:    id + "-" + slug,
	}

	cs := s.changes.Begin(fmt.Sprintf("Add project: %s - %s", proj.ID, proj.Title))
	defer func() {
		if err != nil {
			err = cs.Abort(err)
		}
	}()
	if err := s.repo.Create(ctx, proj, req.Overview, cs); err != nil {
		return nil, nil, fmt.Errorf("creating project: %w", err)
	}

	s.journal(ctx, proj.ID, activity.TypeProjectCreated, fmt.Sprintf("created project %s", proj.ID), cs)
	return proj, cs, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	if _, ok := ident.Parse(ident.PrefixProject, id); !ok {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, id)
	}
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// List returns every readable project ordered by ID.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// ListByStatus returns the projects carrying status.
func (s *Service) ListByStatus(ctx context.Context, status Status) ([]Project, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []Project
	for _, proj := range all {
		if proj.Status == status {
			out = append(out, proj)
		}
	}
	return out, nil
}

// ListStashed returns the stash index entries.
func (s *Service) ListStashed(ctx context.Context) ([]StashEntry, error) {
	return s.stash.List(ctx)
}

// ActiveID returns the active pointer value, empty when none is set.
func (s *Service) ActiveID(ctx context.Context) (string, error) {
	id, err := s.pointer.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("reading active pointer: %w", err)
	}
	return id, nil
}

// GetActive returns the active project, or nil when no project is active.
func (s *Service) GetActive(ctx context.Context) (*Project, error) {
	id, err := s.ActiveID(ctx)
	if err != nil || id == "" {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Switch makes id the active project, recalling it from the stash if needed.
func (s *Service) Switch(ctx context.Context, id string) (_ *Project, _ *change.Set, err error) {
	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	cs := s.changes.Begin(fmt.Sprintf("Switch to project: %s", proj.ID))
	defer func() {
		if err != nil {
			err = cs.Abort(err)
		}
	}()

	if proj.Status != StatusActive || proj.Stashed {
		proj.Status = StatusActive
		proj.Stashed = false
		if err := s.repo.Update(ctx, proj, cs); err != nil {
			return nil, nil, fmt.Errorf("activating project: %w", err)
		}
	}

	if err := s.stash.Remove(ctx, proj.ID, cs); err != nil {
		return nil, nil, fmt.Errorf("removing stash entry: %w", err)
	}

	if err := s.pointer.Save(ctx, proj.ID, cs); err != nil {
		return nil, nil, fmt.Errorf("setting active pointer: %w", err)
	}

	s.logger.Info("switched project", zap.String("project_id", proj.ID))
	s.journal(ctx, proj.ID, activity.TypeProjectSwitched, fmt.Sprintf("switched to %s", proj.ID), cs)
	return proj, cs, nil
}

// Stash parks the active project and clears the pointer.
func (s *Service) Stash(ctx context.Context) (_ *Project, _ *change.Set, err error) {
	id, err := s.ActiveID(ctx)
	if err != nil {
		return nil, nil, err
	}
	if id == "" {
		return nil, nil, ErrNoActiveProject
	}

	proj, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if proj.Status != StatusActive {
		return nil, nil, fmt.Errorf("%w: %s is %s", ErrNotActive, proj.ID, proj.Status)
	}

	cs := s.changes.Begin(fmt.Sprintf("Stash project: %s", proj.ID))
	defer func() {
		if err != nil {
			err = cs.Abort(err)
		}
	}()

	proj.Status = StatusStashed
	proj.Stashed = true
	if err := s.repo.Update(ctx, proj, cs); err != nil {
		return nil, nil, fmt.Errorf("stashing project: %w", err)
	}

	if err := s.stash.Put(ctx, proj, cs); err != nil {
		return nil, nil, fmt.Errorf("writing stash entry: %w", err)
	}

	if err := s.pointer.Save(ctx, "", cs); err != nil {
		return nil, nil, fmt.Errorf("clearing active pointer: %w", err)
	}

	s.logger.Info("stashed project", zap.String("project_id", proj.ID))
	s.journal(ctx, proj.ID, activity.TypeProjectStashed, fmt.Sprintf("stashed %s", proj.ID), cs)
	return proj, cs, nil
}

func (s *Service) journal(ctx context.Context, projectID string, kind activity.ActivityType, summary string, cs *change.Set) {
	if s.activities == nil {
		return
	}
	entry := &activity.ActivityEntry{
		ProjectID:    projectID,
		ActivityType: kind,
		Summary:      summary,
	}
	if cs != nil {
		entry.ChangeID = cs.ID
	}
	if err := s.activities.LogActivity(ctx, entry); err != nil {
		s.logger.Warn("journal write failed", zap.Error(err))
	}
}
