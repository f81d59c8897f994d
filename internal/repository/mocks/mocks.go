package mocks

import (
	"context"
	"time"

	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/domain/task"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project, overview string, cs *change.Set) error {
	args := m.Called(ctx, proj, overview, cs)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) Update(ctx context.Context, proj *project.Project, cs *change.Set) error {
	args := m.Called(ctx, proj, cs)
	return args.Error(0)
}

func (m *ProjectRepository) AddTaskRef(ctx context.Context, proj *project.Project, ref project.TaskRef, cs *change.Set) (bool, error) {
	args := m.Called(ctx, proj, ref, cs)
	return args.Bool(0), args.Error(1)
}

// PointerStore is a mock for project.PointerStore.
type PointerStore struct {
	mock.Mock
}

func (m *PointerStore) Load(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *PointerStore) Save(ctx context.Context, id string, cs *change.Set) error {
	args := m.Called(ctx, id, cs)
	return args.Error(0)
}

// StashIndex is a mock for project.StashIndex.
type StashIndex struct {
	mock.Mock
}

func (m *StashIndex) Put(ctx context.Context, proj *project.Project, cs *change.Set) error {
	args := m.Called(ctx, proj, cs)
	return args.Error(0)
}

func (m *StashIndex) Remove(ctx context.Context, projectID string, cs *change.Set) error {
	args := m.Called(ctx, projectID, cs)
	return args.Error(0)
}

func (m *StashIndex) List(ctx context.Context) ([]project.StashEntry, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.StashEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectResolver is a mock for task.ProjectResolver.
type ProjectResolver struct {
	mock.Mock
}

func (m *ProjectResolver) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectResolver) ActiveID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// StashLister is a mock for health.StashLister.
type StashLister struct {
	mock.Mock
}

func (m *StashLister) ListStashed(ctx context.Context) ([]project.StashEntry, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.StashEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *StashLister) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, proj *project.Project, t *task.Task, cs *change.Set) error {
	args := m.Called(ctx, proj, t, cs)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) List(ctx context.Context, projectID string) ([]task.Task, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// IDAllocator is a mock for the Reserve side of ident.Allocator.
type IDAllocator struct {
	mock.Mock
}

func (m *IDAllocator) Reserve(ctx context.Context, prefix ident.Prefix) (string, error) {
	args := m.Called(ctx, prefix)
	return args.String(0), args.Error(1)
}

// Scanner is a mock for ident.Scanner.
type Scanner struct {
	mock.Mock
}

func (m *Scanner) ScanIDs(ctx context.Context, prefix ident.Prefix) ([]string, error) {
	args := m.Called(ctx, prefix)
	if tokens, ok := args.Get(0).([]string); ok {
		return tokens, args.Error(1)
	}
	return nil, args.Error(1)
}

// CounterRepository is a mock for ident.CounterRepository.
type CounterRepository struct {
	mock.Mock
}

func (m *CounterRepository) Current(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CounterRepository) Advance(ctx context.Context, prefix string, floor int64) (int64, error) {
	args := m.Called(ctx, prefix, floor)
	return args.Get(0).(int64), args.Error(1)
}

// ChangeStarter is a mock for the Begin side of fsstore.Workspace.
type ChangeStarter struct {
	mock.Mock
}

func (m *ChangeStarter) Begin(message string) *change.Set {
	args := m.Called(message)
	if cs, ok := args.Get(0).(*change.Set); ok {
		return cs
	}
	return nil
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityLogger is a mock for the journal side of activity.Service.
type ActivityLogger struct {
	mock.Mock
}

func (m *ActivityLogger) LogActivity(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// Committer is a mock for change.Committer.
type Committer struct {
	mock.Mock
}

func (m *Committer) Commit(ctx context.Context, paths []string, message string) error {
	args := m.Called(ctx, paths, message)
	return args.Error(0)
}

// SomedayRepository is a mock for someday.Repository.
type SomedayRepository struct {
	mock.Mock
}

func (m *SomedayRepository) Append(ctx context.Context, title string, day time.Time, cs *change.Set) error {
	args := m.Called(ctx, title, day, cs)
	return args.Error(0)
}
