package task_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/domain/task"
	"github.com/rpggio/gtd/internal/repository"
	"github.com/rpggio/gtd/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type deps struct {
	tasks    *mocks.TaskRepository
	projects *mocks.ProjectResolver
	index    *mocks.ProjectRepository
	ids      *mocks.IDAllocator
	changes  *mocks.ChangeStarter
	journal  *mocks.ActivityLogger
	svc      *task.Service
}

func newDeps() *deps {
	d := &deps{
		tasks:    &mocks.TaskRepository{},
		projects: &mocks.ProjectResolver{},
		index:    &mocks.ProjectRepository{},
		ids:      &mocks.IDAllocator{},
		changes:  &mocks.ChangeStarter{},
		journal:  &mocks.ActivityLogger{},
	}
	d.svc = task.NewService(d.tasks, d.projects, d.index, d.ids, d.changes, d.journal, nil)
	return d
}

func TestTaskService_CreateInActiveProject(t *testing.T) {
	ctx := context.Background()
	d := newDeps()
	proj := &project.Project{ID: "P001", Title: "Launch", Status: project.StatusActive, Folder: "P001-launch"}
	cs := change.NewSet(t.TempDir(), "Add task: K001 - Write copy")

	d.projects.On("ActiveID", ctx).Return("P001", nil)
	d.projects.On("Get", ctx, "P001").Return(proj, nil)
	d.ids.On("Reserve", ctx, ident.PrefixTask).Return("K001", nil)
	d.changes.On("Begin", "Add task: K001 - Write copy").Return(cs)
	d.tasks.On("Create", ctx, proj, mock.MatchedBy(func(tk *task.Task) bool {
		return tk.ID == "K001" &&
			tk.ProjectID == "P001" &&
			tk.Status == task.StatusInbox &&
			tk.Energy == task.EnergyMedium &&
			tk.Context == "computer"
	}), cs).Return(nil)
	d.index.On("AddTaskRef", ctx, proj, project.TaskRef{ID: "K001", Title: "Write copy", Status: "inbox"}, cs).Return(true, nil)
	d.journal.On("LogActivity", ctx, mock.MatchedBy(func(e *activity.ActivityEntry) bool {
		return e.ActivityType == activity.TypeTaskCreated && *e.SubjectID == "K001" && e.ChangeID == cs.ID
	})).Return(nil)

	tk, got, err := d.svc.Create(ctx, task.CreateRequest{Title: "Write copy", Tags: []string{"a", "a", " ", "b"}})
	require.NoError(t, err)
	require.Same(t, cs, got)
	require.Equal(t, []string{"a", "b"}, tk.Tags)
	d.tasks.AssertExpectations(t)
	d.index.AssertExpectations(t)
	d.journal.AssertExpectations(t)
}

func TestTaskService_CreateWithoutActiveProject(t *testing.T) {
	ctx := context.Background()
	d := newDeps()
	d.projects.On("ActiveID", ctx).Return("", nil)

	_, _, err := d.svc.Create(ctx, task.CreateRequest{Title: "Orphan"})
	require.True(t, errors.Is(err, project.ErrNoActiveProject))
	d.ids.AssertNotCalled(t, "Reserve", mock.Anything, mock.Anything)
	d.tasks.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskService_CreateInUnknownProject(t *testing.T) {
	ctx := context.Background()
	d := newDeps()
	d.projects.On("Get", ctx, "P404").Return(nil, project.ErrProjectNotFound)

	_, _, err := d.svc.Create(ctx, task.CreateRequest{Title: "Lost", ProjectID: "P404"})
	require.True(t, errors.Is(err, project.ErrProjectNotFound))
	d.projects.AssertNotCalled(t, "ActiveID", mock.Anything)
}

func TestTaskService_CreateExplicitFields(t *testing.T) {
	ctx := context.Background()
	d := newDeps()
	proj := &project.Project{ID: "P002", Folder: "P002-x"}
	cs := change.NewSet(t.TempDir(), "x")

	d.projects.On("Get", ctx, "P002").Return(proj, nil)
	d.ids.On("Reserve", ctx, ident.PrefixTask).Return("K010", nil)
	d.changes.On("Begin", mock.Anything).Return(cs)
	d.tasks.On("Create", ctx, proj, mock.MatchedBy(func(tk *task.Task) bool {
		return tk.Status == task.StatusLater && tk.Energy == task.EnergyLow && tk.Context == "phone"
	}), cs).Return(nil)
	d.index.On("AddTaskRef", ctx, proj, mock.Anything, cs).Return(false, nil)
	d.journal.On("LogActivity", ctx, mock.Anything).Return(nil)

	tk, _, err := d.svc.Create(ctx, task.CreateRequest{
		Title:     "Call",
		ProjectID: "P002",
		Status:    task.StatusLater,
		Energy:    task.EnergyLow,
		Context:   "phone",
	})
	require.NoError(t, err)
	require.Equal(t, "K010", tk.ID)
}

func TestTaskService_CreateRollsBackWhenIndexLinkFails(t *testing.T) {
	ctx := context.Background()
	d := newDeps()
	root := t.TempDir()
	proj := &project.Project{ID: "P001", Folder: "P001-launch"}
	cs := change.NewSet(root, "Add task: K001 - Write copy")
	record := filepath.Join(root, "projects", "P001-launch", "tasks", "K001-write-copy.md")

	d.projects.On("Get", ctx, "P001").Return(proj, nil)
	d.ids.On("Reserve", ctx, ident.PrefixTask).Return("K001", nil)
	d.changes.On("Begin", mock.Anything).Return(cs)
	d.tasks.On("Create", ctx, proj, mock.Anything, cs).Run(func(mock.Arguments) {
		require.NoError(t, cs.MkdirAll(filepath.Dir(record)))
		require.NoError(t, cs.Track(record))
		require.NoError(t, os.WriteFile(record, []byte("---\nid: K001\n---\n"), 0o644))
	}).Return(nil)
	d.index.On("AddTaskRef", ctx, proj, mock.Anything, cs).Return(false, errors.New("index unreadable"))

	_, got, err := d.svc.Create(ctx, task.CreateRequest{Title: "Write copy", ProjectID: "P001"})
	require.ErrorContains(t, err, "index unreadable")
	require.Nil(t, got)

	_, statErr := os.Stat(record)
	require.True(t, errors.Is(statErr, os.ErrNotExist))
	_, statErr = os.Stat(filepath.Join(root, "projects"))
	require.True(t, errors.Is(statErr, os.ErrNotExist))
	d.journal.AssertNotCalled(t, "LogActivity", mock.Anything, mock.Anything)
}

func TestTaskService_CreateValidation(t *testing.T) {
	d := newDeps()
	ctx := context.Background()

	_, _, err := d.svc.Create(ctx, task.CreateRequest{Title: ""})
	require.True(t, errors.Is(err, task.ErrInvalidInput))

	_, _, err = d.svc.Create(ctx, task.CreateRequest{Title: "x", Status: "someday"})
	require.True(t, errors.Is(err, task.ErrInvalidInput))

	_, _, err = d.svc.Create(ctx, task.CreateRequest{Title: "x", Energy: "extreme"})
	require.True(t, errors.Is(err, task.ErrInvalidInput))
}

func TestTaskService_Get(t *testing.T) {
	ctx := context.Background()
	d := newDeps()
	d.tasks.On("Get", ctx, "K001").Return(&task.Task{ID: "K001"}, nil)
	d.tasks.On("Get", ctx, "K002").Return(nil, repository.ErrNotFound)

	tk, err := d.svc.Get(ctx, "K001")
	require.NoError(t, err)
	require.Equal(t, "K001", tk.ID)

	_, err = d.svc.Get(ctx, "K002")
	require.True(t, errors.Is(err, task.ErrTaskNotFound))

	_, err = d.svc.Get(ctx, "P001")
	require.True(t, errors.Is(err, task.ErrTaskNotFound))
}

func TestTaskService_ListChecksProject(t *testing.T) {
	ctx := context.Background()
	d := newDeps()
	d.projects.On("Get", ctx, "P404").Return(nil, project.ErrProjectNotFound)
	d.tasks.On("List", ctx, "").Return([]task.Task{{ID: "K001"}, {ID: "K002"}}, nil)

	_, err := d.svc.List(ctx, "P404")
	require.True(t, errors.Is(err, project.ErrProjectNotFound))

	all, err := d.svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}
