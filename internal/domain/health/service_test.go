package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/gtd/internal/domain/health"
	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/domain/task"
	"github.com/rpggio/gtd/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestHealthService_Check(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	stash := &mocks.StashLister{}

	tasks.On("List", ctx, "").Return([]task.Task{
		{ID: "K001", Title: "Reply", Status: task.StatusWaiting, Path: "projects/P001-x/tasks/K001-reply.md", ModifiedAt: daysAgo(5)},
		{ID: "K002", Title: "Fresh", Status: task.StatusNext, Path: "projects/P001-x/tasks/K002-fresh.md", ModifiedAt: daysAgo(1)},
	}, nil)
	stash.On("ListStashed", ctx).Return([]project.StashEntry{
		{ProjectID: "P002", Link: "P002-parked/README", StashedAt: daysAgo(10)},
		{ProjectID: "P009", Link: "P009-gone/README", StashedAt: daysAgo(10)},
	}, nil)
	stash.On("Get", ctx, "P002").Return(&project.Project{ID: "P002", Title: "Parked"}, nil)
	stash.On("Get", ctx, "P009").Return(nil, project.ErrProjectNotFound)

	svc := health.NewService(tasks, stash, nil)
	alerts, err := svc.Check(ctx, now)
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	require.Equal(t, "[[projects/P001-x/tasks/K001-reply|K001]]", alerts[0].Link)
	require.Equal(t, "[[P002-parked/README|P002]]", alerts[1].Link)
	require.Equal(t, "Parked", alerts[1].Title)
	require.Equal(t, "P009", alerts[2].Title)
}

func TestHealthService_Dashboard(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	stash := &mocks.StashLister{}
	tasks.On("List", ctx, "").Return([]task.Task{
		{ID: "K001", Status: task.StatusInbox, ModifiedAt: now},
		{ID: "K002", Status: task.StatusInbox, ModifiedAt: now},
		{ID: "K003", Status: task.StatusDone, ModifiedAt: now},
	}, nil)
	stash.On("ListStashed", ctx).Return(nil, nil)

	d, err := health.NewService(tasks, stash, nil).Dashboard(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 2, d.Counts[task.StatusInbox])
	require.Equal(t, 1, d.Counts[task.StatusDone])
	require.Empty(t, d.Alerts)
}

func TestHealthService_ListError(t *testing.T) {
	ctx := context.Background()
	tasks := &mocks.TaskRepository{}
	tasks.On("List", ctx, "").Return(nil, errors.New("unreadable"))

	_, err := health.NewService(tasks, &mocks.StashLister{}, nil).Check(ctx, now)
	require.Error(t, err)
}
