package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/stretchr/testify/require"
)

func TestActivityRepository_LogList(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	entry1 := &activity.ActivityEntry{
		ProjectID:    "P001",
		ActivityType: activity.TypeProjectCreated,
		Summary:      "created project P001",
		ChangeID:     "c1",
	}
	entry2 := &activity.ActivityEntry{
		ProjectID:    "P001",
		ActivityType: activity.TypeProjectSwitched,
		Summary:      "switched to P001",
		ChangeID:     "c2",
	}

	require.NoError(t, repo.Log(ctx, entry1))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Log(ctx, entry2))
	require.NotZero(t, entry1.ID)

	entries, err := repo.List(ctx, activity.ListActivityOptions{ProjectID: "P001"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, entry2.ActivityType, entries[0].ActivityType)
	require.Equal(t, "c2", entries[0].ChangeID)
	require.Equal(t, entry1.ActivityType, entries[1].ActivityType)
}

func TestActivityRepository_Filters(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	repo := NewActivityRepository(db)
	subject := "K001"
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		ProjectID:    "P001",
		SubjectID:    &subject,
		ActivityType: activity.TypeTaskCreated,
		Summary:      "created task K001",
	}))
	require.NoError(t, repo.Log(ctx, &activity.ActivityEntry{
		ProjectID:    "P002",
		ActivityType: activity.TypeProjectStashed,
		Summary:      "stashed P002",
	}))

	kind := activity.TypeTaskCreated
	entries, err := repo.List(ctx, activity.ListActivityOptions{
		SubjectID:    &subject,
		ActivityType: &kind,
	})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].SubjectID)
	require.Equal(t, "K001", *entries[0].SubjectID)

	entries, err = repo.List(ctx, activity.ListActivityOptions{ProjectID: "P002"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].SubjectID)

	entries, err = repo.List(ctx, activity.ListActivityOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, activity.TypeTaskCreated, entries[0].ActivityType)
}
