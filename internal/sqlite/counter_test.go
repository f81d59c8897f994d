package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rpggio/gtd/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestCounterRepository_Advance(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewCounterRepository(db)

	current, err := repo.Current(ctx, "K")
	require.NoError(t, err)
	require.Equal(t, int64(0), current)

	value, err := repo.Advance(ctx, "K", 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), value)

	value, err = repo.Advance(ctx, "K", 0)
	require.NoError(t, err)
	require.Equal(t, int64(2), value)

	current, err = repo.Current(ctx, "K")
	require.NoError(t, err)
	require.Equal(t, int64(2), current)
}

func TestCounterRepository_FloorWins(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewCounterRepository(db)

	value, err := repo.Advance(ctx, "P", 7)
	require.NoError(t, err)
	require.Equal(t, int64(8), value)

	// a lower floor never moves the counter backwards
	value, err = repo.Advance(ctx, "P", 3)
	require.NoError(t, err)
	require.Equal(t, int64(9), value)
}

func TestCounterRepository_PrefixesAreIndependent(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewCounterRepository(db)

	_, err := repo.Advance(ctx, "P", 4)
	require.NoError(t, err)

	value, err := repo.Advance(ctx, "K", 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), value)
}

func TestCounterRepository_InvalidInput(t *testing.T) {
	repo := NewCounterRepository(NewTestDB(t))

	_, err := repo.Advance(context.Background(), "", 0)
	require.True(t, errors.Is(err, repository.ErrInvalidInput))

	_, err = repo.Advance(context.Background(), "K", -1)
	require.True(t, errors.Is(err, repository.ErrInvalidInput))
}

func TestCounterRepository_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.db")

	db, err := Open(path)
	require.NoError(t, err)
	_, err = NewCounterRepository(db).Advance(ctx, "K", 5)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	current, err := NewCounterRepository(db).Current(ctx, "K")
	require.NoError(t, err)
	require.Equal(t, int64(6), current)
}
