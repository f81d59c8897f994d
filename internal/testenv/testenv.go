// Package testenv builds a fully wired workspace in a temporary directory
// for end to end tests.
package testenv

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/gtd/internal/app"
	"github.com/rpggio/gtd/internal/command"
	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Env is a workspace rooted in t.TempDir with an in-memory state database.
type Env struct {
	*app.App
	Root string
}

// Option adjusts the wiring of an Env.
type Option func(*app.Options)

// WithCommitter replaces the default no-op committer.
func WithCommitter(c change.Committer, rollback bool) Option {
	return func(o *app.Options) {
		o.Committer = c
		o.RollbackOnFailure = rollback
	}
}

// WithRoot uses root instead of a fresh temporary directory.
func WithRoot(root string) Option {
	return func(o *app.Options) {
		o.Root = root
	}
}

// WithClock fixes the time commands see.
func WithClock(now time.Time) Option {
	return func(o *app.Options) {
		o.Now = func() time.Time { return now }
	}
}

// WithLogger routes service logs to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *app.Options) {
		o.Logger = logger
	}
}

func New(t *testing.T, opts ...Option) *Env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	o := app.Options{Root: t.TempDir(), DB: db}
	for _, opt := range opts {
		opt(&o)
	}

	a, err := app.New(o)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return &Env{App: a, Root: a.Workspace.Root()}
}

// Run executes the named command with args.
func (e *Env) Run(ctx context.Context, name string, args ...string) (command.Result, error) {
	return command.Run(ctx, name, args, e.Deps)
}

// MustRun executes the named command and fails the test on error.
func (e *Env) MustRun(t *testing.T, name string, args ...string) command.Result {
	t.Helper()
	res, err := e.Run(context.Background(), name, args...)
	require.NoError(t, err, "%s %v", name, args)
	return res
}
