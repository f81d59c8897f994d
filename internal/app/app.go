// Package app wires the stores, services and commands of a gtd workspace.
package app

import (
	"fmt"
	"time"

	"github.com/rpggio/gtd/internal/command"
	"github.com/rpggio/gtd/internal/config"
	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/health"
	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/domain/someday"
	"github.com/rpggio/gtd/internal/domain/task"
	"github.com/rpggio/gtd/internal/fsstore"
	"github.com/rpggio/gtd/internal/gitvc"
	"github.com/rpggio/gtd/internal/render"
	"github.com/rpggio/gtd/internal/sqlite"
	"go.uber.org/zap"
)

// Options are the collaborators a workspace is built from.
type Options struct {
	Root              string
	DB                *sqlite.DB
	Committer         change.Committer
	RollbackOnFailure bool
	// Templates override the built-in record bodies by kind.
	Templates map[string]string
	Now       func() time.Time
	Logger    *zap.Logger
}

// App is a wired workspace.
type App struct {
	Workspace *fsstore.Workspace
	DB        *sqlite.DB
	Deps      command.Deps
	ownsDB    bool
}

// New wires every store and service over opts.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DB == nil {
		return nil, fmt.Errorf("database is required")
	}
	committer := opts.Committer
	if committer == nil {
		committer = gitvc.Nop{}
	}

	ws, err := fsstore.NewWorkspace(opts.Root, logger)
	if err != nil {
		return nil, err
	}
	renderer, err := render.New(opts.Templates)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	projectRepo := fsstore.NewProjectRepository(ws, renderer)
	taskRepo := fsstore.NewTaskRepository(ws, renderer)
	counterRepo := sqlite.NewCounterRepository(opts.DB)
	activityRepo := sqlite.NewActivityRepository(opts.DB)

	activitySvc := activity.NewService(activityRepo, logger)
	allocator := ident.NewAllocator(fsstore.NewScanner(ws), counterRepo, logger)
	projectSvc := project.NewService(
		projectRepo,
		fsstore.NewPointerStore(ws),
		fsstore.NewStashIndex(ws),
		allocator,
		ws,
		activitySvc,
		logger,
	)
	taskSvc := task.NewService(taskRepo, projectSvc, projectRepo, allocator, ws, activitySvc, logger)
	somedaySvc := someday.NewService(fsstore.NewSomedayList(ws), ws, activitySvc, logger)
	healthSvc := health.NewService(taskSvc, projectSvc, logger)
	publisher := change.NewPublisher(committer, activitySvc, opts.RollbackOnFailure, logger)

	return &App{
		Workspace: ws,
		DB:        opts.DB,
		Deps: command.Deps{
			Root:       ws.Root(),
			Projects:   projectSvc,
			Tasks:      taskSvc,
			Someday:    somedaySvc,
			Health:     healthSvc,
			Activities: activitySvc,
			Publisher:  publisher,
			Now:        opts.Now,
			Logger:     logger,
		},
	}, nil
}

// Open builds the workspace described by cfg, opening its state database.
// Git commits are skipped with a warning when the root is not a repository.
func Open(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sqlite.Open(cfg.DB.Path)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	var committer change.Committer = gitvc.Nop{}
	if cfg.Git.Enabled {
		if gitvc.IsRepository(cfg.Workspace.Root) {
			committer = gitvc.NewCommitter(cfg.Workspace.Root, gitvc.Author{
				Name:  cfg.Git.AuthorName,
				Email: cfg.Git.AuthorEmail,
			}, logger)
		} else {
			logger.Warn("workspace is not a git repository, changes will not be committed",
				zap.String("root", cfg.Workspace.Root))
		}
	}

	a, err := New(Options{
		Root:              cfg.Workspace.Root,
		DB:                db,
		Committer:         committer,
		RollbackOnFailure: cfg.Git.RollbackOnFailure,
		Logger:            logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if gitvc.IsRepository(cfg.Workspace.Root) {
		a.Deps.History = gitvc.NewHistory(cfg.Workspace.Root)
	}
	a.ownsDB = true
	return a, nil
}

// Close releases the state database when Open created it.
func (a *App) Close() error {
	if !a.ownsDB {
		return nil
	}
	return a.DB.Close()
}
