// Package command implements the closed set of gtd commands over the domain
// services. Each command parses its own arguments and renders its own output.
package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/health"
	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/domain/task"
	"github.com/rpggio/gtd/internal/gitvc"
	"go.uber.org/zap"
)

// Result is what a command prints and the exit status it asks for.
type Result struct {
	Output   string
	ExitCode int
}

// Command is one member of the command set.
type Command interface {
	Execute(ctx context.Context, args []string) (Result, error)
}

// ProjectService defines project operations used by commands.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, *change.Set, error)
	ListByStatus(ctx context.Context, status project.Status) ([]project.Project, error)
	ListStashed(ctx context.Context) ([]project.StashEntry, error)
	Switch(ctx context.Context, id string) (*project.Project, *change.Set, error)
	Stash(ctx context.Context) (*project.Project, *change.Set, error)
}

// TaskService defines task operations used by commands.
type TaskService interface {
	Create(ctx context.Context, req task.CreateRequest) (*task.Task, *change.Set, error)
	List(ctx context.Context, projectID string) ([]task.Task, error)
}

// SomedayService defines someday list operations used by commands.
type SomedayService interface {
	Add(ctx context.Context, title string, now time.Time) (*change.Set, error)
}

// HealthService defines health checks used by commands.
type HealthService interface {
	Check(ctx context.Context, now time.Time) ([]health.Alert, error)
	Dashboard(ctx context.Context, now time.Time) (health.Dashboard, error)
}

// ActivityService defines journal reads used by commands.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// HistoryService reads the version history of the workspace. Deps.History
// is nil when the workspace is not under version control.
type HistoryService interface {
	Recent(ctx context.Context, limit int) ([]gitvc.Entry, error)
}

// Publisher commits change sets produced by mutating services.
type Publisher interface {
	Publish(ctx context.Context, set *change.Set) (change.Outcome, error)
}

// Deps are the collaborators shared by every command.
type Deps struct {
	Root       string
	Projects   ProjectService
	Tasks      TaskService
	Someday    SomedayService
	Health     HealthService
	Activities ActivityService
	History    HistoryService
	Publisher  Publisher
	Now        func() time.Time
	Logger     *zap.Logger
}

func (d *Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// New builds the command for kind.
func New(kind Kind, deps Deps) (Command, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	d := &deps
	switch kind {
	case KindAdd:
		return &addCmd{deps: d}, nil
	case KindDefer:
		return &deferCmd{deps: d}, nil
	case KindLater:
		return &laterCmd{deps: d}, nil
	case KindStash:
		return &stashCmd{deps: d}, nil
	case KindSwitch:
		return &switchCmd{deps: d}, nil
	case KindStashed:
		return &stashedCmd{deps: d}, nil
	case KindFuture:
		return &futureCmd{deps: d}, nil
	case KindAlerts:
		return &alertsCmd{deps: d}, nil
	case KindGTD:
		return &gtdCmd{deps: d}, nil
	case KindAsides:
		return &asidesCmd{deps: d}, nil
	case KindNewProject:
		return &newProjectCmd{deps: d}, nil
	case KindTasks:
		return &tasksCmd{deps: d}, nil
	case KindLog:
		return &logCmd{deps: d}, nil
	case KindViz:
		return &vizCmd{deps: d}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, kind)
	}
}

// Run resolves name and executes the matching command.
func Run(ctx context.Context, name string, args []string, deps Deps) (Result, error) {
	kind, err := ParseKind(name)
	if err != nil {
		return Result{}, err
	}
	cmd, err := New(kind, deps)
	if err != nil {
		return Result{}, err
	}
	return cmd.Execute(ctx, args)
}

// publish hands cs to the publisher. When the commit fails but the writes
// were kept, the command still succeeds and a warning line is added to out.
func (d *Deps) publish(ctx context.Context, cs *change.Set, out *strings.Builder) error {
	if cs == nil {
		return nil
	}
	outcome, err := d.Publisher.Publish(ctx, cs)
	if err == nil {
		return nil
	}
	if outcome.Kept {
		d.Logger.Debug("keeping uncommitted change", zap.String("change_id", cs.ID))
		fmt.Fprintf(out, "⚠️  Not committed: %v\n", err)
		return nil
	}
	return err
}

func usage(kind Kind) error {
	return fmt.Errorf("%w: %s", ErrUsage, kind.Usage())
}
