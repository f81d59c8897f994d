package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/gtd/internal/domain/activity"
	"github.com/rpggio/gtd/internal/domain/health"
)

const defaultLogLimit = 20

type alertsCmd struct{ deps *Deps }

func (c *alertsCmd) Execute(ctx context.Context, _ []string) (Result, error) {
	now := c.deps.now()
	alerts, err := c.deps.Health.Check(ctx, now)
	if err != nil {
		return Result{}, err
	}
	res := Result{Output: health.Render(now, alerts)}
	if len(alerts) > 0 {
		res.ExitCode = 1
	}
	return res, nil
}

type gtdCmd struct{ deps *Deps }

func (c *gtdCmd) Execute(ctx context.Context, _ []string) (Result, error) {
	now := c.deps.now()
	dash, err := c.deps.Health.Dashboard(ctx, now)
	if err != nil {
		return Result{}, err
	}
	return Result{Output: health.RenderDashboard(now, dash)}, nil
}

type logCmd struct{ deps *Deps }

func (c *logCmd) Execute(ctx context.Context, args []string) (Result, error) {
	in, err := parseInline(args)
	if err != nil {
		return Result{}, err
	}
	if in.Title != "" {
		return Result{}, usage(KindLog)
	}
	limit := in.Limit
	if limit == 0 {
		limit = defaultLogLimit
	}

	entries, err := c.deps.Activities.GetRecentActivity(ctx, activity.ListActivityOptions{
		ProjectID: in.ProjectID,
		Limit:     limit,
	})
	if err != nil {
		return Result{}, err
	}
	if len(entries) == 0 {
		return Result{Output: "📜 No activity\n"}, nil
	}

	var out strings.Builder
	out.WriteString("📜 Activity:\n")
	for _, e := range entries {
		fmt.Fprintf(&out, "   %s %s", e.CreatedAt.Local().Format(time.DateTime), e.ActivityType)
		if e.ProjectID != "" {
			fmt.Fprintf(&out, " %s", e.ProjectID)
		}
		fmt.Fprintf(&out, ": %s\n", e.Summary)
	}
	return Result{Output: out.String()}, nil
}

type vizCmd struct{ deps *Deps }

func (c *vizCmd) Execute(ctx context.Context, args []string) (Result, error) {
	in, err := parseInline(args)
	if err != nil {
		return Result{}, err
	}
	if in.Title != "" || in.ProjectID != "" {
		return Result{}, usage(KindViz)
	}
	if c.deps.History == nil {
		return Result{Output: "🌳 No history (workspace is not a git repository)\n"}, nil
	}
	limit := in.Limit
	if limit == 0 {
		limit = defaultLogLimit
	}

	entries, err := c.deps.History.Recent(ctx, limit)
	if err != nil {
		return Result{}, err
	}
	if len(entries) == 0 {
		return Result{Output: "🌳 No commits\n"}, nil
	}

	var out strings.Builder
	out.WriteString("🌳 History:\n")
	for _, e := range entries {
		fmt.Fprintf(&out, "   %s %s %s\n", e.Hash, e.When.Local().Format(time.DateTime), e.Subject)
	}
	return Result{Output: out.String()}, nil
}
