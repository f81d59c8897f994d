package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/gtd/internal/domain/task"
)

type addCmd struct{ deps *Deps }

func (c *addCmd) Execute(ctx context.Context, args []string) (Result, error) {
	// ":add task ..." is the long form.
	if len(args) > 0 && args[0] == "task" {
		args = args[1:]
	}
	in, err := parseInline(args)
	if err != nil {
		return Result{}, err
	}
	if in.Title == "" {
		return Result{}, usage(KindAdd)
	}
	return c.deps.createTask(ctx, task.CreateRequest{
		Title:     in.Title,
		ProjectID: in.ProjectID,
		Status:    task.Status(in.Status),
		Energy:    task.Energy(in.Energy),
		Due:       in.Due,
		Context:   in.Context,
		Tags:      in.Tags,
	})
}

type deferCmd struct{ deps *Deps }

func (c *deferCmd) Execute(ctx context.Context, args []string) (Result, error) {
	in, err := parseInline(args)
	if err != nil {
		return Result{}, err
	}
	if in.Title == "" {
		return Result{}, usage(KindDefer)
	}
	return c.deps.createTask(ctx, task.CreateRequest{
		Title:     in.Title,
		ProjectID: in.ProjectID,
		Status:    task.StatusLater,
		Energy:    task.Energy(in.Energy),
		Due:       in.Due,
		Context:   in.Context,
		Tags:      in.Tags,
	})
}

func (d *Deps) createTask(ctx context.Context, req task.CreateRequest) (Result, error) {
	t, cs, err := d.Tasks.Create(ctx, req)
	if err != nil {
		return Result{}, err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "✅ Created task: %s in %s\n", t.ID, t.ProjectID)
	fmt.Fprintf(&out, "   File: %s\n", t.Path)
	if err := d.publish(ctx, cs, &out); err != nil {
		return Result{}, err
	}
	return Result{Output: out.String()}, nil
}

type tasksCmd struct{ deps *Deps }

func (c *tasksCmd) Execute(ctx context.Context, args []string) (Result, error) {
	in, err := parseInline(args)
	if err != nil {
		return Result{}, err
	}
	if in.Title != "" {
		return Result{}, usage(KindTasks)
	}

	tasks, err := c.deps.Tasks.List(ctx, in.ProjectID)
	if err != nil {
		return Result{}, err
	}

	var out strings.Builder
	if in.ProjectID == "" {
		out.WriteString("📋 Tasks:\n")
	} else {
		fmt.Fprintf(&out, "📋 Tasks in %s:\n", in.ProjectID)
	}
	if len(tasks) == 0 {
		out.WriteString("   (none)\n")
	}
	for _, t := range tasks {
		fmt.Fprintf(&out, "   - %s: %s #%s", t.ID, t.Title, t.Status)
		if in.ProjectID == "" {
			fmt.Fprintf(&out, " (%s)", t.ProjectID)
		}
		out.WriteString("\n")
	}
	return Result{Output: out.String()}, nil
}
