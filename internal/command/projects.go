package command

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rpggio/gtd/internal/domain/project"
)

type newProjectCmd struct{ deps *Deps }

func (c *newProjectCmd) Execute(ctx context.Context, args []string) (Result, error) {
	in, err := parseInline(args)
	if err != nil {
		return Result{}, err
	}
	if in.Title == "" {
		return Result{}, usage(KindNewProject)
	}

	proj, cs, err := c.deps.Projects.Create(ctx, project.CreateRequest{
		Title:  in.Title,
		Area:   in.Area,
		Status: project.Status(in.Status),
		Tags:   in.Tags,
	})
	if err != nil {
		return Result{}, err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "✅ Created project: %s - %s\n", proj.ID, proj.Title)
	fmt.Fprintf(&out, "   Status: %s\n", proj.Status)
	if err := c.deps.publish(ctx, cs, &out); err != nil {
		return Result{}, err
	}
	return Result{Output: out.String()}, nil
}

type stashCmd struct{ deps *Deps }

func (c *stashCmd) Execute(ctx context.Context, args []string) (Result, error) {
	if len(args) > 0 {
		return Result{}, usage(KindStash)
	}
	proj, cs, err := c.deps.Projects.Stash(ctx)
	if err != nil {
		return Result{}, err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "✅ Stashed project: %s\n", proj.ID)
	if err := c.deps.publish(ctx, cs, &out); err != nil {
		return Result{}, err
	}
	return Result{Output: out.String()}, nil
}

type switchCmd struct{ deps *Deps }

func (c *switchCmd) Execute(ctx context.Context, args []string) (Result, error) {
	if len(args) != 1 {
		return Result{}, usage(KindSwitch)
	}
	proj, cs, err := c.deps.Projects.Switch(ctx, strings.TrimSpace(args[0]))
	if err != nil {
		return Result{}, err
	}

	var out strings.Builder
	fmt.Fprintf(&out, "✅ Switched to project: %s\n", proj.ID)
	fmt.Fprintf(&out, "   Path: %s\n", filepath.Join(c.deps.Root, "projects", proj.Folder))
	if err := c.deps.publish(ctx, cs, &out); err != nil {
		return Result{}, err
	}
	return Result{Output: out.String()}, nil
}

type stashedCmd struct{ deps *Deps }

func (c *stashedCmd) Execute(ctx context.Context, _ []string) (Result, error) {
	entries, err := c.deps.Projects.ListStashed(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(entries) == 0 {
		return Result{Output: "❌ No stashed projects\n"}, nil
	}

	var out strings.Builder
	out.WriteString("📦 Stashed Projects:\n")
	for _, e := range entries {
		fmt.Fprintf(&out, "   - [[%s|%s]]\n", e.Link, e.ProjectID)
	}
	return Result{Output: out.String()}, nil
}

type futureCmd struct{ deps *Deps }

func (c *futureCmd) Execute(ctx context.Context, _ []string) (Result, error) {
	projects, err := c.deps.Projects.ListByStatus(ctx, project.StatusFuture)
	if err != nil {
		return Result{}, err
	}

	var out strings.Builder
	out.WriteString("🔮 Future Projects (TBD/seeds):\n")
	for _, p := range projects {
		fmt.Fprintf(&out, "   - %s: %s\n", p.ID, p.Title)
	}
	return Result{Output: out.String()}, nil
}
