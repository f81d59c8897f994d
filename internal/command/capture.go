package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/rpggio/gtd/internal/domain/aside"
	"github.com/rpggio/gtd/internal/domain/task"
	"go.uber.org/zap"
)

type laterCmd struct{ deps *Deps }

func (c *laterCmd) Execute(ctx context.Context, args []string) (Result, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Result{}, usage(KindLater)
	}

	var out strings.Builder
	if err := c.deps.addSomeday(ctx, title, &out); err != nil {
		return Result{}, err
	}
	return Result{Output: out.String()}, nil
}

func (d *Deps) addSomeday(ctx context.Context, title string, out *strings.Builder) error {
	cs, err := d.Someday.Add(ctx, title, d.now())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ Added to Someday.md: %s\n", title)
	return d.publish(ctx, cs, out)
}

// asidesCmd prints the confirmation prompt for the asides in its text, or
// captures them when a reply is given.
type asidesCmd struct{ deps *Deps }

func (c *asidesCmd) Execute(ctx context.Context, args []string) (Result, error) {
	reply, rest := splitReply(args)
	text := strings.TrimSpace(strings.Join(rest, " "))
	if text == "" {
		return Result{}, usage(KindAsides)
	}

	detected := aside.Detect(text)
	if len(detected) == 0 {
		return Result{Output: "No asides detected\n"}, nil
	}
	if reply == "" {
		return Result{Output: aside.FormatPrompt(detected)}, nil
	}

	parsed, err := aside.ParseReply(reply, len(detected))
	if err != nil {
		return Result{}, err
	}
	switch parsed.Action {
	case aside.ActionSkipAll:
		return Result{Output: fmt.Sprintf("⏭️  Skipped %d asides\n", len(detected))}, nil
	case aside.ActionEdit:
		return Result{Output: "✏️  Edit the text and run asides again\n"}, nil
	}

	var out strings.Builder
	res := Result{}
	for _, capture := range aside.Plan(detected, parsed) {
		if err := c.capture(ctx, capture, &out); err != nil {
			c.deps.Logger.Warn("aside not captured", zap.String("text", capture.Aside.Text), zap.Error(err))
			fmt.Fprintf(&out, "%s: %q\n", Describe(err).Line(), capture.Aside.Text)
			res.ExitCode = 1
		}
	}
	res.Output = out.String()
	return res, nil
}

func (c *asidesCmd) capture(ctx context.Context, capture aside.Capture, out *strings.Builder) error {
	if capture.Aside.Type == aside.TypeLaterStandalone {
		return c.deps.addSomeday(ctx, capture.Aside.Text, out)
	}

	t, cs, err := c.deps.Tasks.Create(ctx, task.CreateRequest{
		Title:     capture.Aside.Text,
		ProjectID: capture.ProjectID,
		Status:    task.StatusLater,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✅ Deferred %s to %s: %s\n", t.ID, t.ProjectID, t.Title)
	return c.deps.publish(ctx, cs, out)
}
