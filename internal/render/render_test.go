package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderTask(t *testing.T) {
	tmpl, err := New(nil)
	require.NoError(t, err)

	out, err := tmpl.Render("task", map[string]string{
		"title":        "Write tests",
		"project":      "P001",
		"project_name": "Launch",
		"context":      "computer",
	})
	require.NoError(t, err)
	require.Contains(t, out, "# Write tests")
	require.Contains(t, out, "[[../README|P001 Launch]]")
	require.Contains(t, out, "## Notes\n\n")
}

func TestRenderProjectHasEmptyTaskSection(t *testing.T) {
	tmpl, err := New(nil)
	require.NoError(t, err)

	out, err := tmpl.Render("project", map[string]string{"title": "Launch", "date": "2026-01-02"})
	require.NoError(t, err)
	require.Contains(t, out, "## Tasks\n\n## Last Session")
	require.Contains(t, out, "[2026-01-02] - Initial project creation")
	require.False(t, strings.Contains(out, "K001"))
}

func TestRenderOverrideAndUnknownKind(t *testing.T) {
	tmpl, err := New(map[string]string{"task": "{{.title}}!"})
	require.NoError(t, err)

	out, err := tmpl.Render("task", map[string]string{"title": "hi"})
	require.NoError(t, err)
	require.Equal(t, "hi!", out)

	_, err = tmpl.Render("thread", nil)
	require.True(t, errors.Is(err, ErrUnknownKind))
}

func TestNewRejectsBadTemplate(t *testing.T) {
	_, err := New(map[string]string{"task": "{{.title"})
	require.Error(t, err)
}
