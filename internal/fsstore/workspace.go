// Package fsstore persists projects and tasks as markdown records with YAML
// frontmatter under a workspace root. The files are the system of record.
package fsstore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rpggio/gtd/internal/domain/change"
	"go.uber.org/zap"
)

const (
	projectsDirName = "projects"
	stashDirName    = "P000-STASH"
	activeFileName  = ".active"
	somedayFileName = "Someday.md"
	indexFileName   = "README.md"
	tasksDirName    = "tasks"
)

// Renderer fills a record body template. kind is "task" or "project".
type Renderer interface {
	Render(kind string, fields map[string]string) (string, error)
}

// Workspace is the root directory every store reads and writes beneath.
type Workspace struct {
	root   string
	logger *zap.Logger
}

// NewWorkspace resolves root and makes sure the projects directory exists.
func NewWorkspace(root string, logger *zap.Logger) (*Workspace, error) {
	if root == "" {
		return nil, fmt.Errorf("workspace root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(abs, projectsDirName), 0o755); err != nil {
		return nil, fmt.Errorf("creating projects directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workspace{root: abs, logger: logger}, nil
}

// Root returns the absolute workspace root.
func (w *Workspace) Root() string { return w.root }

// Begin opens a change set rooted at the workspace.
func (w *Workspace) Begin(message string) *change.Set {
	return change.NewSet(w.root, message)
}

func (w *Workspace) projectsDir() string { return filepath.Join(w.root, projectsDirName) }
func (w *Workspace) stashDir() string    { return filepath.Join(w.projectsDir(), stashDirName) }
func (w *Workspace) activePath() string  { return filepath.Join(w.root, activeFileName) }
func (w *Workspace) somedayPath() string { return filepath.Join(w.root, somedayFileName) }

func (w *Workspace) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

// writeFile writes data to path through cs. Identical content is left alone
// so no-op transitions do not produce changes.
func writeFile(cs *change.Set, path string, data []byte) error {
	if current, err := os.ReadFile(path); err == nil && bytes.Equal(current, data) {
		return nil
	}
	return forceWrite(cs, path, data)
}

// forceWrite writes even when the content is unchanged, refreshing the mtime.
func forceWrite(cs *change.Set, path string, data []byte) error {
	if err := cs.Track(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func removeFile(cs *change.Set, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := cs.Track(path); err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
