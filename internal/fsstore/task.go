package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/domain/task"
	"github.com/rpggio/gtd/internal/repository"
	"go.uber.org/zap"
)

// TaskRepository stores task records under each project's tasks folder.
type TaskRepository struct {
	ws       *Workspace
	renderer Renderer
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(ws *Workspace, renderer Renderer) *TaskRepository {
	return &TaskRepository{ws: ws, renderer: renderer}
}

// Create writes projects/{folder}/tasks/{id}-{slug}.md and sets t.Path.
func (r *TaskRepository) Create(ctx context.Context, proj *project.Project, t *task.Task, cs *change.Set) error {
	if proj == nil || t == nil {
		return repository.ErrInvalidInput
	}
	if _, err := r.find(t.ID); err == nil {
		return fmt.Errorf("%w: task %s", repository.ErrAlreadyExists, t.ID)
	}

	dir := filepath.Join(r.ws.projectsDir(), proj.Folder, tasksDirName)
	if err := cs.MkdirAll(dir); err != nil {
		return err
	}

	body, err := r.renderer.Render("task", map[string]string{
		"title":        t.Title,
		"project":      proj.ID,
		"project_name": proj.Title,
		"context":      t.Context,
		"notes":        t.Notes,
	})
	if err != nil {
		return fmt.Errorf("rendering task body: %w", err)
	}

	data, err := composeRecord(newTaskHeader(t), body)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, t.ID+"-"+project.Slugify(t.Title)+".md")
	if err := writeFile(cs, path, data); err != nil {
		return err
	}
	t.Path = r.ws.rel(path)
	return nil
}

// Get reads a task by ID.
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	path, err := r.find(id)
	if err != nil {
		return nil, err
	}
	t, err := r.read(path)
	if err != nil {
		return nil, err
	}
	if t.ID != id {
		return nil, &MalformedRecordError{Path: t.Path, Field: "id", Reason: fmt.Sprintf("does not match file name %s", filepath.Base(path))}
	}
	return t, nil
}

// List returns the tasks of projectID, or of every project when empty,
// ordered by ID. Malformed records are skipped with a warning.
func (r *TaskRepository) List(ctx context.Context, projectID string) ([]task.Task, error) {
	paths, err := r.taskFiles()
	if err != nil {
		return nil, err
	}

	var tasks []task.Task
	for _, path := range paths {
		t, err := r.read(path)
		if err != nil {
			r.ws.logger.Warn("skipping task record",
				zap.String("path", r.ws.rel(path)),
				zap.Error(err),
			)
			continue
		}
		if projectID != "" && t.ProjectID != projectID {
			continue
		}
		tasks = append(tasks, *t)
	}

	slices.SortFunc(tasks, func(a, b task.Task) int {
		return ident.Compare(ident.PrefixTask, a.ID, b.ID)
	})
	return tasks, nil
}

func (r *TaskRepository) read(path string) (*task.Task, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, r.ws.rel(path))
		}
		return nil, fmt.Errorf("stat task record: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading task record: %w", err)
	}

	rel := r.ws.rel(path)
	header, body, err := decodeTaskHeader(rel, data)
	if err != nil {
		return nil, err
	}
	t, err := header.toTask(rel)
	if err != nil {
		return nil, err
	}
	t.Notes = notesSection(body)
	t.Path = rel
	t.ModifiedAt = info.ModTime()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = t.ModifiedAt.Truncate(24 * time.Hour)
	}
	return t, nil
}

// find returns the record whose file name is "{id}.md" or starts with "{id}-".
func (r *TaskRepository) find(id string) (string, error) {
	paths, err := r.taskFiles()
	if err != nil {
		return "", err
	}
	for _, path := range paths {
		if recordID(filepath.Base(path)) == id {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: task %s", repository.ErrNotFound, id)
}

// taskFiles lists every K*.md file inside a tasks folder under projects.
func (r *TaskRepository) taskFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(r.ws.projectsDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			if d.Name() == stashDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Base(filepath.Dir(path)) != tasksDirName {
			return nil
		}
		if _, ok := ident.Parse(ident.PrefixTask, recordID(d.Name())); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning task records: %w", err)
	}
	return paths, nil
}

func recordID(name string) string {
	if !strings.HasSuffix(name, ".md") {
		return ""
	}
	id, _, _ := strings.Cut(strings.TrimSuffix(name, ".md"), "-")
	return id
}

// notesSection returns the text under the "## Notes" heading, if any.
func notesSection(body string) string {
	_, rest, ok := strings.Cut(body, "## Notes\n")
	if !ok {
		return ""
	}
	if i := strings.Index(rest, "\n## "); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSpace(rest)
}
