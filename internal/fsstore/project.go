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
	"github.com/rpggio/gtd/internal/repository"
	"go.uber.org/zap"
)

const tasksHeading = "## Tasks"

// ProjectRepository stores project index documents.
type ProjectRepository struct {
	ws       *Workspace
	renderer Renderer
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(ws *Workspace, renderer Renderer) *ProjectRepository {
	return &ProjectRepository{ws: ws, renderer: renderer}
}

// Create writes projects/{folder}/README.md.
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project, overview string, cs *change.Set) error {
	if proj == nil || proj.Folder == "" {
		return repository.ErrInvalidInput
	}
	if _, err := r.findFolder(proj.ID); err == nil {
		return fmt.Errorf("%w: project %s", repository.ErrAlreadyExists, proj.ID)
	}

	dir := filepath.Join(r.ws.projectsDir(), proj.Folder)
	if err := cs.MkdirAll(filepath.Join(dir, tasksDirName)); err != nil {
		return err
	}

	body, err := r.renderer.Render("project", map[string]string{
		"title":    proj.Title,
		"overview": overview,
		"date":     proj.CreatedAt.Format(time.DateOnly),
	})
	if err != nil {
		return fmt.Errorf("rendering project body: %w", err)
	}

	header := &projectHeader{
		ID:      proj.ID,
		Created: proj.CreatedAt.Format(time.DateOnly),
	}
	header.apply(proj)
	data, err := composeRecord(header, body)
	if err != nil {
		return err
	}

	path := filepath.Join(dir, indexFileName)
	if err := writeFile(cs, path, data); err != nil {
		return err
	}
	proj.ModifiedAt = time.Now()
	return nil
}

// Get reads a project by ID.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	folder, err := r.findFolder(id)
	if err != nil {
		return nil, err
	}
	return r.read(folder)
}

// List returns every readable project ordered by ID. Unreadable index
// documents are skipped with a warning.
func (r *ProjectRepository) List(ctx context.Context) ([]project.Project, error) {
	entries, err := os.ReadDir(r.ws.projectsDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading projects directory: %w", err)
	}

	var projects []project.Project
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == stashDirName {
			continue
		}
		if _, ok := ident.Parse(ident.PrefixProject, folderID(entry.Name())); !ok {
			continue
		}
		proj, err := r.read(entry.Name())
		if err != nil {
			r.ws.logger.Warn("skipping project",
				zap.String("folder", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		projects = append(projects, *proj)
	}

	slices.SortFunc(projects, func(a, b project.Project) int {
		return ident.Compare(ident.PrefixProject, a.ID, b.ID)
	})
	return projects, nil
}

// Update rewrites the mutable header fields of the project index document.
// The body and unknown header keys are preserved.
func (r *ProjectRepository) Update(ctx context.Context, proj *project.Project, cs *change.Set) error {
	folder, err := r.findFolder(proj.ID)
	if err != nil {
		return err
	}
	path := filepath.Join(r.ws.projectsDir(), folder, indexFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading project index: %w", err)
	}

	header, body, err := decodeProjectHeader(r.ws.rel(path), data)
	if err != nil {
		return err
	}
	header.apply(proj)

	updated, err := composeRecord(header, body)
	if err != nil {
		return err
	}
	return writeFile(cs, path, updated)
}

// AddTaskRef lists a task under the "## Tasks" heading of the project index.
// It returns false when the task is already listed.
func (r *ProjectRepository) AddTaskRef(ctx context.Context, proj *project.Project, ref project.TaskRef, cs *change.Set) (bool, error) {
	folder, err := r.findFolder(proj.ID)
	if err != nil {
		return false, err
	}
	path := filepath.Join(r.ws.projectsDir(), folder, indexFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading project index: %w", err)
	}

	content := string(data)
	if strings.Contains(content, "[[tasks/"+ref.ID+"|") || strings.Contains(content, "[[tasks/"+ref.ID+"-") {
		return false, nil
	}

	line := fmt.Sprintf("- [ ] [[tasks/%s|%s]]: %s #%s", ref.ID, ref.ID, ref.Title, ref.Status)
	if err := writeFile(cs, path, []byte(insertTaskLine(content, line))); err != nil {
		return false, err
	}
	return true, nil
}

// insertTaskLine puts line directly below the tasks heading, appending the
// heading when the document has none.
func insertTaskLine(content, line string) string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) == tasksHeading {
			out := make([]string, 0, len(lines)+1)
			out = append(out, lines[:i+1]...)
			out = append(out, line)
			out = append(out, lines[i+1:]...)
			return strings.Join(out, "\n")
		}
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + tasksHeading + "\n" + line + "\n"
}

func (r *ProjectRepository) read(folder string) (*project.Project, error) {
	path := filepath.Join(r.ws.projectsDir(), folder, indexFileName)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, r.ws.rel(path))
		}
		return nil, fmt.Errorf("stat project index: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project index: %w", err)
	}

	rel := r.ws.rel(path)
	header, _, err := decodeProjectHeader(rel, data)
	if err != nil {
		return nil, err
	}
	proj, err := header.toProject(rel)
	if err != nil {
		return nil, err
	}
	if proj.ID != folderID(folder) {
		return nil, &MalformedRecordError{Path: rel, Field: "id", Reason: fmt.Sprintf("does not match folder %s", folder)}
	}

	proj.Folder = folder
	proj.Name = folderSlug(folder)
	proj.ModifiedAt = info.ModTime()
	return proj, nil
}

// findFolder locates the folder whose name is id or starts with "{id}-".
func (r *ProjectRepository) findFolder(id string) (string, error) {
	entries, err := os.ReadDir(r.ws.projectsDir())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading projects directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() && folderID(entry.Name()) == id {
			return entry.Name(), nil
		}
	}
	return "", fmt.Errorf("%w: project %s", repository.ErrNotFound, id)
}

func folderID(name string) string {
	id, _, _ := strings.Cut(name, "-")
	return id
}

func folderSlug(name string) string {
	_, slug, _ := strings.Cut(name, "-")
	return slug
}
