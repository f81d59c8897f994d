package fsstore

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/domain/task"
	"github.com/rpggio/gtd/internal/repository"
	"gopkg.in/yaml.v3"
)

const fence = "---"

// MalformedRecordError reports a record whose header does not fit its schema.
type MalformedRecordError struct {
	Path   string
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed record %s: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("malformed record %s: field %q: %s", e.Path, e.Field, e.Reason)
}

// Unwrap lets callers match with errors.Is(err, repository.ErrMalformedRecord).
func (e *MalformedRecordError) Unwrap() error {
	return repository.ErrMalformedRecord
}

// taskHeader is the frontmatter schema of a task record.
type taskHeader struct {
	ID      string         `yaml:"id"`
	Project string         `yaml:"project"`
	Title   string         `yaml:"title"`
	Status  string         `yaml:"status"`
	Energy  string         `yaml:"energy"`
	Due     string         `yaml:"due"`
	Context string         `yaml:"context"`
	Tags    []string       `yaml:"tags,flow"`
	Created string         `yaml:"created"`
	Extra   map[string]any `yaml:",inline"`
}

// projectHeader is the frontmatter schema of a project index document.
type projectHeader struct {
	ID      string         `yaml:"id"`
	Title   string         `yaml:"title"`
	Status  string         `yaml:"status"`
	Area    string         `yaml:"area"`
	Created string         `yaml:"created"`
	Stashed bool           `yaml:"stashed"`
	Tags    []string       `yaml:"tags,flow"`
	Extra   map[string]any `yaml:",inline"`
}

// splitFrontmatter separates the YAML header from the markdown body.
func splitFrontmatter(path string, data []byte) ([]byte, string, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, fence+"\n") {
		return nil, "", &MalformedRecordError{Path: path, Reason: "missing frontmatter"}
	}
	rest := text[len(fence)+1:]

	end := strings.Index(rest, "\n"+fence+"\n")
	var header, body string
	switch {
	case strings.HasPrefix(rest, fence+"\n"):
		header, body = "", rest[len(fence)+1:]
	case end >= 0:
		header, body = rest[:end+1], rest[end+len(fence)+2:]
	case strings.HasSuffix(rest, "\n"+fence):
		header, body = rest[:len(rest)-len(fence)], ""
	default:
		return nil, "", &MalformedRecordError{Path: path, Reason: "unterminated frontmatter"}
	}
	return []byte(header), body, nil
}

// composeRecord renders header and body back into a record file.
func composeRecord(header any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(header); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	buf.WriteString(fence + "\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

func decodeTaskHeader(path string, data []byte) (*taskHeader, string, error) {
	raw, body, err := splitFrontmatter(path, data)
	if err != nil {
		return nil, "", err
	}
	var h taskHeader
	if err := yaml.Unmarshal(raw, &h); err != nil {
		return nil, "", &MalformedRecordError{Path: path, Reason: err.Error()}
	}
	return &h, body, nil
}

func decodeProjectHeader(path string, data []byte) (*projectHeader, string, error) {
	raw, body, err := splitFrontmatter(path, data)
	if err != nil {
		return nil, "", err
	}
	var h projectHeader
	if err := yaml.Unmarshal(raw, &h); err != nil {
		return nil, "", &MalformedRecordError{Path: path, Reason: err.Error()}
	}
	return &h, body, nil
}

// toTask validates the header and converts it to a domain task.
func (h *taskHeader) toTask(path string) (*task.Task, error) {
	if _, ok := ident.Parse(ident.PrefixTask, h.ID); !ok {
		return nil, &MalformedRecordError{Path: path, Field: "id", Reason: fmt.Sprintf("invalid task id %q", h.ID)}
	}
	if _, ok := ident.Parse(ident.PrefixProject, h.Project); !ok {
		return nil, &MalformedRecordError{Path: path, Field: "project", Reason: fmt.Sprintf("invalid project id %q", h.Project)}
	}
	if strings.TrimSpace(h.Title) == "" {
		return nil, &MalformedRecordError{Path: path, Field: "title", Reason: "required"}
	}
	status := task.Status(h.Status)
	if !status.Valid() {
		return nil, &MalformedRecordError{Path: path, Field: "status", Reason: fmt.Sprintf("unknown status %q", h.Status)}
	}
	energy := task.Energy(h.Energy)
	if energy == "" {
		energy = task.EnergyMedium
	}
	if !energy.Valid() {
		return nil, &MalformedRecordError{Path: path, Field: "energy", Reason: fmt.Sprintf("unknown energy %q", h.Energy)}
	}

	t := &task.Task{
		ID:        h.ID,
		ProjectID: h.Project,
		Title:     h.Title,
		Status:    status,
		Energy:    energy,
		Context:   h.Context,
		Tags:      h.Tags,
	}
	if h.Due != "" {
		due, err := time.ParseInLocation(time.DateOnly, h.Due, time.Local)
		if err != nil {
			return nil, &MalformedRecordError{Path: path, Field: "due", Reason: err.Error()}
		}
		t.Due = &due
	}
	if h.Created != "" {
		created, err := time.ParseInLocation(time.DateOnly, h.Created, time.Local)
		if err != nil {
			return nil, &MalformedRecordError{Path: path, Field: "created", Reason: err.Error()}
		}
		t.CreatedAt = created
	}
	return t, nil
}

func newTaskHeader(t *task.Task) *taskHeader {
	h := &taskHeader{
		ID:      t.ID,
		Project: t.ProjectID,
		Title:   t.Title,
		Status:  string(t.Status),
		Energy:  string(t.Energy),
		Context: t.Context,
		Tags:    t.Tags,
		Created: t.CreatedAt.Format(time.DateOnly),
	}
	if h.Tags == nil {
		h.Tags = []string{}
	}
	if t.Due != nil {
		h.Due = t.Due.Format(time.DateOnly)
	}
	return h
}

// toProject validates the header and converts it to a domain project.
func (h *projectHeader) toProject(path string) (*project.Project, error) {
	if _, ok := ident.Parse(ident.PrefixProject, h.ID); !ok {
		return nil, &MalformedRecordError{Path: path, Field: "id", Reason: fmt.Sprintf("invalid project id %q", h.ID)}
	}
	if strings.TrimSpace(h.Title) == "" {
		return nil, &MalformedRecordError{Path: path, Field: "title", Reason: "required"}
	}
	status := project.Status(h.Status)
	if !status.Valid() {
		return nil, &MalformedRecordError{Path: path, Field: "status", Reason: fmt.Sprintf("unknown status %q", h.Status)}
	}

	proj := &project.Project{
		ID:      h.ID,
		Title:   h.Title,
		Status:  status,
		Area:    h.Area,
		Stashed: h.Stashed,
		Tags:    h.Tags,
	}
	if h.Created != "" {
		created, err := time.ParseInLocation(time.DateOnly, h.Created, time.Local)
		if err != nil {
			return nil, &MalformedRecordError{Path: path, Field: "created", Reason: err.Error()}
		}
		proj.CreatedAt = created
	}
	return proj, nil
}

func (h *projectHeader) apply(proj *project.Project) {
	h.Title = proj.Title
	h.Status = string(proj.Status)
	h.Area = proj.Area
	h.Stashed = proj.Stashed
	h.Tags = proj.Tags
	if h.Tags == nil {
		h.Tags = []string{}
	}
}
