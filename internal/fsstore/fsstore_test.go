package fsstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/domain/project"
	"github.com/rpggio/gtd/internal/domain/task"
	"github.com/rpggio/gtd/internal/render"
	"github.com/rpggio/gtd/internal/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	ws       *Workspace
	projects *ProjectRepository
	tasks    *TaskRepository
	logs     *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	ws, err := NewWorkspace(t.TempDir(), zap.New(core))
	require.NoError(t, err)
	tmpl, err := render.New(nil)
	require.NoError(t, err)
	return &fixture{
		ws:       ws,
		projects: NewProjectRepository(ws, tmpl),
		tasks:    NewTaskRepository(ws, tmpl),
		logs:     logs,
	}
}

func (f *fixture) createProject(t *testing.T, id, title string) *project.Project {
	t.Helper()
	proj := &project.Project{
		ID:        id,
		Title:     title,
		Status:    project.StatusActive,
		Tags:      []string{"project"},
		CreatedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local),
		Folder:    id + "-" + project.Slugify(title),
	}
	require.NoError(t, f.projects.Create(context.Background(), proj, "Ship it.", f.ws.Begin("create")))
	return proj
}

func (f *fixture) createTask(t *testing.T, proj *project.Project, id, title string, status task.Status) *task.Task {
	t.Helper()
	tk := &task.Task{
		ID:        id,
		ProjectID: proj.ID,
		Title:     title,
		Status:    status,
		Energy:    task.EnergyMedium,
		Context:   "computer",
		CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.Local),
	}
	require.NoError(t, f.tasks.Create(context.Background(), proj, tk, f.ws.Begin("task")))
	return tk
}

func (f *fixture) write(t *testing.T, rel, content string) {
	t.Helper()
	path := filepath.Join(f.ws.Root(), filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestProjectRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createProject(t, "P001", "Launch Site")

	got, err := f.projects.Get(ctx, "P001")
	require.NoError(t, err)
	require.Equal(t, "Launch Site", got.Title)
	require.Equal(t, "launch-site", got.Name)
	require.Equal(t, "P001-launch-site", got.Folder)
	require.Equal(t, project.StatusActive, got.Status)
	require.False(t, got.Stashed)
	require.Equal(t, []string{"project"}, got.Tags)
	require.Equal(t, "2026-01-02", got.CreatedAt.Format(time.DateOnly))

	_, err = f.projects.Get(ctx, "P002")
	require.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestProjectCreateRejectsDuplicateID(t *testing.T) {
	f := newFixture(t)
	proj := f.createProject(t, "P001", "Launch")

	err := f.projects.Create(context.Background(), proj, "", f.ws.Begin("again"))
	require.True(t, errors.Is(err, repository.ErrAlreadyExists))
}

func TestProjectUpdatePreservesBodyAndUnknownKeys(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.write(t, "projects/P003-legacy/README.md", "---\nid: P003\ntitle: Legacy\nstatus: active\ncreated: 2025-06-01\nstashed: false\nowner: sam\n---\n\n# Legacy\n\nhand written\n")

	proj, err := f.projects.Get(ctx, "P003")
	require.NoError(t, err)
	proj.Status = project.StatusStashed
	proj.Stashed = true
	require.NoError(t, f.projects.Update(ctx, proj, f.ws.Begin("stash")))

	data, err := os.ReadFile(filepath.Join(f.ws.Root(), "projects/P003-legacy/README.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "owner: sam")
	require.Contains(t, string(data), "stashed: true")
	require.Contains(t, string(data), "hand written")

	got, err := f.projects.Get(ctx, "P003")
	require.NoError(t, err)
	require.Equal(t, project.StatusStashed, got.Status)
	require.True(t, got.Stashed)
}

func TestProjectListSkipsMalformed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createProject(t, "P002", "Second")
	f.createProject(t, "P001", "First")
	f.write(t, "projects/P009-broken/README.md", "---\nid: P009\ntitle: Broken\nstatus: paused\n---\n")
	f.write(t, "projects/notes/README.md", "not a project")

	list, err := f.projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "P001", list[0].ID)
	require.Equal(t, "P002", list[1].ID)
	require.Equal(t, 1, f.logs.FilterMessage("skipping project").Len())

	_, err = f.projects.Get(ctx, "P009")
	var malformed *MalformedRecordError
	require.True(t, errors.As(err, &malformed))
	require.Equal(t, "status", malformed.Field)
	require.True(t, errors.Is(err, repository.ErrMalformedRecord))
}

func TestAddTaskRefIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	proj := f.createProject(t, "P001", "Launch")
	ref := project.TaskRef{ID: "K001", Title: "Write copy", Status: "inbox"}

	added, err := f.projects.AddTaskRef(ctx, proj, ref, f.ws.Begin("ref"))
	require.NoError(t, err)
	require.True(t, added)

	added, err = f.projects.AddTaskRef(ctx, proj, ref, f.ws.Begin("ref"))
	require.NoError(t, err)
	require.False(t, added)

	data, err := os.ReadFile(filepath.Join(f.ws.Root(), "projects/P001-launch/README.md"))
	require.NoError(t, err)
	require.Contains(t, string(data), "## Tasks\n- [ ] [[tasks/K001|K001]]: Write copy #inbox\n")
}

func TestAddTaskRefAppendsMissingSection(t *testing.T) {
	require.Equal(t,
		"# P\n\n## Tasks\n- [ ] x\n",
		insertTaskLine("# P", "- [ ] x"),
	)
	require.Equal(t,
		"## Tasks\n- [ ] b\n- [ ] a\n",
		insertTaskLine("## Tasks\n- [ ] a\n", "- [ ] b"),
	)
}

func TestTaskRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	proj := f.createProject(t, "P001", "Launch")
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.Local)

	tk := &task.Task{
		ID:        "K001",
		ProjectID: "P001",
		Title:     "Write copy!",
		Status:    task.StatusNext,
		Energy:    task.EnergyHigh,
		Due:       &due,
		Context:   "desk",
		Tags:      []string{"writing"},
		Notes:     "draft first",
		CreatedAt: time.Date(2026, 1, 3, 0, 0, 0, 0, time.Local),
	}
	require.NoError(t, f.tasks.Create(ctx, proj, tk, f.ws.Begin("task")))
	require.Equal(t, "projects/P001-launch/tasks/K001-write-copy.md", tk.Path)

	got, err := f.tasks.Get(ctx, "K001")
	require.NoError(t, err)
	require.Equal(t, "Write copy!", got.Title)
	require.Equal(t, task.StatusNext, got.Status)
	require.Equal(t, task.EnergyHigh, got.Energy)
	require.NotNil(t, got.Due)
	require.Equal(t, "2026-02-01", got.Due.Format(time.DateOnly))
	require.Equal(t, []string{"writing"}, got.Tags)
	require.Equal(t, "draft first", got.Notes)
	require.Equal(t, tk.Path, got.Path)
	require.False(t, got.ModifiedAt.IsZero())

	_, err = f.tasks.Get(ctx, "K002")
	require.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestTaskListOrdersAndFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1 := f.createProject(t, "P001", "One")
	p2 := f.createProject(t, "P002", "Two")
	f.createTask(t, p1, "K003", "Third", task.StatusInbox)
	f.createTask(t, p2, "K002", "Second", task.StatusNext)
	f.createTask(t, p1, "K001", "First", task.StatusWaiting)
	f.write(t, "projects/P001-one/tasks/K004-bad.md", "---\nid: K004\nproject: P001\ntitle: Bad\nstatus: someday\n---\n")
	f.write(t, "projects/P001-one/tasks/K005-nofm.md", "just text")

	all, err := f.tasks.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, []string{"K001", "K002", "K003"}, []string{all[0].ID, all[1].ID, all[2].ID})
	require.Equal(t, 2, f.logs.FilterMessage("skipping task record").Len())

	own, err := f.tasks.List(ctx, "P001")
	require.NoError(t, err)
	require.Len(t, own, 2)
}

func TestListOrdersIDsNumerically(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p999 := f.createProject(t, "P999", "Old")
	f.createProject(t, "P1000", "New")
	f.createTask(t, p999, "K1000", "Wide", task.StatusNext)
	f.createTask(t, p999, "K999", "Narrow", task.StatusNext)

	tasks, err := f.tasks.List(ctx, "")
	require.NoError(t, err)
	require.Equal(t, []string{"K999", "K1000"}, []string{tasks[0].ID, tasks[1].ID})

	projects, err := f.projects.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"P999", "P1000"}, []string{projects[0].ID, projects[1].ID})
}

func TestLegacyTaskWithoutOptionalFields(t *testing.T) {
	f := newFixture(t)
	f.write(t, "projects/P001-one/tasks/K007-old.md", "---\nid: K007\nproject: P001\ntitle: Old\nstatus: later\ndue:\ntags: []\ncreated: 2025-11-30\n---\n# Old\n")

	got, err := f.tasks.Get(context.Background(), "K007")
	require.NoError(t, err)
	require.Nil(t, got.Due)
	require.Equal(t, task.EnergyMedium, got.Energy)
	require.Equal(t, "2025-11-30", got.CreatedAt.Format(time.DateOnly))
}

func TestRollbackRemovesCreatedTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	proj := f.createProject(t, "P001", "Launch")

	cs := f.ws.Begin("task")
	tk := &task.Task{ID: "K001", ProjectID: "P001", Title: "Temp", Status: task.StatusInbox, Energy: task.EnergyLow, CreatedAt: time.Now()}
	require.NoError(t, f.tasks.Create(ctx, proj, tk, cs))
	_, err := f.projects.AddTaskRef(ctx, proj, project.TaskRef{ID: "K001", Title: "Temp", Status: "inbox"}, cs)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{tk.Path, "projects/P001-launch/README.md"}, cs.Paths())

	require.NoError(t, cs.Rollback())
	_, err = f.tasks.Get(ctx, "K001")
	require.True(t, errors.Is(err, repository.ErrNotFound))

	data, err := os.ReadFile(filepath.Join(f.ws.Root(), "projects/P001-launch/README.md"))
	require.NoError(t, err)
	require.NotContains(t, string(data), "K001")
}

func TestPointerStore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ptr := NewPointerStore(f.ws)

	id, err := ptr.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, id)

	require.NoError(t, ptr.Save(ctx, "P004", f.ws.Begin("switch")))
	id, err = ptr.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "P004", id)

	cs := f.ws.Begin("switch again")
	require.NoError(t, ptr.Save(ctx, "P004", cs))
	require.True(t, cs.Empty())

	require.NoError(t, ptr.Save(ctx, "", f.ws.Begin("stash")))
	id, err = ptr.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, id)
}

func TestStashIndex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	idx := NewStashIndex(f.ws)
	proj := f.createProject(t, "P002", "Parked")

	entries, err := idx.List(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)

	require.NoError(t, idx.Put(ctx, proj, f.ws.Begin("stash")))
	data, err := os.ReadFile(filepath.Join(f.ws.Root(), "projects/P000-STASH/P002.md"))
	require.NoError(t, err)
	require.Equal(t, "↑ Project: [[P002-parked/README|P002]]\n\n", string(data))

	entries, err = idx.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "P002", entries[0].ProjectID)
	require.Equal(t, "P002-parked/README", entries[0].Link)
	require.WithinDuration(t, time.Now(), entries[0].StashedAt, time.Minute)

	cs := f.ws.Begin("recall")
	require.NoError(t, idx.Remove(ctx, "P002", cs))
	require.Equal(t, []string{"projects/P000-STASH/P002.md"}, cs.Paths())
	entries, err = idx.List(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)

	// removing a missing entry is a no-op
	cs = f.ws.Begin("recall")
	require.NoError(t, idx.Remove(ctx, "P002", cs))
	require.True(t, cs.Empty())
}

func TestStashPutRefreshesTimestamp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	idx := NewStashIndex(f.ws)
	proj := f.createProject(t, "P002", "Parked")

	require.NoError(t, idx.Put(ctx, proj, f.ws.Begin("stash")))
	path := filepath.Join(f.ws.Root(), "projects/P000-STASH/P002.md")
	old := time.Now().Add(-30 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	require.NoError(t, idx.Put(ctx, proj, f.ws.Begin("stash")))
	entries, err := idx.List(ctx)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), entries[0].StashedAt, time.Minute)
}

func TestScanner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	scanner := NewScanner(f.ws)
	p1 := f.createProject(t, "P001", "One")
	f.createProject(t, "P012", "Twelve")
	f.createTask(t, p1, "K004", "Four", task.StatusInbox)
	f.write(t, "projects/P001-one/tasks/Kabc-x.md", "")
	f.write(t, "projects/P001-one/tasks/K0005-x.md", "")

	tokens, err := scanner.ScanIDs(ctx, ident.PrefixProject)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"P001", "P012"}, tokens)

	tokens, err = scanner.ScanIDs(ctx, ident.PrefixTask)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"K004", "Kabc", "K0005"}, tokens)

	_, err = scanner.ScanIDs(ctx, ident.Prefix("X"))
	require.True(t, errors.Is(err, ident.ErrUnknownPrefix))
}

func TestSomedayAppend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	list := NewSomedayList(f.ws)
	day := time.Date(2026, 3, 4, 9, 0, 0, 0, time.Local)

	require.NoError(t, list.Append(ctx, "Learn Go", day, f.ws.Begin("later")))
	require.NoError(t, list.Append(ctx, "Read book", day, f.ws.Begin("later")))
	require.NoError(t, list.Append(ctx, "Paint", day.AddDate(0, 0, 1), f.ws.Begin("later")))

	data, err := os.ReadFile(filepath.Join(f.ws.Root(), "Someday.md"))
	require.NoError(t, err)
	require.Equal(t,
		"---\ntitle: Someday\n---\n\n## 2026-03-05\n- [ ] Paint\n\n## 2026-03-04\n- [ ] Read book\n- [ ] Learn Go\n",
		string(data),
	)
}

func TestWorkspaceRejectsEmptyRoot(t *testing.T) {
	_, err := NewWorkspace("", nil)
	require.Error(t, err)
}

func TestChangeSetStaysInsideRoot(t *testing.T) {
	f := newFixture(t)
	cs := f.ws.Begin("escape")
	err := cs.Track(filepath.Join(f.ws.Root(), "..", "outside.md"))
	require.True(t, errors.Is(err, change.ErrOutsideRoot))
}
