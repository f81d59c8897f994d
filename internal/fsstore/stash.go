package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/rpggio/gtd/internal/domain/change"
	"github.com/rpggio/gtd/internal/domain/ident"
	"github.com/rpggio/gtd/internal/domain/project"
	"go.uber.org/zap"
)

var wikiLink = regexp.MustCompile(`\[\[([^|\]]+)\|([^|\]]+)\]\]`)

// StashIndex keeps one reference file per stashed project under
// projects/P000-STASH. The file's mtime is the stash time.
type StashIndex struct {
	ws *Workspace
}

// NewStashIndex creates a new stash index.
func NewStashIndex(ws *Workspace) *StashIndex {
	return &StashIndex{ws: ws}
}

// Put writes the reference for proj, refreshing its timestamp.
func (s *StashIndex) Put(ctx context.Context, proj *project.Project, cs *change.Set) error {
	if err := cs.MkdirAll(s.ws.stashDir()); err != nil {
		return err
	}
	content := fmt.Sprintf("↑ Project: [[%s/README|%s]]\n\n", proj.Folder, proj.ID)
	return forceWrite(cs, s.entryPath(proj.ID), []byte(content))
}

// Remove deletes the reference for projectID if there is one.
func (s *StashIndex) Remove(ctx context.Context, projectID string, cs *change.Set) error {
	return removeFile(cs, s.entryPath(projectID))
}

// List returns every stash reference ordered by project ID.
func (s *StashIndex) List(ctx context.Context) ([]project.StashEntry, error) {
	entries, err := os.ReadDir(s.ws.stashDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading stash index: %w", err)
	}

	var out []project.StashEntry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") {
			continue
		}
		id := strings.TrimSuffix(name, ".md")
		if _, ok := ident.Parse(ident.PrefixProject, id); !ok {
			continue
		}

		path := filepath.Join(s.ws.stashDir(), name)
		info, err := entry.Info()
		if err != nil {
			s.ws.logger.Warn("skipping stash entry", zap.String("path", s.ws.rel(path)), zap.Error(err))
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			s.ws.logger.Warn("skipping stash entry", zap.String("path", s.ws.rel(path)), zap.Error(err))
			continue
		}

		link := ""
		if m := wikiLink.FindStringSubmatch(string(data)); m != nil {
			link = m[1]
		}
		out = append(out, project.StashEntry{
			ProjectID: id,
			Link:      link,
			StashedAt: info.ModTime(),
		})
	}

	slices.SortFunc(out, func(a, b project.StashEntry) int {
		return ident.Compare(ident.PrefixProject, a.ProjectID, b.ProjectID)
	})
	return out, nil
}

func (s *StashIndex) entryPath(projectID string) string {
	return filepath.Join(s.ws.stashDir(), projectID+".md")
}
