package change

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Set is a pending change descriptor: the files a mutation touched, with
// enough prior state to undo it.
type Set struct {
	ID        string
	Message   string
	CreatedAt time.Time

	root    string
	entries []entry
	dirs    []string
}

type entry struct {
	path    string
	existed bool
	prior   []byte
	mode    fs.FileMode
}

// NewSet starts an empty change set rooted at root.
func NewSet(root, message string) *Set {
	return &Set{
		ID:        uuid.NewString(),
		Message:   message,
		CreatedAt: time.Now(),
		root:      filepath.Clean(root),
	}
}

// Track snapshots path before it is written or removed. Tracking the same
// path twice keeps the first snapshot.
func (s *Set) Track(path string) error {
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}
	for _, e := range s.entries {
		if e.path == abs {
			return nil
		}
	}

	e := entry{path: abs}
	info, err := os.Stat(abs)
	switch {
	case err == nil:
		data, err := os.ReadFile(abs)
		if err != nil {
			return fmt.Errorf("snapshot %s: %w", abs, err)
		}
		e.existed = true
		e.prior = data
		e.mode = info.Mode().Perm()
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("stat %s: %w", abs, err)
	}

	s.entries = append(s.entries, e)
	return nil
}

// MkdirAll creates dir and records every directory it had to create, so a
// rollback can remove them again.
func (s *Set) MkdirAll(dir string) error {
	abs, err := s.resolve(dir)
	if err != nil {
		return err
	}

	var missing []string
	for d := abs; d != s.root && d != filepath.Dir(d); d = filepath.Dir(d) {
		if _, err := os.Stat(d); err == nil {
			break
		}
		missing = append(missing, d)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", abs, err)
	}
	// deepest last, so rollback can walk the slice backwards
	slices.Reverse(missing)
	s.dirs = append(s.dirs, missing...)
	return nil
}

// Paths returns the tracked files relative to the workspace root.
func (s *Set) Paths() []string {
	paths := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		rel, err := filepath.Rel(s.root, e.path)
		if err != nil {
			continue
		}
		paths = append(paths, filepath.ToSlash(rel))
	}
	return paths
}

// Root returns the workspace root the set is relative to.
func (s *Set) Root() string {
	return s.root
}

// Empty reports whether nothing was tracked.
func (s *Set) Empty() bool {
	return len(s.entries) == 0
}

// Rollback restores every tracked path to its snapshot, newest first, and
// removes directories the set created.
func (s *Set) Rollback() error {
	var errs []error
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.existed {
			if err := os.WriteFile(e.path, e.prior, e.mode); err != nil {
				errs = append(errs, fmt.Errorf("restore %s: %w", e.path, err))
			}
			continue
		}
		if err := os.Remove(e.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("remove %s: %w", e.path, err))
		}
	}
	for i := len(s.dirs) - 1; i >= 0; i-- {
		// only empty directories go; anything else was not ours
		_ = os.Remove(s.dirs[i])
	}
	return errors.Join(errs...)
}

// Abort rolls the set back after a failed mutation and returns cause,
// joined with the rollback error if undoing failed too.
func (s *Set) Abort(cause error) error {
	if err := s.Rollback(); err != nil {
		return errors.Join(cause, fmt.Errorf("rollback %q: %w", s.Message, err))
	}
	return cause
}

func (s *Set) resolve(path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(s.root, path)
	}
	abs = filepath.Clean(abs)
	rel, err := filepath.Rel(s.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, path)
	}
	return abs, nil
}
