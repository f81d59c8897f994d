// Package gitvc commits workspace changes to the git repository that holds
// the workspace.
package gitvc

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"go.uber.org/zap"
)

// ErrNoRepository indicates the workspace is not inside a git repository.
var ErrNoRepository = errors.New("workspace is not a git repository")

// Author identifies who commits are attributed to.
type Author struct {
	Name  string
	Email string
}

// Committer stages and commits paths relative to the workspace root.
type Committer struct {
	root   string
	author Author
	logger *zap.Logger
}

// NewCommitter creates a committer for the workspace at root.
func NewCommitter(root string, author Author, logger *zap.Logger) *Committer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Committer{root: root, author: author, logger: logger}
}

// Commit stages paths and records a commit with message. Nothing is
// committed when the paths carry no changes.
func (c *Committer) Commit(ctx context.Context, paths []string, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo, err := git.PlainOpenWithOptions(c.root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return fmt.Errorf("%w: %s", ErrNoRepository, c.root)
		}
		return fmt.Errorf("opening repository: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}

	top := wt.Filesystem.Root()
	staged := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := c.repoPath(top, p)
		if err != nil {
			return err
		}
		if err := stage(wt, filepath.Join(top, rel), rel); err != nil {
			return err
		}
		staged = append(staged, rel)
	}

	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("reading status: %w", err)
	}
	if !anyStaged(status, staged) {
		c.logger.Debug("nothing to commit", zap.String("message", message))
		return nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  c.author.Name,
			Email: c.author.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	c.logger.Debug("committed", zap.String("hash", hash.String()), zap.Strings("paths", staged))
	return nil
}

func (c *Committer) repoPath(top, p string) (string, error) {
	abs := filepath.Join(c.root, filepath.FromSlash(p))
	rel, err := filepath.Rel(top, abs)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	return filepath.ToSlash(rel), nil
}

// stage adds an existing file or records the removal of a deleted one.
func stage(wt *git.Worktree, abs, rel string) error {
	if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
		if _, err := wt.Remove(rel); err != nil && !errors.Is(err, index.ErrEntryNotFound) {
			return fmt.Errorf("staging removal of %s: %w", rel, err)
		}
		return nil
	}
	if _, err := wt.Add(rel); err != nil {
		return fmt.Errorf("staging %s: %w", rel, err)
	}
	return nil
}

func anyStaged(status git.Status, paths []string) bool {
	for _, p := range paths {
		st, ok := status[p]
		if ok && st.Staging != git.Unmodified && st.Staging != git.Untracked {
			return true
		}
	}
	return false
}

// IsRepository reports whether root lies inside a git working tree.
func IsRepository(root string) bool {
	_, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// Entry is one commit of the workspace history.
type Entry struct {
	Hash    string
	Author  string
	When    time.Time
	Subject string
}

// History reads commits from the repository holding the workspace.
type History struct {
	root string
}

// NewHistory creates a history reader for the workspace at root.
func NewHistory(root string) *History {
	return &History{root: root}
}

// Recent returns up to limit commits reachable from HEAD, newest first.
// A repository without commits has an empty history.
func (h *History) Recent(ctx context.Context, limit int) ([]Entry, error) {
	repo, err := git.PlainOpenWithOptions(h.root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNoRepository, h.root)
		}
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading HEAD: %w", err)
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()

	var out []Entry
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if limit > 0 && len(out) == limit {
			return storer.ErrStop
		}
		subject, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
		out = append(out, Entry{
			Hash:    c.Hash.String()[:7],
			Author:  c.Author.Name,
			When:    c.Author.When,
			Subject: subject,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking log: %w", err)
	}
	return out, nil
}

// Nop is a committer that records nothing, used when git is disabled.
type Nop struct{}

// Commit does nothing.
func (Nop) Commit(context.Context, []string, string) error { return nil }
