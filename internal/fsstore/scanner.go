package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rpggio/gtd/internal/domain/ident"
)

// Scanner lists the identifier tokens present on disk.
type Scanner struct {
	ws *Workspace
}

// NewScanner creates a new identifier scanner.
func NewScanner(ws *Workspace) *Scanner {
	return &Scanner{ws: ws}
}

// ScanIDs returns the leading "{prefix}..." token of every project folder
// (P) or task file (K). Tokens are returned as found; the caller filters
// malformed ones.
func (s *Scanner) ScanIDs(ctx context.Context, prefix ident.Prefix) ([]string, error) {
	switch prefix {
	case ident.PrefixProject:
		return s.projectTokens()
	case ident.PrefixTask:
		return s.taskTokens()
	}
	return nil, fmt.Errorf("%w: %q", ident.ErrUnknownPrefix, prefix)
}

func (s *Scanner) projectTokens() ([]string, error) {
	entries, err := os.ReadDir(s.ws.projectsDir())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading projects directory: %w", err)
	}
	var tokens []string
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == stashDirName {
			continue
		}
		if strings.HasPrefix(entry.Name(), string(ident.PrefixProject)) {
			tokens = append(tokens, folderID(entry.Name()))
		}
	}
	return tokens, nil
}

func (s *Scanner) taskTokens() ([]string, error) {
	var tokens []string
	err := filepath.WalkDir(s.ws.projectsDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasPrefix(d.Name(), string(ident.PrefixTask)) {
			return nil
		}
		if id := recordID(d.Name()); id != "" {
			tokens = append(tokens, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning task files: %w", err)
	}
	return tokens, nil
}
