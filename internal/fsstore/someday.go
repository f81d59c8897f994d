package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/rpggio/gtd/internal/domain/change"
)

const somedayTemplate = "---\ntitle: Someday\n---\n"

// SomedayList appends items to Someday.md at the workspace root.
type SomedayList struct {
	ws *Workspace
}

// NewSomedayList creates a new someday list store.
func NewSomedayList(ws *Workspace) *SomedayList {
	return &SomedayList{ws: ws}
}

// Append adds "- [ ] title" under the "## YYYY-MM-DD" heading for day,
// creating the heading (right after the frontmatter) or the file as needed.
func (l *SomedayList) Append(ctx context.Context, title string, day time.Time, cs *change.Set) error {
	path := l.ws.somedayPath()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		data = []byte(somedayTemplate)
	default:
		return fmt.Errorf("reading someday list: %w", err)
	}

	content := addSomedayItem(string(data), day.Format(time.DateOnly), "- [ ] "+title)
	return writeFile(cs, path, []byte(content))
}

func addSomedayItem(content, date, entry string) string {
	heading := "## " + date
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) == heading {
			return joinInsert(lines, i+1, entry)
		}
	}

	// new heading goes right below the closing frontmatter fence
	at := 0
	if len(lines) > 0 && lines[0] == fence {
		for i := 1; i < len(lines); i++ {
			if lines[i] == fence {
				at = i + 1
				break
			}
		}
	}
	if at == 0 {
		return joinInsert(lines, 0, heading, entry, "")
	}
	return joinInsert(lines, at, "", heading, entry)
}

func joinInsert(lines []string, at int, insert ...string) string {
	out := make([]string, 0, len(lines)+len(insert))
	out = append(out, lines[:at]...)
	out = append(out, insert...)
	out = append(out, lines[at:]...)
	return strings.Join(out, "\n")
}
