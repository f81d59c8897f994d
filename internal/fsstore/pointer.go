package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/rpggio/gtd/internal/domain/change"
)

// PointerStore keeps the active project id in the .active file.
type PointerStore struct {
	ws *Workspace
}

// NewPointerStore creates a new pointer store.
func NewPointerStore(ws *Workspace) *PointerStore {
	return &PointerStore{ws: ws}
}

// Load returns the active project id, or "" when the file is missing or empty.
func (p *PointerStore) Load(ctx context.Context) (string, error) {
	data, err := os.ReadFile(p.ws.activePath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading active pointer: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes id, or empties the pointer when id is "".
func (p *PointerStore) Save(ctx context.Context, id string, cs *change.Set) error {
	return writeFile(cs, p.ws.activePath(), []byte(id))
}
