package project

import (
	"strings"
	"time"
)

// Status is the lifecycle tag of a project.
type Status string

const (
	StatusActive  Status = "active"
	StatusStashed Status = "stashed"
	StatusFuture  Status = "future"
)

// Valid reports whether s is a known project status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusStashed, StatusFuture:
		return true
	}
	return false
}

// Project is a folder of tasks with an index document.
type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Status     Status    `json:"status"`
	Area       string    `json:"area,omitempty"`
	Stashed    bool      `json:"stashed"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	Folder     string    `json:"folder"`
	ModifiedAt time.Time `json:"modified_at"`
}

// TaskRef is one line of a project's task list.
type TaskRef struct {
	ID     string
	Title  string
	Status string
}

// StashEntry is a reference record left behind when a project is stashed.
type StashEntry struct {
	ProjectID string    `json:"project_id"`
	Link      string    `json:"link"`
	StashedAt time.Time `json:"stashed_at"`
}

const maxSlugLen = 50

// Slugify turns a title into a lowercase, dash separated file name fragment.
func Slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		slug = "untitled"
	}
	return slug
}
