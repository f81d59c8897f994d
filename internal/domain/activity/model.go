package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeProjectCreated   ActivityType = "project_created"
	TypeProjectSwitched  ActivityType = "project_switched"
	TypeProjectStashed   ActivityType = "project_stashed"
	TypeTaskCreated      ActivityType = "task_created"
	TypeSomedayAdded     ActivityType = "someday_added"
	TypeCommitFailed     ActivityType = "commit_failed"
	TypeChangeRolledBack ActivityType = "change_rolled_back"
)

// ActivityEntry represents an event in the activity journal
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    string       `json:"project_id,omitempty"`
	SubjectID    *string      `json:"subject_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"`
	ChangeID     string       `json:"change_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
