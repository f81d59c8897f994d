package task

import "time"

// Status is the GTD workflow state of a task
type Status string

const (
	StatusInbox   Status = "inbox"
	StatusNext    Status = "next"
	StatusWaiting Status = "waiting"
	StatusLater   Status = "later"
	StatusDone    Status = "done"
)

// Statuses lists every status in dashboard order.
var Statuses = []Status{StatusInbox, StatusNext, StatusWaiting, StatusLater, StatusDone}

// Valid reports whether s is a known task status.
func (s Status) Valid() bool {
	switch s {
	case StatusInbox, StatusNext, StatusWaiting, StatusLater, StatusDone:
		return true
	}
	return false
}

// Energy is the effort level a task needs
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// Valid reports whether e is a known energy level.
func (e Energy) Valid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	}
	return false
}

// Task is a single actionable item owned by a project
type Task struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	Title      string     `json:"title"`
	Status     Status     `json:"status"`
	Energy     Energy     `json:"energy"`
	Due        *time.Time `json:"due,omitempty"`
	Context    string     `json:"context,omitempty"`
	Tags       []string   `json:"tags,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ModifiedAt time.Time  `json:"modified_at"`
	// Path is the record location relative to the workspace root.
	Path string `json:"path"`
}
