package health

import (
	"time"

	"github.com/rpggio/gtd/internal/domain/task"
)

// Fixed thresholds. Ages compare with a strict greater-than on whole days.
const (
	WaitingThresholdDays = 3
	NextThresholdDays    = 7
	StashThresholdDays   = 7
	InboxLimit           = 10
)

// Kind identifies the rule that produced an alert.
type Kind string

const (
	KindWaitingStale  Kind = "waiting-stale"
	KindNextStale     Kind = "next-stale"
	KindStashStale    Kind = "stash-stale"
	KindInboxOverflow Kind = "inbox-overflow"
)

// Kinds lists the rules in evaluation order.
var Kinds = []Kind{KindWaitingStale, KindNextStale, KindStashStale, KindInboxOverflow}

// Alert is a derived, never persisted, health finding.
type Alert struct {
	Kind      Kind   `json:"kind"`
	SubjectID string `json:"subject_id,omitempty"`
	Title     string `json:"title,omitempty"`
	Link      string `json:"link,omitempty"`
	AgeDays   int    `json:"age_days"`
	Count     int    `json:"count,omitempty"`
	Message   string `json:"message"`
}

// TaskSnapshot is the slice of a task record the rules look at.
type TaskSnapshot struct {
	ID         string
	Title      string
	Status     task.Status
	Link       string
	ModifiedAt time.Time
}

// StashSnapshot is a stash index entry with its timestamp.
type StashSnapshot struct {
	ProjectID string
	Title     string
	Link      string
	StashedAt time.Time
}

// Dashboard summarizes task counts by status together with current alerts.
type Dashboard struct {
	Counts map[task.Status]int
	Alerts []Alert
}
