package health

import (
	"fmt"
	"time"

	"github.com/rpggio/gtd/internal/domain/task"
)

const day = 24 * time.Hour

// AgeDays returns the number of whole days between from and now. Timestamps
// in the future count as zero.
func AgeDays(from, now time.Time) int {
	d := now.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / day)
}

// Compute derives alerts from the current record set. It performs no I/O.
func Compute(now time.Time, tasks []TaskSnapshot, stashes []StashSnapshot) []Alert {
	var alerts []Alert
	alerts = append(alerts, agingTasks(now, tasks, task.StatusWaiting, WaitingThresholdDays, KindWaitingStale, "Waiting")...)
	alerts = append(alerts, agingTasks(now, tasks, task.StatusNext, NextThresholdDays, KindNextStale,
		fmt.Sprintf("Next > %d days → break down or demote?", NextThresholdDays))...)
	alerts = append(alerts, staleStashes(now, stashes)...)
	if a, ok := inboxOverflow(tasks); ok {
		alerts = append(alerts, a)
	}
	return alerts
}

func agingTasks(now time.Time, tasks []TaskSnapshot, status task.Status, threshold int, kind Kind, reason string) []Alert {
	var alerts []Alert
	for _, t := range tasks {
		if t.Status != status {
			continue
		}
		age := AgeDays(t.ModifiedAt, now)
		if age <= threshold {
			continue
		}
		alerts = append(alerts, Alert{
			Kind:      kind,
			SubjectID: t.ID,
			Title:     t.Title,
			Link:      t.Link,
			AgeDays:   age,
			Message:   reason,
		})
	}
	return alerts
}

func staleStashes(now time.Time, stashes []StashSnapshot) []Alert {
	var alerts []Alert
	for _, s := range stashes {
		age := AgeDays(s.StashedAt, now)
		if age <= StashThresholdDays {
			continue
		}
		alerts = append(alerts, Alert{
			Kind:      KindStashStale,
			SubjectID: s.ProjectID,
			Title:     s.Title,
			Link:      s.Link,
			AgeDays:   age,
			Message:   "Stashed → recall?",
		})
	}
	return alerts
}

func inboxOverflow(tasks []TaskSnapshot) (Alert, bool) {
	count := 0
	for _, t := range tasks {
		if t.Status == task.StatusInbox {
			count++
		}
	}
	if count <= InboxLimit {
		return Alert{}, false
	}
	return Alert{
		Kind:    KindInboxOverflow,
		Count:   count,
		Message: fmt.Sprintf("%d tasks in inbox - Consider triage", count),
	}, true
}

// ExitCode maps an alert list to a process status: zero when healthy.
func ExitCode(alerts []Alert) int {
	if len(alerts) == 0 {
		return 0
	}
	return 1
}
