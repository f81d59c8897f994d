package health

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/gtd/internal/domain/task"
)

// NoAlertsLine is the whole report when nothing needs attention.
const NoAlertsLine = "✅ GTD Health: No alerts"

const rule = "=================================================="

var icons = map[Kind]string{
	KindWaitingStale:  "⏰",
	KindNextStale:     "🎯",
	KindStashStale:    "📦",
	KindInboxOverflow: "📥",
}

var headings = map[Kind]string{
	KindWaitingStale:  fmt.Sprintf("Waiting > %d days", WaitingThresholdDays),
	KindNextStale:     fmt.Sprintf("Next > %d days", NextThresholdDays),
	KindStashStale:    fmt.Sprintf("Stashed > %d days", StashThresholdDays),
	KindInboxOverflow: fmt.Sprintf("Inbox > %d tasks", InboxLimit),
}

var statusIcons = map[task.Status]string{
	task.StatusInbox:   "📥",
	task.StatusNext:    "▶️",
	task.StatusWaiting: "⏸️",
	task.StatusLater:   "📅",
	task.StatusDone:    "✅",
}

// FormatLine renders one alert.
func FormatLine(a Alert) string {
	icon := icons[a.Kind]
	if a.Kind == KindInboxOverflow {
		return fmt.Sprintf("%s inbox: %s", icon, a.Message)
	}
	return fmt.Sprintf("%s %s: %s (%d days) - %s", icon, a.Link, a.Title, a.AgeDays, a.Message)
}

// Render produces the textual report, grouped by rule.
func Render(now time.Time, alerts []Alert) string {
	if len(alerts) == 0 {
		return NoAlertsLine + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ GTD Health Alerts - %s\n", now.Format(time.DateOnly))
	b.WriteString(rule + "\n")

	for _, kind := range Kinds {
		var group []Alert
		for _, a := range alerts {
			if a.Kind == kind {
				group = append(group, a)
			}
		}
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s %s\n", icons[kind], headings[kind])
		for _, a := range group {
			b.WriteString(FormatLine(a) + "\n")
		}
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString("💡 Actions:\n")
	b.WriteString("   ':unblock K00X' - Update waiting task\n")
	b.WriteString("   ':demote K00X later' - Demote next task\n")
	b.WriteString("   ':recall P00X' - Recall stashed project\n")
	b.WriteString("   ':gtd' - Show full dashboard\n")
	return b.String()
}

// RenderDashboard renders task counts by status followed by the alert report.
func RenderDashboard(now time.Time, d Dashboard) string {
	var b strings.Builder
	b.WriteString("📊 GTD Health Dashboard\n")
	b.WriteString(rule + "\n\n")
	b.WriteString("📋 Tasks by Status:\n")
	for _, status := range task.Statuses {
		fmt.Fprintf(&b, "   %s %s: %d\n", statusIcons[status], status, d.Counts[status])
	}
	b.WriteString("\n")
	b.WriteString(Render(now, d.Alerts))
	return b.String()
}
