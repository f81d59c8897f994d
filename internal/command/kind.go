package command

import (
	"fmt"
	"strings"
)

// Kind names one command of the closed command set.
type Kind int

const (
	KindAdd Kind = iota
	KindDefer
	KindLater
	KindStash
	KindSwitch
	KindStashed
	KindFuture
	KindAlerts
	KindGTD
	KindAsides
	KindNewProject
	KindTasks
	KindLog
	KindViz
)

type kindInfo struct {
	name    string
	aliases []string
	usage   string
	short   string
}

var kinds = [...]kindInfo{
	KindAdd:        {name: "add", usage: "add <title> [P00X] [#tag] [@context] [energy:low|medium|high] [due:YYYY-MM-DD] [status:inbox|next|waiting|later]", short: "Create a task in the active or named project"},
	KindDefer:      {name: "defer", usage: "defer <title> [P00X]", short: "Create a task with status later"},
	KindLater:      {name: "later", usage: "later <item>", short: "Add an item to the Someday list"},
	KindStash:      {name: "stash", usage: "stash", short: "Park the active project"},
	KindSwitch:     {name: "switch", aliases: []string{"recall"}, usage: "switch <P00X>", short: "Make a project active, recalling it from the stash"},
	KindStashed:    {name: "stashed", usage: "stashed", short: "List stashed projects"},
	KindFuture:     {name: "future", usage: "future", short: "List future projects"},
	KindAlerts:     {name: "alerts", usage: "alerts", short: "Report stale tasks, stale stashes and inbox overflow"},
	KindGTD:        {name: "gtd", aliases: []string{"status"}, usage: "gtd", short: "Show task counts by status and alerts"},
	KindAsides:     {name: "asides", usage: "asides [--reply=<reply>] <text>", short: "Detect asides in text and optionally capture them"},
	KindNewProject: {name: "new-project", usage: "new-project <title> [status:active|future|stashed] [area:<area>] [#tag]", short: "Create a project"},
	KindTasks:      {name: "tasks", usage: "tasks [P00X]", short: "List tasks, optionally for one project"},
	KindLog:        {name: "log", usage: "log [P00X] [limit:N]", short: "Show the activity journal"},
	KindViz:        {name: "viz", usage: "viz [limit:N]", short: "Show recent workspace commits"},
}

// Kinds returns every command kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	for i := range kinds {
		out[i] = Kind(i)
	}
	return out
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kinds)
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kinds[k].name
}

// Aliases lists the alternative names of k.
func (k Kind) Aliases() []string {
	if !k.valid() {
		return nil
	}
	return kinds[k].aliases
}

// Usage is the one-line argument synopsis of k.
func (k Kind) Usage() string {
	if !k.valid() {
		return ""
	}
	return kinds[k].usage
}

// Short is a one-line description of k.
func (k Kind) Short() string {
	if !k.valid() {
		return ""
	}
	return kinds[k].short
}

// ParseKind resolves a command name or alias. A leading ':' is accepted.
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ":"))
	for i, info := range kinds {
		if info.name == name {
			return Kind(i), nil
		}
		for _, alias := range info.aliases {
			if alias == name {
				return Kind(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}
