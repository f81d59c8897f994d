package aside

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidReply indicates a reply that matches no legend entry.
var ErrInvalidReply = errors.New("invalid aside reply")

// Action is the decision a reply expresses.
type Action int

const (
	ActionAcceptAll Action = iota
	ActionSkipAll
	ActionEdit
	ActionAcceptSubset
	ActionRedirect
)

// Reply is a parsed answer to the confirmation prompt.
type Reply struct {
	Action Action
	// Indices are 1-based item numbers for ActionAcceptSubset and ActionRedirect.
	Indices []int
	// ProjectID is the new destination for ActionRedirect.
	ProjectID string
}

var (
	subsetReply   = regexp.MustCompile(`^(\d+(?:\s*[, ]\s*\d+)*)\s+only$`)
	redirectReply = regexp.MustCompile(`^(\d+)\s+to\s+(P\d+)$`)
	indexSplit    = regexp.MustCompile(`[,\s]+`)
)

// ParseReply interprets reply against a prompt listing n asides.
func ParseReply(reply string, n int) (Reply, error) {
	r := strings.TrimSpace(reply)
	lower := strings.ToLower(r)

	switch lower {
	case "y", "yes":
		return Reply{Action: ActionAcceptAll}, nil
	case "n", "no", "skip":
		return Reply{Action: ActionSkipAll}, nil
	case "edit":
		return Reply{Action: ActionEdit}, nil
	}

	if m := subsetReply.FindStringSubmatch(lower); m != nil {
		var indices []int
		for _, tok := range indexSplit.Split(strings.TrimSpace(m[1]), -1) {
			i, err := checkIndex(tok, n)
			if err != nil {
				return Reply{}, err
			}
			if !slices.Contains(indices, i) {
				indices = append(indices, i)
			}
		}
		return Reply{Action: ActionAcceptSubset, Indices: indices}, nil
	}

	if m := redirectReply.FindStringSubmatch(r); m != nil {
		i, err := checkIndex(m[1], n)
		if err != nil {
			return Reply{}, err
		}
		return Reply{Action: ActionRedirect, Indices: []int{i}, ProjectID: m[2]}, nil
	}

	return Reply{}, fmt.Errorf("%w: %q", ErrInvalidReply, reply)
}

func checkIndex(tok string, n int) (int, error) {
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an item number", ErrInvalidReply, tok)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("%w: item %d out of range 1-%d", ErrInvalidReply, i, n)
	}
	return i, nil
}

// Capture is one aside selected for capture with its destination. An empty
// ProjectID on a defer-project capture means the active project.
type Capture struct {
	Aside     Aside
	ProjectID string
}

// Plan applies reply to asides. Skip and edit replies select nothing.
func Plan(asides []Aside, reply Reply) []Capture {
	var out []Capture
	switch reply.Action {
	case ActionAcceptAll:
		for _, a := range asides {
			out = append(out, Capture{Aside: a, ProjectID: ProjectRef(a.Text)})
		}
	case ActionAcceptSubset:
		for _, i := range reply.Indices {
			a := asides[i-1]
			out = append(out, Capture{Aside: a, ProjectID: ProjectRef(a.Text)})
		}
	case ActionRedirect:
		for i, a := range asides {
			c := Capture{Aside: a, ProjectID: ProjectRef(a.Text)}
			if i+1 == reply.Indices[0] {
				c.Aside.Type = TypeDeferProject
				c.ProjectID = reply.ProjectID
			}
			out = append(out, c)
		}
	}
	return out
}
