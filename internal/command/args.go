package command

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var projectToken = regexp.MustCompile(`^P\d+$`)

// inline holds the key:value, #tag, @context and P00X tokens pulled out of
// a command line. Whatever is left joins into Title.
type inline struct {
	Title     string
	ProjectID string
	Tags      []string
	Context   string
	Energy    string
	Status    string
	Area      string
	Due       *time.Time
	Limit     int
}

func parseInline(args []string) (inline, error) {
	var in inline
	var words []string
	for _, tok := range strings.Fields(strings.Join(args, " ")) {
		switch {
		case projectToken.MatchString(tok) && in.ProjectID == "":
			in.ProjectID = tok
		case len(tok) > 1 && tok[0] == '#':
			in.Tags = append(in.Tags, tok[1:])
		case len(tok) > 1 && tok[0] == '@':
			in.Context = tok[1:]
		default:
			key, value, ok := strings.Cut(tok, ":")
			if !ok || value == "" || !isInlineKey(key) {
				words = append(words, tok)
				continue
			}
			if err := in.set(key, value); err != nil {
				return inline{}, err
			}
		}
	}
	in.Title = strings.Join(words, " ")
	return in, nil
}

func isInlineKey(key string) bool {
	switch key {
	case "energy", "status", "area", "due", "limit":
		return true
	}
	return false
}

func (in *inline) set(key, value string) error {
	switch key {
	case "energy":
		in.Energy = value
	case "status":
		in.Status = value
	case "area":
		in.Area = value
	case "due":
		day, err := time.ParseInLocation(time.DateOnly, value, time.Local)
		if err != nil {
			return fmt.Errorf("%w: due date %q is not YYYY-MM-DD", ErrUsage, value)
		}
		in.Due = &day
	case "limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: limit %q is not a positive number", ErrUsage, value)
		}
		in.Limit = n
	}
	return nil
}

// splitReply pulls a leading --reply=<r> or --reply <r> argument off args.
func splitReply(args []string) (string, []string) {
	if len(args) == 0 {
		return "", args
	}
	if r, ok := strings.CutPrefix(args[0], "--reply="); ok {
		return r, args[1:]
	}
	if args[0] == "--reply" && len(args) > 1 {
		return args[1], args[2:]
	}
	return "", args
}
