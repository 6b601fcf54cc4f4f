package todo

import (
	"regexp"
	"strings"
)

// Task is one actionable item of a TaskList.
type Task struct {
	ID          string   `json:"id"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Project     string   `json:"project,omitempty"`

	seq uint64
}

// Line returns the canonical todo.txt form of the task.
func (t Task) Line() string { return Encode(t) }

var markerRegex = regexp.MustCompile(`^(x |\([A-Z]\) )`)

// cleanDescription trims the description and checks that it is a single,
// non-empty line that cannot be mistaken for a canonical marker.
func cleanDescription(description string) (string, error) {
	d := strings.TrimSpace(description)
	if d == "" {
		return "", invalidf("description is empty")
	}
	if strings.ContainsAny(d, "\r\n") {
		return "", invalidf("description must be a single line")
	}
	if markerRegex.MatchString(d) {
		return "", invalidf("description %q starts with a todo.txt marker", d)
	}
	return d, nil
}

func checkPriority(p Priority) error {
	if !p.Valid() {
		return invalidf("priority %q is not a letter in A..Z", string(rune(p)))
	}
	return nil
}

func cleanProject(project string) (string, error) {
	p := strings.TrimSpace(project)
	if strings.ContainsAny(p, "\r\n") {
		return "", invalidf("project must be a single line")
	}
	return p, nil
}
