package todo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const completedMarker = "x "

var priorityRegex = regexp.MustCompile(`^\(([A-Z])\) (.*)$`)

// Encode renders a task the todo.txt way. Completed tasks hide their
// priority, so the result is lossy for them; see EncodeLossless.
func Encode(t Task) string {
	if t.Completed {
		return completedMarker + t.Description
	}
	if t.Priority.IsSet() {
		return "(" + t.Priority.String() + ") " + t.Description
	}
	return t.Description
}

// EncodeLossless is Encode except that a completed task keeps its priority
// as "x (P) description", which Decode recovers.
func EncodeLossless(t Task) string {
	if t.Completed && t.Priority.IsSet() {
		return completedMarker + "(" + t.Priority.String() + ") " + t.Description
	}
	return Encode(t)
}

// Decode parses one canonical line. It never fails: anything that is not a
// recognised marker becomes the description of a pending task.
func Decode(line string) Task {
	line = strings.TrimSuffix(line, "\r")

	if rest, ok := strings.CutPrefix(line, completedMarker); ok {
		t := Task{Completed: true, Description: rest}
		if m := priorityRegex.FindStringSubmatch(rest); m != nil {
			t.Priority = Priority(m[1][0])
			t.Description = m[2]
		}
		return t
	}

	if m := priorityRegex.FindStringSubmatch(line); m != nil {
		return Task{Priority: Priority(m[1][0]), Description: m[2]}
	}

	return Task{Description: line}
}

// maxLineBytes bounds a single line read by scanLines.
const maxLineBytes = 64 * 1024

// scanLines calls fn with the 1-based number and text of every non-blank
// line of r. A line longer than maxLineBytes is a validation error.
func scanLines(r io.Reader, fn func(lineNo int, line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(lineNo, line); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return invalidf("line %d is longer than %d bytes", lineNo+1, maxLineBytes)
		}
		return fmt.Errorf("failed to read task lines: %w", err)
	}
	return nil
}

// WriteLines writes every task on its own newline-terminated line.
// A nil encode means Encode.
func WriteLines(w io.Writer, tasks []Task, encode func(Task) string) error {
	if encode == nil {
		encode = Encode
	}
	bw := bufio.NewWriter(w)
	for _, t := range tasks {
		if _, err := bw.WriteString(encode(t) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
