package todo

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// TaskList owns a set of tasks keyed by id. It does no locking: callers that
// share one list between goroutines must serialise access themselves.
type TaskList struct {
	tasks   map[string]*Task
	nextSeq uint64
	newID   func() string
}

func NewTaskList() *TaskList {
	return &TaskList{
		tasks: make(map[string]*Task),
		newID: func() string { return uuid.New().String() },
	}
}

// TaskEdit is a partial update; nil fields are left untouched.
type TaskEdit struct {
	Priority    *Priority
	Description *string
}

func (l *TaskList) Len() int { return len(l.tasks) }

// Add creates a pending task and returns its id.
func (l *TaskList) Add(priority Priority, description, project string) (string, error) {
	t, err := newTask(priority, description, project)
	if err != nil {
		return "", err
	}
	return l.insert(t), nil
}

func newTask(priority Priority, description, project string) (Task, error) {
	if err := checkPriority(priority); err != nil {
		return Task{}, err
	}
	d, err := cleanDescription(description)
	if err != nil {
		return Task{}, err
	}
	p, err := cleanProject(project)
	if err != nil {
		return Task{}, err
	}
	return Task{Priority: priority, Description: d, Project: p}, nil
}

// insert stores an already validated task under a fresh id.
func (l *TaskList) insert(t Task) string {
	id := l.newID()
	for _, taken := l.tasks[id]; taken; _, taken = l.tasks[id] {
		id = l.newID()
	}
	t.ID = id
	t.seq = l.nextSeq
	l.nextSeq++
	l.tasks[id] = &t
	return id
}

func (l *TaskList) lookup(id string) (*Task, error) {
	t, ok := l.tasks[id]
	if !ok {
		return nil, notFoundf("task %q", id)
	}
	return t, nil
}

func (l *TaskList) Get(id string) (Task, error) {
	t, err := l.lookup(id)
	if err != nil {
		return Task{}, err
	}
	return *t, nil
}

func (l *TaskList) Edit(id string, e TaskEdit) error {
	t, err := l.lookup(id)
	if err != nil {
		return err
	}

	priority := t.Priority
	if e.Priority != nil {
		if err := checkPriority(*e.Priority); err != nil {
			return err
		}
		priority = *e.Priority
	}
	description := t.Description
	if e.Description != nil {
		d, err := cleanDescription(*e.Description)
		if err != nil {
			return err
		}
		description = d
	}

	t.Priority = priority
	t.Description = description
	return nil
}

// FlagCompleted marks the task done. Already completed tasks are left as is.
func (l *TaskList) FlagCompleted(id string) error {
	return l.setCompleted(id, true)
}

// FlagPending reopens the task. The retained priority comes back with it.
func (l *TaskList) FlagPending(id string) error {
	return l.setCompleted(id, false)
}

func (l *TaskList) setCompleted(id string, completed bool) error {
	t, err := l.lookup(id)
	if err != nil {
		return err
	}
	t.Completed = completed
	return nil
}

func (l *TaskList) RaisePriority(id string) error {
	t, err := l.lookup(id)
	if err != nil {
		return err
	}
	t.Priority = t.Priority.Raise()
	return nil
}

func (l *TaskList) LowerPriority(id string) error {
	t, err := l.lookup(id)
	if err != nil {
		return err
	}
	t.Priority = t.Priority.Lower()
	return nil
}

// SetProject changes the association of one task. An empty project detaches it.
func (l *TaskList) SetProject(id, project string) error {
	t, err := l.lookup(id)
	if err != nil {
		return err
	}
	p, err := cleanProject(project)
	if err != nil {
		return err
	}
	t.Project = p
	return nil
}

// RenameProject moves every task of project from to project to and reports
// how many were moved. Renaming to "" detaches the tasks, which makes the
// project disappear.
func (l *TaskList) RenameProject(from, to string) (int, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return 0, invalidf("project name is empty")
	}
	to, err := cleanProject(to)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, t := range l.tasks {
		if t.Project == from {
			t.Project = to
			n++
		}
	}
	if n == 0 {
		return 0, notFoundf("project %q", from)
	}
	return n, nil
}

// ProjectNames lists every project referenced by at least one task, sorted.
func (l *TaskList) ProjectNames() []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, t := range l.tasks {
		if t.Project == "" {
			continue
		}
		if _, ok := seen[t.Project]; ok {
			continue
		}
		seen[t.Project] = struct{}{}
		names = append(names, t.Project)
	}
	sort.Strings(names)
	return names
}

// List returns copies of all tasks in display order.
func (l *TaskList) List() []Task {
	return l.collect(func(*Task) bool { return true })
}

// ListProject is List restricted to one project.
func (l *TaskList) ListProject(project string) []Task {
	return l.collect(func(t *Task) bool { return t.Project == project })
}

func (l *TaskList) collect(keep func(*Task) bool) []Task {
	out := make([]Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		if keep(t) {
			out = append(out, *t)
		}
	}
	sortTasks(out)
	return out
}

// sortTasks orders by priority (A first, none last), then description
// descending byte-wise, then insertion order.
func sortTasks(tasks []Task) {
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Priority.rank() != b.Priority.rank() {
			return a.Priority.rank() < b.Priority.rank()
		}
		if a.Description != b.Description {
			return a.Description > b.Description
		}
		return a.seq < b.seq
	})
}

// Cleanup removes every completed task and returns how many were removed.
func (l *TaskList) Cleanup() int {
	n := 0
	for id, t := range l.tasks {
		if t.Completed {
			delete(l.tasks, id)
			n++
		}
	}
	return n
}

// Import adds one task per non-blank canonical line. Completed state and
// priority are taken from the line. Nothing is added unless every line is
// valid.
func (l *TaskList) Import(r io.Reader) (int, error) {
	var batch []Task
	err := scanLines(r, func(lineNo int, line string) error {
		decoded := Decode(line)
		t, err := newTask(decoded.Priority, decoded.Description, "")
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		t.Completed = decoded.Completed
		batch = append(batch, t)
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, t := range batch {
		l.insert(t)
	}
	return len(batch), nil
}

// Snapshot returns copies of all tasks in insertion order.
func (l *TaskList) Snapshot() []Task {
	out := make([]Task, 0, len(l.tasks))
	for _, t := range l.tasks {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Restore replaces the contents of the list with tasks, keeping their ids.
// The slice order becomes the insertion order.
func (l *TaskList) Restore(tasks []Task) error {
	restored := make(map[string]*Task, len(tasks))
	for i, in := range tasks {
		if in.ID == "" {
			return invalidf("task %d has no id", i)
		}
		if _, dup := restored[in.ID]; dup {
			return invalidf("duplicate task id %q", in.ID)
		}
		t, err := newTask(in.Priority, in.Description, in.Project)
		if err != nil {
			return fmt.Errorf("task %q: %w", in.ID, err)
		}
		t.ID = in.ID
		t.Completed = in.Completed
		t.seq = uint64(i)
		restored[t.ID] = &t
	}

	l.tasks = restored
	l.nextSeq = uint64(len(tasks))
	return nil
}
