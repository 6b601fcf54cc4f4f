package tasks

import "todo-presets-backend/internal/todo"

// TaskView is the JSON shape of a task, with its canonical line attached.
type TaskView struct {
	ID          string        `json:"id"`
	Priority    todo.Priority `json:"priority"`
	Description string        `json:"description"`
	Completed   bool          `json:"completed"`
	Project     string        `json:"project,omitempty"`
	Line        string        `json:"line"`
}

func viewOf(t todo.Task) TaskView {
	return TaskView{
		ID:          t.ID,
		Priority:    t.Priority,
		Description: t.Description,
		Completed:   t.Completed,
		Project:     t.Project,
		Line:        t.Line(),
	}
}

func viewsOf(list []todo.Task) []TaskView {
	out := make([]TaskView, 0, len(list))
	for _, t := range list {
		out = append(out, viewOf(t))
	}
	return out
}

type CreateTaskRequest struct {
	Priority    string `json:"priority"`
	Description string `json:"description"`
	Project     string `json:"project"`
}

// UpdateTaskRequest is a partial update: absent fields are left as they are.
type UpdateTaskRequest struct {
	Priority    *string `json:"priority"`
	Description *string `json:"description"`
}
