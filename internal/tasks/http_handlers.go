package tasks

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"todo-presets-backend/internal/httperr"
	"todo-presets-backend/internal/todo"
	"todo-presets-backend/internal/workspace"
)

const maxImportBytes = 1 << 20

// -------------------------------
// READ
// -------------------------------

// GetTasksHandler lists tasks in display order. ?project=name filters; an
// empty ?project= selects tasks without a project.
func GetTasksHandler(ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var result []todo.Task
		ws.View(func(l *todo.TaskList, _ *todo.PresetBook) {
			if q.Has("project") {
				result = l.ListProject(q.Get("project"))
			} else {
				result = l.List()
			}
		})

		writeJSON(w, http.StatusOK, viewsOf(result))
	}
}

func GetTaskHandler(ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			t   todo.Task
			err error
		)
		ws.View(func(l *todo.TaskList, _ *todo.PresetBook) {
			t, err = l.Get(mux.Vars(r)["id"])
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(t))
	}
}

// ExportTasksHandler writes the canonical todo.txt form, one task per line.
// ?lossless=1 keeps the priority of completed tasks.
func ExportTasksHandler(ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		encode := todo.Encode
		if q.Get("lossless") == "1" || q.Get("lossless") == "true" {
			encode = todo.EncodeLossless
		}

		var result []todo.Task
		ws.View(func(l *todo.TaskList, _ *todo.PresetBook) {
			if q.Has("project") {
				result = l.ListProject(q.Get("project"))
			} else {
				result = l.List()
			}
		})

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := todo.WriteLines(w, result, encode); err != nil {
			log.Printf("[WARN] export write failed tasks=%d: %v", len(result), err)
		}
	}
}

func GetProjectsHandler(ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var names []string
		ws.View(func(l *todo.TaskList, _ *todo.PresetBook) {
			names = l.ProjectNames()
		})
		writeJSON(w, http.StatusOK, map[string]any{"projects": names})
	}
}

// -------------------------------
// WRITE
// -------------------------------

func CreateTaskHandler(ws *workspace.Workspace, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body CreateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		priority, err := todo.ParsePriority(body.Priority)
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		var created todo.Task
		err = ws.UpdateTasks(r.Context(), func(l *todo.TaskList) error {
			id, err := l.Add(priority, body.Description, body.Project)
			if err != nil {
				return err
			}
			created, err = l.Get(id)
			return err
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		logEvent(r, dbx, "task_created", map[string]any{
			"task_id":     created.ID,
			"priority":    created.Priority.String(),
			"has_project": created.Project != "",
			"text_len":    len(created.Description),
		})

		writeJSON(w, http.StatusCreated, viewOf(created))
	}
}

func UpdateTaskHandler(ws *workspace.Workspace, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var body UpdateTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var edit todo.TaskEdit
		if body.Priority != nil {
			p, err := todo.ParsePriority(*body.Priority)
			if err != nil {
				httperr.Write(w, r, err)
				return
			}
			edit.Priority = &p
		}
		edit.Description = body.Description

		var (
			before, after todo.Task
		)
		err := ws.UpdateTasks(r.Context(), func(l *todo.TaskList) error {
			var err error
			if before, err = l.Get(id); err != nil {
				return err
			}
			if err := l.Edit(id, edit); err != nil {
				return err
			}
			after, err = l.Get(id)
			return err
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		logEvent(r, dbx, "task_updated", map[string]any{
			"task_id":         id,
			"priority_before": before.Priority.String(),
			"priority_after":  after.Priority.String(),
			"text_len":        len(after.Description),
		})

		writeJSON(w, http.StatusOK, viewOf(after))
	}
}

// SetTaskStatusHandler flags a task completed (done=true) or pending.
func SetTaskStatusHandler(ws *workspace.Workspace, dbx *sql.DB, done bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var (
			wasDone bool
			after   todo.Task
		)
		err := ws.UpdateTasks(r.Context(), func(l *todo.TaskList) error {
			before, err := l.Get(id)
			if err != nil {
				return err
			}
			wasDone = before.Completed

			if done {
				err = l.FlagCompleted(id)
			} else {
				err = l.FlagPending(id)
			}
			if err != nil {
				return err
			}
			after, err = l.Get(id)
			return err
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		if wasDone != done {
			event := "task_uncompleted"
			if done {
				event = "task_completed"
			}
			logEvent(r, dbx, event, map[string]any{
				"task_id":  id,
				"priority": after.Priority.String(),
				"project":  after.Project != "",
			})
		}

		writeJSON(w, http.StatusOK, viewOf(after))
	}
}

func ChangePriorityHandler(ws *workspace.Workspace, raise bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var after todo.Task
		err := ws.UpdateTasks(r.Context(), func(l *todo.TaskList) error {
			var err error
			if raise {
				err = l.RaisePriority(id)
			} else {
				err = l.LowerPriority(id)
			}
			if err != nil {
				return err
			}
			after, err = l.Get(id)
			return err
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(after))
	}
}

func SetProjectHandler(ws *workspace.Workspace) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		var body struct {
			Project string `json:"project"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var after todo.Task
		err := ws.UpdateTasks(r.Context(), func(l *todo.TaskList) error {
			if err := l.SetProject(id, body.Project); err != nil {
				return err
			}
			var err error
			after, err = l.Get(id)
			return err
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(after))
	}
}

func RenameProjectHandler(ws *workspace.Workspace, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := mux.Vars(r)["name"]

		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var renamed int
		err := ws.UpdateTasks(r.Context(), func(l *todo.TaskList) error {
			var err error
			renamed, err = l.RenameProject(from, body.Name)
			return err
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		logEvent(r, dbx, "project_renamed", map[string]any{
			"tasks":    renamed,
			"detached": strings.TrimSpace(body.Name) == "",
		})

		writeJSON(w, http.StatusOK, map[string]any{"renamed": renamed})
	}
}

// CleanupHandler removes every completed task.
func CleanupHandler(ws *workspace.Workspace, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var removed int
		err := ws.UpdateTasks(r.Context(), func(l *todo.TaskList) error {
			removed = l.Cleanup()
			return nil
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		if removed > 0 {
			logEvent(r, dbx, "tasks_cleaned_up", map[string]any{"removed": removed})
		}

		writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
	}
}

// ImportTasksHandler adds the todo.txt lines of the request body.
func ImportTasksHandler(ws *workspace.Workspace, dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := http.MaxBytesReader(w, r.Body, maxImportBytes)

		var imported int
		err := ws.UpdateTasks(r.Context(), func(l *todo.TaskList) error {
			var err error
			imported, err = l.Import(body)
			return err
		})
		if err != nil {
			httperr.Write(w, r, err)
			return
		}

		logEvent(r, dbx, "tasks_imported", map[string]any{"imported": imported})

		writeJSON(w, http.StatusOK, map[string]any{"imported": imported})
	}
}
