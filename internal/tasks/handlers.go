package tasks

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"todo-presets-backend/internal/analytics"
	"todo-presets-backend/internal/workspace"
)

type TaskHandler struct {
	WS *workspace.Workspace
	DB *sql.DB
}

func New(ws *workspace.Workspace, db *sql.DB) *TaskHandler {
	return &TaskHandler{
		WS: ws,
		DB: db,
	}
}

// Register mounts the task and project routes on r.
func (h *TaskHandler) Register(r *mux.Router) {
	r.HandleFunc("/tasks", GetTasksHandler(h.WS)).Methods(http.MethodGet)
	r.HandleFunc("/tasks", CreateTaskHandler(h.WS, h.DB)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/export", ExportTasksHandler(h.WS)).Methods(http.MethodGet)
	r.HandleFunc("/tasks/import", ImportTasksHandler(h.WS, h.DB)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/cleanup", CleanupHandler(h.WS, h.DB)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}", GetTaskHandler(h.WS)).Methods(http.MethodGet)
	r.HandleFunc("/tasks/{id}", UpdateTaskHandler(h.WS, h.DB)).Methods(http.MethodPut)
	r.HandleFunc("/tasks/{id}/done", SetTaskStatusHandler(h.WS, h.DB, true)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/pending", SetTaskStatusHandler(h.WS, h.DB, false)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/raise", ChangePriorityHandler(h.WS, true)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/lower", ChangePriorityHandler(h.WS, false)).Methods(http.MethodPost)
	r.HandleFunc("/tasks/{id}/project", SetProjectHandler(h.WS)).Methods(http.MethodPut)

	r.HandleFunc("/projects", GetProjectsHandler(h.WS)).Methods(http.MethodGet)
	r.HandleFunc("/projects/{name}", RenameProjectHandler(h.WS, h.DB)).Methods(http.MethodPut)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logEvent records an activity event; failures never break the request.
func logEvent(r *http.Request, dbx *sql.DB, name string, props map[string]any) {
	err := analytics.Log(r.Context(), dbx, analytics.FromRequest(r), name, props, analytics.SourceEventKeyFromRequest(r))
	if err != nil {
		log.Printf("[WARN] activity log failed event=%s: %v", name, err)
	}
}
