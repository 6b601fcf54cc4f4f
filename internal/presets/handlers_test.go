package presets

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"todo-presets-backend/internal/todo"
	"todo-presets-backend/internal/workspace"
)

func newTestRouter(t *testing.T) (*mux.Router, *workspace.Workspace) {
	t.Helper()
	ws := workspace.New(todo.NewTaskList(), todo.NewPresetBook(), nil)
	r := mux.NewRouter()
	New(ws, nil).Register(r)
	return r, ws
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndInject(t *testing.T) {
	r, ws := newTestRouter(t)

	if rec := do(r, http.MethodPost, "/presets", `{"name":"chores"}`); rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(r, http.MethodPost, "/presets", `{"name":"chores"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate: expected 400, got %d", rec.Code)
	}

	for _, body := range []string{
		`{"priority":"A","description":"vacuum"}`,
		`{"description":"dishes"}`,
	} {
		if rec := do(r, http.MethodPost, "/presets/chores/tasks", body); rec.Code != http.StatusOK {
			t.Fatalf("add task %s: expected 200, got %d", body, rec.Code)
		}
	}

	rec := do(r, http.MethodGet, "/presets/chores", "")
	var view PresetView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(view.Tasks) != 2 || view.Tasks[0].Priority != 'A' || view.Tasks[1].Description != "dishes" {
		t.Errorf("unexpected preset %+v", view)
	}

	for i := 0; i < 2; i++ {
		rec := do(r, http.MethodPost, "/presets/chores/inject", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("inject: expected 200, got %d", rec.Code)
		}
		var out struct{ IDs []string }
		_ = json.NewDecoder(rec.Body).Decode(&out)
		if len(out.IDs) != 2 {
			t.Errorf("expected 2 ids, got %v", out.IDs)
		}
	}

	ws.View(func(l *todo.TaskList, _ *todo.PresetBook) {
		if l.Len() != 4 {
			t.Errorf("expected 4 tasks after two injections, got %d", l.Len())
		}
	})
}

func TestPresetErrors(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodPost, "/presets", `{"name":"chores"}`)

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPost, "/presets", `{"name":"  "}`, http.StatusBadRequest},
		{http.MethodGet, "/presets/nope", "", http.StatusNotFound},
		{http.MethodPost, "/presets/nope/inject", "", http.StatusNotFound},
		{http.MethodPost, "/presets/nope/tasks", `{"description":"a"}`, http.StatusNotFound},
		{http.MethodPost, "/presets/chores/tasks", `{"priority":"AA","description":"a"}`, http.StatusBadRequest},
		{http.MethodPost, "/presets/chores/tasks", `{"description":""}`, http.StatusBadRequest},
		{http.MethodDelete, "/presets/nope", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := do(r, tt.method, tt.path, tt.body); rec.Code != tt.want {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.want, rec.Code)
		}
	}
}

func TestListAndDelete(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodPost, "/presets", `{"name":"morning"}`)
	do(r, http.MethodPost, "/presets", `{"name":"evening"}`)

	if rec := do(r, http.MethodDelete, "/presets/morning", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}

	rec := do(r, http.MethodGet, "/presets", "")
	var list []PresetView
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "evening" {
		t.Errorf("expected only evening, got %+v", list)
	}
}

func TestInjectEmptyPreset(t *testing.T) {
	r, _ := newTestRouter(t)
	do(r, http.MethodPost, "/presets", `{"name":"empty"}`)

	rec := do(r, http.MethodPost, "/presets/empty/inject", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"ids":[]}` {
		t.Errorf("expected empty id list, got %s", got)
	}
}
