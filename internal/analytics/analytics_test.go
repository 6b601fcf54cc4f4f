package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"todo-presets-backend/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbx, err := db.Connect("sqlite3", filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	t.Cleanup(func() { dbx.Close() })
	if err := db.Migrate(context.Background(), dbx); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return dbx
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Platform", " WEB ")
	r.Header.Set("X-Session-Id", "s-1")
	r.Header.Set("X-Device-Locale", "fr-FR")

	env := FromRequest(r)
	if env.Platform != "web" || env.SessionID != "s-1" || env.DeviceLocale != "fr-FR" {
		t.Errorf("unexpected envelope %+v", env)
	}

	r.Header.Set("X-Platform", "toaster")
	if got := FromRequest(r).Platform; got != "unknown" {
		t.Errorf("expected unknown platform, got %q", got)
	}
}

func TestLogAndRecent(t *testing.T) {
	ctx := context.Background()
	tdb := newTestDB(t)

	if err := Log(ctx, tdb, CLI, "task_created", map[string]any{"task_id": "t1"}, ""); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if err := Log(ctx, tdb, CLI, "tasks_cleaned_up", map[string]any{"removed": 2}, "k1"); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if err := Log(ctx, tdb, CLI, "tasks_cleaned_up", map[string]any{"removed": 2}, "k1"); err != nil {
		t.Fatalf("duplicate Log failed: %v", err)
	}

	events, err := Recent(ctx, tdb, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected duplicate key to be ignored, got %d events", len(events))
	}
	for _, e := range events {
		if e.Platform != "cli" {
			t.Errorf("expected cli platform, got %q", e.Platform)
		}
		var props map[string]any
		if err := json.Unmarshal(e.Properties, &props); err != nil {
			t.Errorf("properties are not json: %s", e.Properties)
		}
	}
}

func TestLogWithoutDB(t *testing.T) {
	if err := Log(context.Background(), nil, CLI, "task_created", nil, ""); err != nil {
		t.Errorf("expected nil db to be a no-op, got %v", err)
	}
}

func TestClientEventHandler(t *testing.T) {
	tdb := newTestDB(t)
	h := ClientEventHandler(tdb)

	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{"event_name":"list_viewed","properties":{"count":3}}`))
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(`{}`))
	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing event name, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/events?limit=5", nil)
	rec = httptest.NewRecorder()
	RecentEventsHandler(tdb)(rec, req)
	var events []Event
	if err := json.NewDecoder(rec.Body).Decode(&events); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(events) != 1 || events[0].Name != "list_viewed" {
		t.Errorf("unexpected events %+v", events)
	}
}
