package analytics

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
)

// RecentEventsHandler serves GET /events?limit=N.
func RecentEventsHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		events, err := Recent(r.Context(), dbx, limit)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(events)
	}
}

// ClientEventHandler lets the UI record its own events (list_viewed,
// preset_opened, ...) through POST /events.
func ClientEventHandler(dbx *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Event      string         `json:"event_name"`
			Properties map[string]any `json:"properties"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if body.Event == "" {
			http.Error(w, "event_name required", http.StatusBadRequest)
			return
		}

		if err := Log(r.Context(), dbx, FromRequest(r), body.Event, body.Properties, SourceEventKeyFromRequest(r)); err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}
