package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Envelope is what we store with every event.
type Envelope struct {
	SessionID    string
	Platform     string
	AppVersion   string
	DeviceLocale string
}

// CLI is the envelope used by cmd/todoctl.
var CLI = Envelope{Platform: "cli"}

// FromRequest extracts event envelope fields from request headers.
func FromRequest(r *http.Request) Envelope {
	platform := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Platform")))
	switch platform {
	case "ios", "android", "web", "cli":
	default:
		platform = "unknown"
	}

	locale := strings.TrimSpace(r.Header.Get("Accept-Language"))
	if locale == "" {
		locale = strings.TrimSpace(r.Header.Get("X-Device-Locale"))
	}

	return Envelope{
		SessionID:    strings.TrimSpace(r.Header.Get("X-Session-Id")),
		Platform:     platform,
		AppVersion:   strings.TrimSpace(r.Header.Get("X-App-Version")),
		DeviceLocale: locale,
	}
}

// Client-provided idempotency key (optional)
// If present and duplicates, insert is ignored.
func SourceEventKeyFromRequest(r *http.Request) string {
	k := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if k != "" {
		return k
	}
	return strings.TrimSpace(r.Header.Get("X-Source-Event-Key"))
}

// Log inserts one activity event. Callers pass sanitized props: ids, counts
// and priorities, never task descriptions. A nil db disables logging.
func Log(ctx context.Context, db *sql.DB, env Envelope, eventName string, props any, sourceEventKey string) error {
	if db == nil || eventName == "" {
		return nil
	}
	if env.Platform == "" {
		env.Platform = "unknown"
	}

	b, err := json.Marshal(props)
	if err != nil {
		return fmt.Errorf("marshal %s props: %w", eventName, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO activity_events (
			event_name, event_time,
			session_id, platform, app_version, device_locale,
			source_event_key,
			properties
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (source_event_key) DO NOTHING
	`, eventName, time.Now().UTC(),
		nullIfEmpty(env.SessionID), env.Platform, env.AppVersion, nullIfEmpty(env.DeviceLocale),
		nullIfEmpty(sourceEventKey),
		string(b),
	)
	if err != nil {
		return fmt.Errorf("insert %s event: %w", eventName, err)
	}
	return nil
}

type Event struct {
	Name       string          `json:"event_name"`
	Time       time.Time       `json:"event_time"`
	SessionID  string          `json:"session_id,omitempty"`
	Platform   string          `json:"platform"`
	Properties json.RawMessage `json:"properties"`
}

// Recent returns the latest events, newest first.
func Recent(ctx context.Context, db *sql.DB, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
		SELECT event_name, event_time, COALESCE(session_id, ''), platform, properties
		FROM activity_events
		ORDER BY event_time DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		var (
			e     Event
			props string
		)
		if err := rows.Scan(&e.Name, &e.Time, &e.SessionID, &e.Platform, &props); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Properties = json.RawMessage(props)
		events = append(events, e)
	}
	return events, rows.Err()
}

func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
