package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Connect opens and pings a database. driver is "postgres" or "sqlite3".
func Connect(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	if driver == "sqlite3" {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	}

	return db, nil
}

// Accepted by both PostgreSQL and SQLite. Projects have no table; they only
// exist through tasks.project.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		priority TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		project TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS presets (
		name TEXT PRIMARY KEY,
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS preset_tasks (
		preset_name TEXT NOT NULL REFERENCES presets(name) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		priority TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		PRIMARY KEY (preset_name, position)
	)`,
	`CREATE TABLE IF NOT EXISTS activity_events (
		event_name TEXT NOT NULL,
		event_time TIMESTAMP NOT NULL,
		session_id TEXT,
		platform TEXT NOT NULL DEFAULT 'unknown',
		app_version TEXT NOT NULL DEFAULT '',
		device_locale TEXT,
		source_event_key TEXT UNIQUE,
		properties TEXT NOT NULL DEFAULT '{}'
	)`,
}

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, dbx *sql.DB) error {
	for _, stmt := range schema {
		if _, err := dbx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
