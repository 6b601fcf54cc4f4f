// Package app wires configuration, storage and the workspace together for
// the binaries under cmd/.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"todo-presets-backend/internal/config"
	"todo-presets-backend/internal/db"
	"todo-presets-backend/internal/presetfile"
	"todo-presets-backend/internal/store"
	"todo-presets-backend/internal/todo"
	"todo-presets-backend/internal/workspace"
)

type App struct {
	Config *config.Config
	DB     *sql.DB
	WS     *workspace.Workspace
}

// Open connects to the configured database, migrates it, loads the
// workspace and applies the presets file when one is configured.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	dbx, err := db.Connect(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect DB: %w", err)
	}
	if err := db.Migrate(ctx, dbx); err != nil {
		dbx.Close()
		return nil, err
	}

	ws, err := workspace.Open(ctx, store.New(dbx))
	if err != nil {
		dbx.Close()
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	a := &App{Config: cfg, DB: dbx, WS: ws}
	if cfg.PresetsFile != "" {
		n, err := a.LoadPresets(ctx, cfg.PresetsFile)
		if err != nil {
			dbx.Close()
			return nil, err
		}
		if n > 0 {
			log.Printf("[INFO] loaded %d presets from %s", n, cfg.PresetsFile)
		}
	}
	return a, nil
}

// LoadPresets adds the presets of a YAML file that do not exist yet.
func (a *App) LoadPresets(ctx context.Context, path string) (int, error) {
	defs, err := presetfile.LoadFile(path)
	if err != nil {
		return 0, err
	}
	var n int
	err = a.WS.UpdatePresets(ctx, func(b *todo.PresetBook) error {
		var err error
		n, err = presetfile.Apply(b, defs)
		return err
	})
	return n, err
}

func (a *App) Close() error {
	return a.DB.Close()
}
