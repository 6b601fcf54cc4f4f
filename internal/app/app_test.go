package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"todo-presets-backend/internal/config"
	"todo-presets-backend/internal/todo"
)

func TestOpenPersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	presets := filepath.Join(dir, "presets.yaml")
	yaml := "presets:\n  - name: chores\n    tasks: [\"(A) vacuum\", dishes]\n"
	if err := os.WriteFile(presets, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{DBDriver: "sqlite3", DBPath: filepath.Join(dir, "tasks.db"), PresetsFile: presets}

	a, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	ids, err := a.WS.Inject(ctx, "chores")
	if err != nil || len(ids) != 2 {
		t.Fatalf("Inject: ids=%v err=%v", ids, err)
	}
	a.Close()

	a, err = Open(ctx, cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer a.Close()

	a.WS.View(func(l *todo.TaskList, b *todo.PresetBook) {
		if b.Len() != 1 {
			t.Errorf("presets file must not duplicate presets, got %v", b.Names())
		}
		got := l.List()
		if len(got) != 2 || got[0].Line() != "(A) vacuum" || got[0].Project != "chores" {
			t.Errorf("unexpected tasks after reopen: %+v", got)
		}
	})
}
