package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("LISTEN_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBDriver != "sqlite3" {
		t.Errorf("expected sqlite3 driver, got %q", cfg.DBDriver)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("expected port 5432, got %d", cfg.DBPort)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected :8080, got %q", cfg.ListenAddr)
	}
	if cfg.DSN() != "./tasks.db" {
		t.Errorf("expected sqlite path DSN, got %q", cfg.DSN())
	}
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "todo")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "tasks")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := "host=db.local port=6543 user=todo password=secret dbname=tasks sslmode=disable"
	if cfg.DSN() != want {
		t.Errorf("expected DSN %q, got %q", want, cfg.DSN())
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "db_driver: postgres\ndb_host: from-file\nlisten_addr: \":9000\"\npresets_file: presets.yaml\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_DRIVER", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DB_HOST", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBDriver != "postgres" || cfg.ListenAddr != ":9000" || cfg.PresetsFile != "presets.yaml" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.DBHost != "from-env" {
		t.Errorf("expected env to override file, got %q", cfg.DBHost)
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "mysql") {
		t.Errorf("expected unsupported driver error, got %v", err)
	}
}
