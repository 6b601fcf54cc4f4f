package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	ListenAddr     string
	AllowedOrigins []string
	PresetsFile    string
}

// Load reads defaults, then the YAML file named by CONFIG_FILE (if any),
// then environment variables, each layer overriding the previous one.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("db_driver", "sqlite3")
	v.SetDefault("db_port", 5432) // lib/pq default
	v.SetDefault("db_path", "./tasks.db")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("cors_allowed_origins", "*")

	v.AutomaticEnv()
	for _, key := range []string{"db_host", "db_user", "db_password", "db_name", "presets_file"} {
		_ = v.BindEnv(key)
	}

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		DBDriver:   v.GetString("db_driver"),
		DBHost:     v.GetString("db_host"),
		DBPort:     v.GetInt("db_port"),
		DBUser:     v.GetString("db_user"),
		DBPassword: v.GetString("db_password"),
		DBName:     v.GetString("db_name"),
		DBPath:     v.GetString("db_path"),

		ListenAddr:     v.GetString("listen_addr"),
		AllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
		PresetsFile:    v.GetString("presets_file"),
	}

	switch cfg.DBDriver {
	case "postgres", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite3)", cfg.DBDriver)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// DSN is the data source name for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.ConnString()
	}
	return c.DBPath
}
