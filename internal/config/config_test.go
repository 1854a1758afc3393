package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
connections:
  db_mysql:
    dialect: mysql
    host: localhost
    port: 3306
    database: descargas
    username: dashboard
    password: secret
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("expected default log config, got %+v", cfg.Log)
	}
	if cfg.Data.Connection != "db_mysql" {
		t.Errorf("expected default connection name, got %q", cfg.Data.Connection)
	}
	if cfg.Data.SnapshotPath != "data.csv" {
		t.Errorf("expected default snapshot path, got %q", cfg.Data.SnapshotPath)
	}
	if cfg.Data.MissingRegionLabel != "Unknown" {
		t.Errorf("expected default missing-region label, got %q", cfg.Data.MissingRegionLabel)
	}
	if cfg.Data.ErrorRegionLabel != "Geocoding Error" {
		t.Errorf("expected default error-region label, got %q", cfg.Data.ErrorRegionLabel)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("expected default cache type memory, got %q", cfg.Cache.Type)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantError bool
		errMsg    string
	}{
		{
			name:    "minimal valid config",
			content: "server:\n  port: 9000\n",
		},
		{
			name:      "invalid log level",
			content:   "log:\n  level: verbose\n",
			wantError: true,
			errMsg:    "unknown log level",
		},
		{
			name:      "invalid log format",
			content:   "log:\n  format: xml\n",
			wantError: true,
			errMsg:    "unknown log format",
		},
		{
			name:      "invalid cache type",
			content:   "cache:\n  type: memcached\n",
			wantError: true,
			errMsg:    "unknown cache type",
		},
		{
			name:      "redis cache without address",
			content:   "cache:\n  type: redis\n",
			wantError: true,
			errMsg:    "no redis address",
		},
		{
			name:    "redis cache with address",
			content: "cache:\n  type: redis\nredis:\n  address: localhost:6379\n",
		},
		{
			name:      "negative universe size",
			content:   "data:\n  universe_size: -1\n",
			wantError: true,
			errMsg:    "universe_size",
		},
		{
			// The missing entry is reported on refresh, not at startup.
			name:    "missing connection entry is not a startup error",
			content: "data:\n  connection: nope\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := LoadConfig(path)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected an error, got none")
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %v", tt.errMsg, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestEnvironmentOverridesApplyToActiveConnection(t *testing.T) {
	path := writeConfig(t, `
connections:
  db_mysql:
    dialect: mysql
    host: localhost
    port: 3306
    database: descargas
    username: dashboard
    password: from-file
`)

	t.Setenv(EnvDBPassword, "from-env")
	t.Setenv(EnvDBHost, "db.internal")
	t.Setenv(EnvSnapshotPath, "/var/lib/dashboard/data.csv")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	conn := cfg.Connections["db_mysql"]
	if conn.Password != "from-env" {
		t.Errorf("expected password override, got %q", conn.Password)
	}
	if conn.Host != "db.internal" {
		t.Errorf("expected host override, got %q", conn.Host)
	}
	if cfg.Data.SnapshotPath != "/var/lib/dashboard/data.csv" {
		t.Errorf("expected snapshot path override, got %q", cfg.Data.SnapshotPath)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
