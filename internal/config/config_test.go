package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Fatalf("driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Points.Win != 3 || cfg.Points.Loss != 1 {
		t.Fatalf("points = %+v, want win 3 loss 1", cfg.Points)
	}
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
app:
  name: leagus
  environment: production
  port: 9000
database:
  driver: mongodb
  url: mongodb://yaml-host:27017
  name: leagues
points:
  win: 2
  loss: 0
scheduler:
  enabled: true
  points_refresh: "0 * * * *"
`)
	t.Setenv("DATABASE_URL", "mongodb://env-host:27017")
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.URL != "mongodb://env-host:27017" {
		t.Fatalf("url = %q, want env override", cfg.Database.URL)
	}
	if cfg.App.Port != 9100 {
		t.Fatalf("port = %d, want 9100", cfg.App.Port)
	}
	if cfg.Points.Win != 2 || cfg.Points.Loss != 0 {
		t.Fatalf("points = %+v", cfg.Points)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production environment")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "turso" },
			wantErr: "Driver",
		},
		{
			name:    "sqlite needs filename",
			mutate:  func(c *Config) { c.Database.Filename = "" },
			wantErr: "Filename",
		},
		{
			name: "mongodb needs url",
			mutate: func(c *Config) {
				c.Database.Driver = DriverMongo
				c.Database.URL = ""
			},
			wantErr: "URL",
		},
		{
			name:    "bad cron expression",
			mutate:  func(c *Config) { c.Scheduler.PointsRefresh = "every day" },
			wantErr: "points_refresh",
		},
		{
			name: "cron ignored when scheduler disabled",
			mutate: func(c *Config) {
				c.Scheduler.Enabled = false
				c.Scheduler.PointsRefresh = ""
			},
		},
		{
			name:    "negative points",
			mutate:  func(c *Config) { c.Points.Loss = -1 },
			wantErr: "Loss",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
