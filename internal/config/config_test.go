package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Server.MaxBodyBytes != 64*1024 {
		t.Errorf("Expected 64KiB body limit, got %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Server.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected 30s shutdown timeout, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Store.Backend != BackendMemory {
		t.Errorf("Expected memory backend, got %s", cfg.Store.Backend)
	}
	if cfg.IsProduction() {
		t.Error("Expected development environment by default")
	}
	if cfg.AllowedOrigin() != "http://localhost:5173" {
		t.Errorf("Expected dev origin, got %s", cfg.AllowedOrigin())
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("CORS_PRODUCTION_ORIGIN", "https://blog.test")
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DATABASE_MAX_LIFETIME", "90s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Expected PORT to override server.port, got %s", cfg.Server.Port)
	}
	if cfg.Store.Backend != BackendPostgres {
		t.Errorf("Expected postgres backend, got %s", cfg.Store.Backend)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Expected DB_HOST override, got %s", cfg.Database.Host)
	}
	if cfg.Database.MaxLifetime != 90*time.Second {
		t.Errorf("Expected 90s lifetime, got %s", cfg.Database.MaxLifetime)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected debug level, got %s", cfg.Log.Level)
	}
	if cfg.AllowedOrigin() != "https://blog.test" {
		t.Errorf("Expected production origin, got %s", cfg.AllowedOrigin())
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("store:\n  backend: sqlite\nsqlite:\n  path: /tmp/engagement.db\nserver:\n  max_body_bytes: 1024\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("Expected sqlite backend, got %s", cfg.Store.Backend)
	}
	if cfg.SQLite.Path != "/tmp/engagement.db" {
		t.Errorf("Expected sqlite path from file, got %s", cfg.SQLite.Path)
	}
	if cfg.Server.MaxBodyBytes != 1024 {
		t.Errorf("Expected 1024 body limit, got %d", cfg.Server.MaxBodyBytes)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Env:    "development",
			Server: ServerConfig{Port: "8080", MaxBodyBytes: 1024},
			Store:  StoreConfig{Backend: BackendMemory},
			CORS:   CORSConfig{DevelopmentOrigin: "http://localhost:5173", ProductionOrigin: "https://blog.test"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid memory config", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.Store.Backend = "redis" }, true},
		{"postgres without host", func(c *Config) {
			c.Store.Backend = BackendPostgres
			c.Database.Name = "blog"
		}, true},
		{"sqlite without path", func(c *Config) { c.Store.Backend = BackendSQLite }, true},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, true},
		{"origin without scheme", func(c *Config) { c.CORS.DevelopmentOrigin = "localhost:5173" }, true},
		{"production uses production origin", func(c *Config) {
			c.Env = EnvProduction
			c.CORS.DevelopmentOrigin = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=h port=1 user=u password=p dbname=n sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
