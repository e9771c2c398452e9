package repository_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/blog-engagement-api/internal/config"
	"github.com/blog-engagement-api/internal/repository"
	"github.com/rs/zerolog"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		wantErr bool
	}{
		{name: "memory", cfg: config.Config{Store: config.StoreConfig{Backend: config.BackendMemory}}},
		{
			name: "sqlite",
			cfg: config.Config{
				Store:  config.StoreConfig{Backend: config.BackendSQLite},
				SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "open.db")},
			},
		},
		{name: "unknown", cfg: config.Config{Store: config.StoreConfig{Backend: "redis"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := repository.Open(&tt.cfg, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer store.Close()

			if err := store.Ping(context.Background()); err != nil {
				t.Errorf("Ping failed: %v", err)
			}
		})
	}
}
