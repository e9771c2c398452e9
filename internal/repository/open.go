package repository

import (
	"fmt"

	"github.com/blog-engagement-api/internal/config"
	"github.com/blog-engagement-api/internal/database"
	"github.com/rs/zerolog"
)

// Open builds the Store selected by cfg.Store.Backend. The Postgres backend
// applies pending migrations before returning.
func Open(cfg *config.Config, log zerolog.Logger) (Store, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return nil, err
		}
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			db.Close()
			return nil, err
		}
		return NewPostgresStore(db), nil
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.SQLite.Path, log)
	case config.BackendMemory:
		log.Warn().Msg("Using in-memory store; data is lost on restart")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
