package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blog-engagement-api/internal/database"
	"github.com/lib/pq"
)

// PostgresStore implements Store on top of three PostgreSQL tables. Each
// primitive is a single statement, so atomicity comes from the database.
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a Store backed by an already migrated database
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get returns the counter at key
func (s *PostgresStore) Get(ctx context.Context, key string) (int64, error) {
	var value int64
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_counters WHERE key_name = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, pgError("get", key, err)
	}
	return value, nil
}

// Incr upserts the counter and returns the post-increment value
func (s *PostgresStore) Incr(ctx context.Context, key string) (int64, error) {
	query := `
		INSERT INTO kv_counters (key_name, value, updated_at)
		VALUES ($1, 1, NOW())
		ON CONFLICT (key_name) DO UPDATE
			SET value = kv_counters.value + 1, updated_at = NOW()
		RETURNING value
	`
	var value int64
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		return 0, pgError("incr", key, err)
	}
	return value, nil
}

// SAdd inserts the member unless present; one affected row means it was new
func (s *PostgresStore) SAdd(ctx context.Context, key, member string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_set_members (key_name, member)
		VALUES ($1, $2)
		ON CONFLICT (key_name, member) DO NOTHING
	`, key, member)
	if err != nil {
		return false, pgError("sadd", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, pgError("sadd", key, err)
	}
	return n == 1, nil
}

// LPush appends a row; list order is descending id
func (s *PostgresStore) LPush(ctx context.Context, key string, value json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_list_entries (key_name, value) VALUES ($1, $2::jsonb)`,
		key, string(value),
	)
	if err != nil {
		return pgError("lpush", key, err)
	}
	return nil
}

// LRange reads the requested window, newest first
func (s *PostgresStore) LRange(ctx context.Context, key string, start, stop int) ([]json.RawMessage, error) {
	offset, limit, err := s.window(ctx, key, start, stop)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		return []json.RawMessage{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT value FROM kv_list_entries
		WHERE key_name = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`, key, limit, offset)
	if err != nil {
		return nil, pgError("lrange", key, err)
	}
	defer rows.Close()

	out := make([]json.RawMessage, 0)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, pgError("lrange", key, err)
		}
		out = append(out, json.RawMessage(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, pgError("lrange", key, err)
	}
	return out, nil
}

// LTrim deletes every row of the list outside the window in one statement
func (s *PostgresStore) LTrim(ctx context.Context, key string, start, stop int) error {
	offset, limit, err := s.window(ctx, key, start, stop)
	if err != nil {
		return err
	}

	if limit == 0 {
		_, err = s.db.ExecContext(ctx, `DELETE FROM kv_list_entries WHERE key_name = $1`, key)
	} else {
		_, err = s.db.ExecContext(ctx, `
			DELETE FROM kv_list_entries
			WHERE key_name = $1
			  AND id NOT IN (
				SELECT id FROM kv_list_entries
				WHERE key_name = $1
				ORDER BY id DESC
				LIMIT $2 OFFSET $3
			  )
		`, key, limit, offset)
	}
	if err != nil {
		return pgError("ltrim", key, err)
	}
	return nil
}

// Ping checks database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.HealthCheck(ctx)
}

// Close releases the connection pool
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) window(ctx context.Context, key string, start, stop int) (int, int, error) {
	length := unboundedLength
	if needsLength(start, stop) {
		var n int
		err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_list_entries WHERE key_name = $1`, key).Scan(&n)
		if err != nil {
			return 0, 0, pgError("llen", key, err)
		}
		length = n
	}
	offset, limit := ListWindow(start, stop, length)
	return offset, limit, nil
}

// pgError adds the operation and key, plus the SQLSTATE code when available
func pgError(op, key string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s %s (SQLSTATE %s): %w", op, key, pqErr.Code, err)
	}
	return fmt.Errorf("%s %s: %w", op, key, err)
}
