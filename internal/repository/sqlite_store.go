package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type kvCounter struct {
	KeyName   string `gorm:"column:key_name;primaryKey"`
	Value     int64  `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

func (kvCounter) TableName() string { return "kv_counters" }

type kvSetMember struct {
	KeyName   string `gorm:"column:key_name;primaryKey"`
	Member    string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (kvSetMember) TableName() string { return "kv_set_members" }

type kvListEntry struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	KeyName   string `gorm:"column:key_name;not null;index:idx_kv_list_entries_key_id"`
	Value     string `gorm:"not null"`
	CreatedAt time.Time
}

func (kvListEntry) TableName() string { return "kv_list_entries" }

// SQLiteStore implements Store on an embedded SQLite database through GORM.
// The pool is limited to one connection, which serializes writers.
type SQLiteStore struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewSQLiteStore opens (or creates) the database at dsn and migrates the
// key-value tables.
func NewSQLiteStore(dsn string, log zerolog.Logger) (*SQLiteStore, error) {
	storeLog := log.With().Str("component", "sqlite").Logger()

	db, err := gorm.Open(sqlite.Open(sqliteDSN(dsn)), &gorm.Config{
		Logger: gormlogger.New(&storeLog, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&kvCounter{}, &kvSetMember{}, &kvListEntry{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}

	storeLog.Info().Str("dsn", dsn).Msg("SQLite store ready")
	return &SQLiteStore{db: db, log: storeLog}, nil
}

func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)"
}

// Get returns the counter at key
func (s *SQLiteStore) Get(ctx context.Context, key string) (int64, error) {
	var counters []kvCounter
	if err := s.db.WithContext(ctx).Where("key_name = ?", key).Limit(1).Find(&counters).Error; err != nil {
		return 0, fmt.Errorf("get %s: %w", key, err)
	}
	if len(counters) == 0 {
		return 0, nil
	}
	return counters[0].Value, nil
}

// Incr upserts the counter and reads it back inside one transaction
func (s *SQLiteStore) Incr(ctx context.Context, key string) (int64, error) {
	var value int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "key_name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      gorm.Expr("kv_counters.value + 1"),
				"updated_at": now,
			}),
		}).Create(&kvCounter{KeyName: key, Value: 1, UpdatedAt: now}).Error
		if err != nil {
			return err
		}

		var counter kvCounter
		if err := tx.Where("key_name = ?", key).Take(&counter).Error; err != nil {
			return err
		}
		value = counter.Value
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return value, nil
}

// SAdd inserts the member unless present
func (s *SQLiteStore) SAdd(ctx context.Context, key, member string) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&kvSetMember{KeyName: key, Member: member})
	if res.Error != nil {
		return false, fmt.Errorf("sadd %s: %w", key, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// LPush appends a row; list order is descending id
func (s *SQLiteStore) LPush(ctx context.Context, key string, value json.RawMessage) error {
	entry := kvListEntry{KeyName: key, Value: string(value)}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("lpush %s: %w", key, err)
	}
	return nil
}

// LRange reads the requested window, newest first
func (s *SQLiteStore) LRange(ctx context.Context, key string, start, stop int) ([]json.RawMessage, error) {
	db := s.db.WithContext(ctx)
	offset, limit, err := s.window(db, key, start, stop)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, limit)
	if limit == 0 {
		return out, nil
	}

	var values []string
	err = db.Model(&kvListEntry{}).
		Where("key_name = ?", key).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Pluck("value", &values).Error
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", key, err)
	}
	for _, v := range values {
		out = append(out, json.RawMessage(v))
	}
	return out, nil
}

// LTrim deletes every row of the list outside the window in one statement
func (s *SQLiteStore) LTrim(ctx context.Context, key string, start, stop int) error {
	db := s.db.WithContext(ctx)
	offset, limit, err := s.window(db, key, start, stop)
	if err != nil {
		return err
	}

	if limit == 0 {
		err = db.Where("key_name = ?", key).Delete(&kvListEntry{}).Error
	} else {
		keep := db.Model(&kvListEntry{}).
			Select("id").
			Where("key_name = ?", key).
			Order("id DESC").
			Limit(limit).
			Offset(offset)
		err = db.Where("key_name = ? AND id NOT IN (?)", key, keep).Delete(&kvListEntry{}).Error
	}
	if err != nil {
		return fmt.Errorf("ltrim %s: %w", key, err)
	}
	return nil
}

// Ping checks the underlying connection
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.log.Info().Msg("SQLite store closed")
	return sqlDB.Close()
}

func (s *SQLiteStore) window(db *gorm.DB, key string, start, stop int) (int, int, error) {
	length := unboundedLength
	if needsLength(start, stop) {
		var n int64
		if err := db.Model(&kvListEntry{}).Where("key_name = ?", key).Count(&n).Error; err != nil {
			return 0, 0, fmt.Errorf("llen %s: %w", key, err)
		}
		length = int(n)
	}
	offset, limit := ListWindow(start, stop, length)
	return offset, limit, nil
}
