// Package sqlite provides a durable token tier stored in a SQLite file through gorm.
package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// ErrOpen is returned when the database file cannot be opened or migrated.
var ErrOpen = errors.New("failed to open token database")

// Store is a gorm backed token tier.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// sessionToken is one stored key.
type sessionToken struct {
	Name      string `gorm:"primaryKey;size:64"`
	Value     string
	ExpiresAt *time.Time `gorm:"index"`
}

func (sessionToken) TableName() string { return "session_tokens" }

// Open opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		return nil, errors.Join(ErrOpen, err)
	}
	s, err := New(db)
	if err != nil {
		return nil, errors.Join(ErrOpen, err)
	}
	return s, nil
}

// New wraps an existing gorm connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	s := &Store{db: db, now: time.Now}
	return s, db.AutoMigrate(&sessionToken{})
}

// Get returns the unexpired value under key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var rec sessionToken
	tx := s.db.WithContext(ctx).
		Where("name = ? AND (expires_at IS NULL OR expires_at >= ?)", key, s.now()).
		Limit(1).
		Find(&rec)
	if tx.Error != nil || tx.RowsAffected == 0 {
		return "", false, tx.Error
	}
	return rec.Value, true, nil
}

// Set upserts value under key. A zero expiresAt never expires.
func (s *Store) Set(ctx context.Context, key, value string, expiresAt time.Time) error {
	rec := sessionToken{Name: key, Value: value}
	if !expiresAt.IsZero() {
		rec.ExpiresAt = &expiresAt
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at"}),
	}).Create(&rec).Error
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&sessionToken{}, "name = ?", key).Error
}

// DeleteExpired removes expired rows and returns how many were deleted.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	tx := s.db.WithContext(ctx).Delete(&sessionToken{}, "expires_at IS NOT NULL AND expires_at < ?", s.now())
	return tx.RowsAffected, tx.Error
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
