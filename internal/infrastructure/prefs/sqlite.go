// Package prefs persists small client-side preferences with an expiry.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/swellfound/standards/internal/domain"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// HideOnboardingKey stores the "don't show again" choice of the carousel.
const HideOnboardingKey = domain.PrefHideOnboarding

// DefaultTTL keeps a preference for roughly a year.
const DefaultTTL = 365 * 24 * time.Hour

// SQLiteStore implements domain.PreferenceStore on a single table.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (creating if needed) the preference database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("prefs: empty database path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS preferences (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		expires_at INTEGER NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create preferences table: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

// GetBool returns the stored flag, or domain.ErrPreferenceNotFound when the
// key is unset or expired. Expired rows are removed on read.
func (s *SQLiteStore) GetBool(ctx context.Context, key string) (bool, error) {
	var (
		value     string
		expiresAt int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, expires_at FROM preferences WHERE key = ?`, key,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, domain.ErrPreferenceNotFound
	}
	if err != nil {
		return false, fmt.Errorf("select preference: %w", err)
	}

	if s.now().Unix() >= expiresAt {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
			return false, fmt.Errorf("delete expired preference: %w", err)
		}
		return false, domain.ErrPreferenceNotFound
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("decode preference %q: %w", key, err)
	}
	return b, nil
}

// SetBool upserts a flag that expires after ttl.
func (s *SQLiteStore) SetBool(ctx context.Context, key string, value bool, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	expiresAt := s.now().Add(ttl).Unix()
	_, err := s.db.ExecContext(ctx, `INSERT INTO preferences (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		key, strconv.FormatBool(value), expiresAt)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}
	return nil
}

// Delete removes a key; deleting an unset key is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete preference: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
