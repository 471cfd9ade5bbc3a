package local

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CachePut stores a copy of a cloud response under key.
func (s *Store) CachePut(ctx context.Context, key string, payload []byte) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO cloud_cache (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, payload, formatTime(s.now()),
	); err != nil {
		return fmt.Errorf("put cache entry %s: %w", key, err)
	}
	return nil
}

// CacheGet returns the cached payload and the time it was stored.
// ErrNotFound is returned for an unknown key.
func (s *Store) CacheGet(ctx context.Context, key string) ([]byte, time.Time, error) {
	var (
		payload   []byte
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx, `SELECT payload, updated_at FROM cloud_cache WHERE key = ?`, key).Scan(&payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("get cache entry %s: %w", key, err)
	}
	stored, err := parseTime(updatedAt)
	if err != nil {
		return nil, time.Time{}, err
	}
	return payload, stored, nil
}

func (s *Store) CacheClear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cloud_cache`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
