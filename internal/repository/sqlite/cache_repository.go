package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"task-dashboard/internal/domain"
)

type CacheRepository struct {
	db *DB
}

func NewCacheRepository(db *DB) *CacheRepository {
	return &CacheRepository{db: db}
}

func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: cache key %s", domain.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read cache: %w", err)
	}
	return value, nil
}

func (r *CacheRepository) Put(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}
