package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dtroode/rolodex/internal/model"
)

var _ model.KeyValueStore = (*KeyValueRepository)(nil)

// KeyValueRepository stores blobs in the kv_entries table.
type KeyValueRepository struct {
	db *sql.DB
}

func NewKeyValueRepository(db *sql.DB) *KeyValueRepository {
	return &KeyValueRepository{
		db: db,
	}
}

func (r *KeyValueRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM kv_entries WHERE key = $1`

	var value []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to select kv entry: %w", err)
	}

	return value, nil
}

func (r *KeyValueRepository) Set(ctx context.Context, key string, value []byte) error {
	const query = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert kv entry: %w", err)
	}

	return nil
}
