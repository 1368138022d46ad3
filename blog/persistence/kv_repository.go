package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dfryer1193/postboard/blog/domain"
	"github.com/dfryer1193/postboard/shared/db"
)

var _ domain.KeyValueStore = (*SQLiteKeyValueStore)(nil)

// SQLiteKeyValueStore implements domain.KeyValueStore on the kv_store table.
type SQLiteKeyValueStore struct {
	db *sql.DB
}

// NewKeyValueStore creates a new SQLiteKeyValueStore from a standard sql.DB
func NewKeyValueStore(sqlDB *sql.DB) *SQLiteKeyValueStore {
	return &SQLiteKeyValueStore{
		db: sqlDB,
	}
}

const getValueQuery = `
	SELECT value FROM kv_store WHERE key = ?
`

// Get returns the raw value stored under key.
func (r *SQLiteKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, fmt.Errorf("key cannot be empty")
	}

	var value string
	err := db.GetExecutor(ctx, r.db).QueryRowContext(ctx, getValueQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get value for key %s: %w", key, err)
	}

	return []byte(value), true, nil
}

const setValueQuery = `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = excluded.updated_at
`

// Set overwrites the value stored under key.
func (r *SQLiteKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	return db.RunInTransaction(ctx, r.db, func(txCtx context.Context) error {
		executor := db.GetExecutor(txCtx, r.db)
		_, err := executor.ExecContext(txCtx, setValueQuery, key, string(value), time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to set value for key %s: %w", key, err)
		}
		return nil
	})
}

// Atomically runs fn inside a transaction carried by its ctx.
func (r *SQLiteKeyValueStore) Atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.RunInTransaction(ctx, r.db, fn)
}
