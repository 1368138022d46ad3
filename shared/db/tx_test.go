package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

var errAbort = errors.New("abort")

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// a single connection keeps every statement on the same in-memory database
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE entries (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	if err != nil {
		t.Fatalf("Failed to create test table: %v", err)
	}

	return db
}

func countEntries(t *testing.T, db *sql.DB) int {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		t.Fatalf("Failed to count entries: %v", err)
	}
	return count
}

func insertEntry(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := GetExecutor(ctx, db).ExecContext(ctx, "INSERT INTO entries (key, value) VALUES (?, ?)", key, value)
	return err
}

func TestRunInTransaction(t *testing.T) {
	tests := []struct {
		name      string
		fn        func(ctx context.Context, db *sql.DB) error
		wantErr   bool
		wantCount int
	}{
		{
			name: "Commit on success",
			fn: func(ctx context.Context, db *sql.DB) error {
				return insertEntry(ctx, db, "posts", "[]")
			},
			wantCount: 1,
		},
		{
			name: "Rollback on error",
			fn: func(ctx context.Context, db *sql.DB) error {
				if err := insertEntry(ctx, db, "posts", "[]"); err != nil {
					return err
				}
				return errAbort
			},
			wantErr:   true,
			wantCount: 0,
		},
		{
			name: "Nested call joins the outer transaction",
			fn: func(ctx context.Context, db *sql.DB) error {
				if err := insertEntry(ctx, db, "outer", "1"); err != nil {
					return err
				}
				return RunInTransaction(ctx, db, func(innerCtx context.Context) error {
					return insertEntry(innerCtx, db, "inner", "2")
				})
			},
			wantCount: 2,
		},
		{
			name: "Nested failure rolls back everything",
			fn: func(ctx context.Context, db *sql.DB) error {
				if err := insertEntry(ctx, db, "outer", "1"); err != nil {
					return err
				}
				return RunInTransaction(ctx, db, func(innerCtx context.Context) error {
					if err := insertEntry(innerCtx, db, "inner", "2"); err != nil {
						return err
					}
					return errAbort
				})
			},
			wantErr:   true,
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			err := RunInTransaction(context.Background(), db, func(txCtx context.Context) error {
				if _, ok := GetTx(txCtx); !ok {
					t.Error("Expected transaction in context")
				}
				return tt.fn(txCtx, db)
			})

			if tt.wantErr && !errors.Is(err, errAbort) {
				t.Errorf("RunInTransaction() error = %v, want %v", err, errAbort)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("RunInTransaction() unexpected error: %v", err)
			}

			if got := countEntries(t, db); got != tt.wantCount {
				t.Errorf("entries = %d, want %d", got, tt.wantCount)
			}
		})
	}
}

func TestRunInTransaction_NestedReusesTx(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := RunInTransaction(context.Background(), db, func(outerCtx context.Context) error {
		return RunInTransaction(outerCtx, db, func(innerCtx context.Context) error {
			outerTx, _ := GetTx(outerCtx)
			innerTx, _ := GetTx(innerCtx)
			if outerTx != innerTx {
				t.Error("Expected nested transaction to reuse outer transaction")
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("RunInTransaction failed: %v", err)
	}
}

func TestGetExecutor(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()

	if executor := GetExecutor(ctx, db); executor != db {
		t.Error("Expected executor to be the database without a transaction")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	if executor := GetExecutor(WithTx(ctx, tx), db); executor != tx {
		t.Error("Expected executor to be the transaction")
	}
}
