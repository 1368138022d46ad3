package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dfryer1193/postboard/blog/domain"
	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the kv_store table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE kv_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		t.Fatalf("failed to create kv_store table: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func TestKeyValueStore_GetMissing(t *testing.T) {
	store := NewKeyValueStore(setupTestDB(t))

	value, found, err := store.Get(context.Background(), "posts")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found {
		t.Error("found = true for a key that was never set")
	}
	if value != nil {
		t.Errorf("value = %q, want nil", value)
	}
}

func TestKeyValueStore_SetAndOverwrite(t *testing.T) {
	store := NewKeyValueStore(setupTestDB(t))
	ctx := context.Background()

	if err := store.Set(ctx, "posts", []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "posts", []byte(`[]`)); err != nil {
		t.Fatalf("Set (overwrite) failed: %v", err)
	}

	value, found, err := store.Get(ctx, "posts")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !found {
		t.Fatal("found = false after Set")
	}
	if string(value) != "[]" {
		t.Errorf("value = %q, want %q", value, "[]")
	}
}

func TestKeyValueStore_KeysAreIndependent(t *testing.T) {
	store := NewKeyValueStore(setupTestDB(t))
	ctx := context.Background()

	if err := store.Set(ctx, "a", []byte("one")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "b", []byte("two")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, _, err := store.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(value) != "one" {
		t.Errorf("value = %q, want %q", value, "one")
	}
}

func TestKeyValueStore_EmptyKey(t *testing.T) {
	store := NewKeyValueStore(setupTestDB(t))
	ctx := context.Background()

	if _, _, err := store.Get(ctx, ""); err == nil {
		t.Error("Get should return error for empty key")
	}
	if err := store.Set(ctx, "", []byte("x")); err == nil {
		t.Error("Set should return error for empty key")
	}
}

func TestKeyValueStore_Atomically(t *testing.T) {
	errAbort := errors.New("abort")

	tests := []struct {
		name      string
		fnErr     error
		wantValue string
	}{
		{name: "Commit", wantValue: "new"},
		{name: "Rollback", fnErr: errAbort, wantValue: "old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewKeyValueStore(setupTestDB(t))
			ctx := context.Background()

			if err := store.Set(ctx, "posts", []byte("old")); err != nil {
				t.Fatalf("Set failed: %v", err)
			}

			err := store.Atomically(ctx, func(txCtx context.Context) error {
				value, _, err := store.Get(txCtx, "posts")
				if err != nil {
					return err
				}
				if string(value) != "old" {
					t.Errorf("value inside transaction = %q, want %q", value, "old")
				}
				if err := store.Set(txCtx, "posts", []byte("new")); err != nil {
					return err
				}
				return tt.fnErr
			})
			if !errors.Is(err, tt.fnErr) {
				t.Fatalf("Atomically error = %v, want %v", err, tt.fnErr)
			}

			value, _, err := store.Get(ctx, "posts")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(value) != tt.wantValue {
				t.Errorf("value = %q, want %q", value, tt.wantValue)
			}
		})
	}
}

func TestKeyValueStore_InterfaceCompliance(t *testing.T) {
	var _ domain.KeyValueStore = (*SQLiteKeyValueStore)(nil)
}
