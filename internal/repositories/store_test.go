package repositories

import (
	"database/sql"
	"testing"

	"github.com/desertthunder/mixtape/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestSnapshotStore(t *testing.T) {
	t.Run("Put And Get", func(t *testing.T) {
		store := NewSnapshotStore(setupTestDB(t))

		if err := store.Put("k", "v1"); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		value, found, err := store.Get("k")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !found || value != "v1" {
			t.Errorf("expected v1, got %q (found=%v)", value, found)
		}
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		store := NewSnapshotStore(setupTestDB(t))

		if err := store.Put("k", "v1"); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if err := store.Put("k", "v2"); err != nil {
			t.Fatalf("second put failed: %v", err)
		}

		value, _, err := store.Get("k")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if value != "v2" {
			t.Errorf("expected overwritten value v2, got %q", value)
		}
	})

	t.Run("Get Missing", func(t *testing.T) {
		store := NewSnapshotStore(setupTestDB(t))

		_, found, err := store.Get("missing")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if found {
			t.Error("expected missing key to report not found")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		store := NewSnapshotStore(setupTestDB(t))

		if err := store.Put("k", "v"); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if err := store.Delete("k"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		_, found, _ := store.Get("k")
		if found {
			t.Error("deleted key should be gone")
		}
	})

	t.Run("Delete Missing Is NoOp", func(t *testing.T) {
		store := NewSnapshotStore(setupTestDB(t))

		if err := store.Delete("never"); err != nil {
			t.Errorf("deleting a missing key should not fail: %v", err)
		}
	})
}
