// package repositories provides the persistence layer: a key-value snapshot
// store over SQLite and the adapter that saves whole playlist collections
// through it.
package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// SnapshotStore is a key-value string store backed by the snapshots table.
// Writes are full-value overwrites; the single-writer snapshot model needs
// nothing finer.
type SnapshotStore struct {
	db *sql.DB
}

// NewSnapshotStore creates a SnapshotStore with the given database connection
func NewSnapshotStore(db *sql.DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Put stores value under key, replacing any previous value.
func (s *SnapshotStore) Put(key, value string) error {
	query := `
		INSERT INTO snapshots (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write snapshot %q: %w", key, err)
	}

	return nil
}

// Get retrieves the value stored under key. The second return is false when no
// snapshot exists.
func (s *SnapshotStore) Get(key string) (string, bool, error) {
	var value string

	err := s.db.QueryRow("SELECT value FROM snapshots WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read snapshot %q: %w", key, err)
	}

	return value, true, nil
}

// Delete removes the value stored under key. Deleting an absent key is not an
// error.
func (s *SnapshotStore) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM snapshots WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", key, err)
	}
	return nil
}
