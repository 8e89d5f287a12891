// Package cache persists raw catalog responses between runs, keyed by
// programme ID, in a single-table sqlite database under the cache
// directory.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const dbFileName = "metadata.db"

// Store is the keyed metadata store. A nil *Store is never returned;
// Open fails instead.
type Store struct {
	db *sql.DB
}

// Open creates the cache directory if needed, opens the database and
// applies pending migrations.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached payload for a programme ID. The second return
// value reports whether an entry exists.
func (s *Store) Get(programID string) (string, bool, error) {
	var raw string
	err := s.db.QueryRow(`
		SELECT raw_json FROM entries WHERE program_id = ?
	`, programID).Scan(&raw)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	return raw, true, nil
}

// Put inserts or replaces the payload for a programme ID.
func (s *Store) Put(programID, raw string) error {
	_, err := s.db.Exec(`
		INSERT INTO entries (program_id, raw_json, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT (program_id) DO UPDATE SET
			raw_json = excluded.raw_json,
			fetched_at = excluded.fetched_at
	`, programID, raw, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

// Keys enumerates every cached programme ID.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT program_id FROM entries ORDER BY program_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate cache keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan cache key: %w", err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// Delete removes the entry for a programme ID; deleting a missing key
// is not an error.
func (s *Store) Delete(programID string) error {
	if _, err := s.db.Exec(`DELETE FROM entries WHERE program_id = ?`, programID); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Prune deletes every entry whose key is not in the live set and
// returns the number of entries removed.
func (s *Store) Prune(live []string) (int, error) {
	liveSet := make(map[string]struct{}, len(live))
	for _, id := range live {
		liveSet[id] = struct{}{}
	}

	keys, err := s.Keys()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for _, key := range keys {
		if _, ok := liveSet[key]; ok {
			continue
		}
		if err := s.Delete(key); err != nil {
			return pruned, err
		}
		pruned++
	}

	return pruned, nil
}
