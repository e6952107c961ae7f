package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps user memory blobs in a single-table SQLite
// database. Useful for single-node deployments that want one durable
// file instead of a directory of JSON documents.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database and ensures the
// schema exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// Single writer; modernc sqlite serializes writes anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS user_memory (
			user_id    TEXT PRIMARY KEY,
			data       BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get returns the stored blob for a user, or ErrNotFound.
func (s *SQLiteStore) Get(ctx context.Context, userID string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM user_memory WHERE user_id = ?`, userID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query memory: %w", err)
	}
	return data, nil
}

// Put stores or replaces the blob for a user.
func (s *SQLiteStore) Put(ctx context.Context, userID string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_memory (user_id, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET
			data = excluded.data,
			updated_at = CURRENT_TIMESTAMP
	`, userID, data)
	if err != nil {
		return fmt.Errorf("failed to upsert memory: %w", err)
	}
	return nil
}

// Delete removes a user's row; a missing row is not an error.
func (s *SQLiteStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM user_memory WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete memory: %w", err)
	}
	return nil
}

// List returns the user IDs of all stored records.
func (s *SQLiteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id FROM user_memory ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list memory rows: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
