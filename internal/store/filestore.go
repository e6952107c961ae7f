package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps one <userID>.json file per user under a data
// directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed and returns a
// filesystem-backed store.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create memory directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(userID string) string {
	// User IDs are platform snowflakes; filepath.Base guards against
	// traversal in hand-crafted requests.
	return filepath.Join(s.dir, filepath.Base(userID)+".json")
}

// Get returns the stored blob for a user, or ErrNotFound.
func (s *FileStore) Get(ctx context.Context, userID string) ([]byte, error) {
	data, err := os.ReadFile(s.path(userID))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read memory file: %w", err)
	}
	return data, nil
}

// Put writes the blob atomically: temp file then rename.
func (s *FileStore) Put(ctx context.Context, userID string, data []byte) error {
	target := s.path(userID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write memory file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("failed to replace memory file: %w", err)
	}
	return nil
}

// Delete removes a user's file; a missing file is not an error.
func (s *FileStore) Delete(ctx context.Context, userID string) error {
	err := os.Remove(s.path(userID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete memory file: %w", err)
	}
	return nil
}

// List returns the user IDs of all stored records.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}

// Close is a no-op for the filesystem backend.
func (s *FileStore) Close() error { return nil }
