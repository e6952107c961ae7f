// Package store provides durable key-value storage for per-user
// memory records, keyed by user identifier.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no record exists for a user.
var ErrNotFound = errors.New("record not found")

// Store is the persistence contract the memory service depends on.
// Values are opaque JSON blobs; the store never inspects them.
type Store interface {
	// Get returns the stored blob for a user, or ErrNotFound.
	Get(ctx context.Context, userID string) ([]byte, error)

	// Put stores or replaces the blob for a user.
	Put(ctx context.Context, userID string, data []byte) error

	// Delete removes a user's blob. Deleting a missing record is not
	// an error.
	Delete(ctx context.Context, userID string) error

	// List returns the IDs of all users with a stored record.
	List(ctx context.Context) ([]string, error)

	// Close releases any underlying resources.
	Close() error
}
