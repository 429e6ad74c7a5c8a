package store

import "context"

// SessionKey is the key the last login response is persisted under.
const SessionKey = "auth"

// Repo defines the key-value storage used to persist the session between runs.
type Repo interface {
	// Get returns the value for key, or errors.ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Set creates or replaces the value for key
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Removing an absent key is not an error
	Remove(ctx context.Context, key string) error
}
