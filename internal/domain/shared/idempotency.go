package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys of operations that already ran
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases resources held by the store
	Close() error
}

// Lock is a held lock that must be released by its owner
type Lock interface {
	Release(ctx context.Context) error
}

// Locker obtains named, expiring locks shared across processes
type Locker interface {
	// Obtain acquires the lock or returns ErrLocked if someone else holds it
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}
