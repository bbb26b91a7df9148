package invoicing

import (
	"context"
	"time"
)

// DocumentStorage is the object store behind the GoBD archive and expense
// receipts. Implemented by the infrastructure layer (S3, in-memory).
type DocumentStorage interface {
	// Put writes data under key, replacing any existing object
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get reads the object stored under key. Returns shared.ErrNotFound when missing.
	Get(ctx context.Context, key string) ([]byte, error)

	// PresignUpload returns a URL the client can PUT the object to
	PresignUpload(ctx context.Context, key, contentType string, expiresIn time.Duration) (string, time.Time, error)

	// PresignDownload returns a time-limited GET URL
	PresignDownload(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)

	// Exists reports whether key is present
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error
}

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time

func (c Clock) today() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
