package storage

import (
	"context"
	"time"
)

// ObjectStore abstracts the audio object backend. The stream service only
// needs existence checks and read-only signed URLs; uploads are managed
// out of band.
type ObjectStore interface {
	// Exists reports whether an object is present at the given key.
	Exists(ctx context.Context, key string) (bool, error)

	// SignedReadURL returns a time-limited GET URL for the object.
	SignedReadURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}
