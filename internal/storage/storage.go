package storage

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

var ErrNotFound = errors.New("object not found")

// Store is a key-addressed blob store. The rest of the system only ever
// consumes the resulting key/URL strings, never the bytes.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
	// PublicURL maps a key to the URL clients load it from.
	PublicURL(key string) string
}

// PutWithRetry retries a blob write with bounded exponential backoff and
// random jitter. Uploads are the flakiest call in the system on venue wifi.
func PutWithRetry(ctx context.Context, store Store, key string, data []byte, contentType string, maxAttempts int) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = store.Put(ctx, key, data, contentType)
		if lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}

		backoff := 300 * time.Millisecond << (attempt - 1)
		if backoff > 2*time.Second {
			backoff = 2 * time.Second
		}
		jitter := time.Duration(rand.Intn(200)) * time.Millisecond

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff + jitter):
		}
	}
	return lastErr
}
