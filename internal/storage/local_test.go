package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080")
	ctx := context.Background()

	key := "project-images/abc/photo-1.png"
	require.NoError(t, store.Put(ctx, key, []byte("png-bytes"), "image/png"))

	data, contentType, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)

	assert.Equal(t, "http://localhost:8080/uploads/"+key, store.PublicURL(key))

	require.NoError(t, store.Delete(ctx, key))
	_, _, err = store.Get(ctx, key)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080")
	ctx := context.Background()

	err := store.Put(ctx, "../escape.txt", []byte("x"), "text/plain")
	require.Error(t, err)

	_, _, err = store.Get(ctx, "a/../../etc/passwd")
	require.Error(t, err)
}

func TestLocalStoreDeleteMissingIsNoop(t *testing.T) {
	store := NewLocalStore(t.TempDir(), "http://localhost:8080")
	assert.NoError(t, store.Delete(context.Background(), "never/written.png"))
}

// flakyStore fails a fixed number of puts before succeeding.
type flakyStore struct {
	LocalStore
	failures int
	calls    int
}

func (s *flakyStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	s.calls++
	if s.calls <= s.failures {
		return errors.New("transient storage error")
	}
	return nil
}

func TestPutWithRetryRecovers(t *testing.T) {
	store := &flakyStore{failures: 2}
	err := PutWithRetry(context.Background(), store, "k", []byte("v"), "text/plain", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, store.calls)
}

func TestPutWithRetryGivesUp(t *testing.T) {
	store := &flakyStore{failures: 10}
	err := PutWithRetry(context.Background(), store, "k", []byte("v"), "text/plain", 3)
	require.Error(t, err)
	assert.Equal(t, 3, store.calls)
}

func TestPutWithRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &flakyStore{failures: 10}
	err := PutWithRetry(ctx, store, "k", []byte("v"), "text/plain", 5)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, store.calls, "cancellation stops further attempts")
}
