package tilestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore wraps a Store and counts backend reads.
type countingStore struct {
	Store
	gets int
}

func (c *countingStore) Get(ctx context.Context, key string) ([]byte, error) {
	c.gets++
	return c.Store.Get(ctx, key)
}

func TestCachingStore_ServesRepeatedReadsFromCache(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Store: NewMemoryStore()}
	s := NewCachingStore(backend, 8)

	require.NoError(t, s.Put(ctx, "1/0/0", []byte("data")))

	for i := 0; i < 3; i++ {
		data, err := s.Get(ctx, "1/0/0")
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), data)
	}

	assert.Equal(t, 1, backend.gets)

	hits, misses := s.Stats()
	assert.Equal(t, int64(2), hits)
	assert.Equal(t, int64(1), misses)
}

func TestCachingStore_PutAndDeleteInvalidate(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Store: NewMemoryStore()}
	s := NewCachingStore(backend, 8)

	require.NoError(t, s.Put(ctx, "1/0/0", []byte("v1")))
	_, err := s.Get(ctx, "1/0/0")
	require.NoError(t, err)

	// Overwriting drops the cached entry, so the next read sees v2.
	require.NoError(t, s.Put(ctx, "1/0/0", []byte("v2")))
	data, err := s.Get(ctx, "1/0/0")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), data)

	require.NoError(t, s.Delete(ctx, "1/0/0"))
	_, err = s.Get(ctx, "1/0/0")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachingStore_MissesAreNotCached(t *testing.T) {
	ctx := context.Background()
	backend := &countingStore{Store: NewMemoryStore()}
	s := NewCachingStore(backend, 8)

	_, err := s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 2, backend.gets)
}
