package tilestore

import (
	"context"

	"github.com/hupe1980/tilego/cache"
)

// CachingStore wraps a Store and adds a bounded read-through payload cache.
// Writes and deletes invalidate the cached entry so readers never see stale
// bytes.
type CachingStore struct {
	inner Store
	cache *cache.Bounded[string, []byte]
}

// NewCachingStore creates a CachingStore holding at most maxEntries
// payloads.
func NewCachingStore(inner Store, maxEntries int) *CachingStore {
	return &CachingStore{
		inner: inner,
		cache: cache.NewBounded[string, []byte](maxEntries, nil),
	}
}

// Put writes a payload and invalidates the cached entry.
func (s *CachingStore) Put(ctx context.Context, key string, data []byte) error {
	s.cache.Remove(key)
	return s.inner.Put(ctx, key, data)
}

// Get reads a payload, serving repeated reads from the cache.
func (s *CachingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if data, ok := s.cache.Get(key); ok {
		return data, nil
	}

	data, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, data)
	return data, nil
}

// Delete removes a payload and invalidates the cached entry.
func (s *CachingStore) Delete(ctx context.Context, key string) error {
	s.cache.Remove(key)
	return s.inner.Delete(ctx, key)
}

// List returns all keys with the given prefix, sorted.
func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

// Stats returns cache hit/miss counters.
func (s *CachingStore) Stats() (hits, misses int64) {
	return s.cache.Stats()
}
