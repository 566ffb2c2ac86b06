package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// EvictFunc is called once for every value removed from the cache, whether
// by capacity eviction, overwrite, Remove, Filter, SetMaxSize or Clear.
// Take is the one exception: it hands the value back to the caller instead
// of evicting it.
//
// The hook runs synchronously inside the mutating operation and must not
// call back into the same cache instance.
type EvictFunc[V any] func(V)

// Bounded is a generic fixed-capacity cache with least-recently-used
// eviction and an on-evict hook.
//
// Recency is a strict total order updated only by Get hits and Set
// insert/overwrite; eviction always removes the single current minimum under
// this order. The hook fires exactly once per removal, never batched and
// never skipped, and never for a key that was not actually held.
type Bounded[K comparable, V any] struct {
	mu        sync.Mutex
	max       int
	items     map[K]*list.Element
	evictList *list.List
	onEvict   EvictFunc[V]

	hits   atomic.Int64
	misses atomic.Int64
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewBounded creates a cache holding at most max entries. A max of zero or
// below means the cache retains nothing. onEvict may be nil.
func NewBounded[K comparable, V any](max int, onEvict EvictFunc[V]) *Bounded[K, V] {
	if max < 0 {
		max = 0
	}
	return &Bounded[K, V]{
		max:       max,
		items:     make(map[K]*list.Element),
		evictList: list.New(),
		onEvict:   onEvict,
	}
}

// Get returns the value for key and marks it most-recently-used.
// A miss has no side effect on the recency order.
func (c *Bounded[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return ent.Value.(*entry[K, V]).value, true
	}
	c.misses.Add(1)
	var zero V
	return zero, false
}

// Has reports whether key is present without touching the recency order.
func (c *Bounded[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Set inserts value as most-recently-used. An existing entry under the same
// key is removed first, invoking the evict hook on the old value. If the
// cache is over capacity afterwards, least-recently-used entries are evicted
// until the bound holds again, so size never exceeds the capacity after Set
// returns.
func (c *Bounded[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.removeElement(ent)
	}

	ent := &entry[K, V]{key, value}
	c.items[key] = c.evictList.PushFront(ent)

	for c.evictList.Len() > c.max {
		back := c.evictList.Back()
		if back == nil {
			break
		}
		c.removeElement(back)
	}
}

// Remove removes the entry if present, invoking the evict hook with its
// value. Removing an absent key is a no-op and reports false.
func (c *Bounded[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeElement(ent)
	return true
}

// Take removes and returns the entry if present, without invoking the evict
// hook. Ownership of the value passes back to the caller rather than ending
// with the removal.
func (c *Bounded[K, V]) Take(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.evictList.Remove(ent)
	delete(c.items, key)
	return ent.Value.(*entry[K, V]).value, true
}

// SetMaxSize changes the capacity. Shrinking below the current size evicts
// least-recently-used entries one at a time, each through the evict hook,
// until the new bound holds. Growing never evicts.
func (c *Bounded[K, V]) SetMaxSize(max int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if max < 0 {
		max = 0
	}
	c.max = max

	for c.evictList.Len() > c.max {
		back := c.evictList.Back()
		if back == nil {
			break
		}
		c.removeElement(back)
	}
}

// Filter removes every entry whose value fails the predicate, each removal
// invoking the evict hook. Surviving entries keep their recency order.
func (c *Bounded[K, V]) Filter(keep func(V) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// removeElement mutates the list, so collect first.
	var toRemove []*list.Element
	for e := c.evictList.Front(); e != nil; e = e.Next() {
		if !keep(e.Value.(*entry[K, V]).value) {
			toRemove = append(toRemove, e)
		}
	}
	for _, e := range toRemove {
		c.removeElement(e)
	}
}

// Clear removes all entries, invoking the evict hook once per removed value.
func (c *Bounded[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for e := c.evictList.Front(); e != nil; e = e.Next() {
		if c.onEvict != nil {
			c.onEvict(e.Value.(*entry[K, V]).value)
		}
	}
	c.items = make(map[K]*list.Element)
	c.evictList.Init()
}

// Len returns the number of entries currently held.
func (c *Bounded[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// MaxSize returns the configured capacity.
func (c *Bounded[K, V]) MaxSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.max
}

// Stats returns hit/miss counters.
func (c *Bounded[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Bounded[K, V]) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	kv := e.Value.(*entry[K, V])
	delete(c.items, kv.key)
	if c.onEvict != nil {
		c.onEvict(kv.value)
	}
}
