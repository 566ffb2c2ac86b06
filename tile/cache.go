package tile

import (
	"github.com/hupe1980/tilego/cache"
	"github.com/hupe1980/tilego/resource"
)

// Cache is the tile identity cache: a bounded LRU keyed by the
// world-copy-independent (wrapped) form of a tile identifier.
//
// Payloads for the same canonical tile are shared across world copies. On a
// hit the returned tile's identifier is overwritten with the caller's
// original, possibly world-shifted, identifier: the payload is
// identity-shared but every caller sees its own world copy's coordinates.
type Cache struct {
	inner *cache.Bounded[OverscaledID, *Tile]
	rc    *resource.Controller
}

// NewCache creates a tile cache holding at most max tiles. onEvict, if not
// nil, runs once per evicted tile (renderers release GPU resources there).
// rc, if not nil, accounts resident payload bytes against the shared budget;
// tiles whose payload does not fit are simply not cached.
func NewCache(max int, onEvict func(*Tile), rc *resource.Controller) *Cache {
	c := &Cache{rc: rc}
	c.inner = cache.NewBounded[OverscaledID, *Tile](max, func(t *Tile) {
		rc.ReleaseMemory(int64(len(t.Payload)))
		if onEvict != nil {
			onEvict(t)
		}
	})
	return c
}

// Get returns the cached tile for id, marking it most-recently-used. The
// returned tile carries the caller's identifier, world copy included.
func (c *Cache) Get(id OverscaledID) (*Tile, bool) {
	t, ok := c.inner.Get(id.Wrapped())
	if !ok {
		return nil, false
	}
	t.ID = id
	return t, true
}

// Has reports whether id's canonical tile is cached, without touching the
// recency order.
func (c *Cache) Has(id OverscaledID) bool {
	return c.inner.Has(id.Wrapped())
}

// Set stores the tile under id's wrapped form. If a byte budget is
// configured and the payload does not fit, the tile is not cached.
func (c *Cache) Set(id OverscaledID, t *Tile) {
	if !c.rc.TryAcquireMemory(int64(len(t.Payload))) {
		return
	}
	c.inner.Set(id.Wrapped(), t)
}

// Take removes and returns id's canonical tile without invoking the evict
// hook. The payload's byte reservation is still released; the tile is going
// back to live residency, not away. The returned tile carries the caller's
// identifier.
func (c *Cache) Take(id OverscaledID) (*Tile, bool) {
	t, ok := c.inner.Take(id.Wrapped())
	if !ok {
		return nil, false
	}
	c.rc.ReleaseMemory(int64(len(t.Payload)))
	t.ID = id
	return t, true
}

// Remove evicts id's canonical tile if present, invoking the evict hook.
func (c *Cache) Remove(id OverscaledID) bool {
	return c.inner.Remove(id.Wrapped())
}

// SetMaxSize changes the capacity, evicting least-recently-used tiles as
// needed.
func (c *Cache) SetMaxSize(max int) {
	c.inner.SetMaxSize(max)
}

// Filter removes every tile failing the predicate.
func (c *Cache) Filter(keep func(*Tile) bool) {
	c.inner.Filter(keep)
}

// Clear removes all tiles.
func (c *Cache) Clear() {
	c.inner.Clear()
}

// Len returns the number of cached tiles.
func (c *Cache) Len() int {
	return c.inner.Len()
}
