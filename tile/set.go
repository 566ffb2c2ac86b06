package tile

import (
	"sort"
	"time"

	"github.com/hupe1980/tilego/resource"
)

// Options configure a Set.
type Options struct {
	// MaxCacheSize bounds the identity cache of recently retired tiles.
	MaxCacheSize int

	// FadeDuration is the symbol fade-out grace period.
	FadeDuration time.Duration

	// OnEvict runs once per tile leaving the identity cache.
	OnEvict func(*Tile)

	// Controller, if set, accounts payload bytes against a shared budget.
	Controller *resource.Controller
}

// Set owns the resident tiles of one source: the live map, the identity
// cache retired tiles drop into for reuse, and the retention strategy.
//
// All operations are synchronous; the host serializes mutating calls
// against a given Set (single-writer discipline).
type Set struct {
	tiles    map[OverscaledID]*Tile
	cache    *Cache
	retainer Retainer
}

// NewSet creates an empty tile set.
func NewSet(optFns ...func(*Options)) *Set {
	opts := Options{
		MaxCacheSize: 0,
		FadeDuration: 300 * time.Millisecond,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	return &Set{
		tiles:    make(map[OverscaledID]*Tile),
		cache:    NewCache(opts.MaxCacheSize, opts.OnEvict, opts.Controller),
		retainer: Retainer{FadeDuration: opts.FadeDuration},
	}
}

// Add makes a tile resident. If the identity cache holds the tile's
// canonical payload, the cached tile is revived instead of the given one.
// A revive consumes the cache entry without running OnEvict; the tile's
// renderer-side resources stay alive.
func (s *Set) Add(t *Tile) *Tile {
	if cached, ok := s.cache.Take(t.ID); ok {
		s.tiles[t.ID] = cached
		return cached
	}
	s.tiles[t.ID] = t
	return t
}

// Get returns the resident tile for id.
func (s *Set) Get(id OverscaledID) (*Tile, bool) {
	t, ok := s.tiles[id]
	return t, ok
}

// Len returns the number of resident tiles.
func (s *Set) Len() int {
	return len(s.tiles)
}

// Cache exposes the identity cache of retired tiles.
func (s *Set) Cache() *Cache {
	return s.cache
}

// SortedIDs returns the resident identifiers ordered coarse-to-fine.
func (s *Set) SortedIDs() []OverscaledID {
	ids := make([]OverscaledID, 0, len(s.tiles))
	for id := range s.tiles {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
	return ids
}

// Update runs one retention cycle: tiles in retain stay resident (and any
// fade hold is cleared), the rest are dropped immediately or held for a
// fade-out per the retention state machine. Dropped tiles with data move
// into the identity cache for reuse; the removed identifiers are returned.
func (s *Set) Update(retain map[OverscaledID]bool, now time.Time) []OverscaledID {
	removed := s.retainer.Update(s.tiles, retain, now)
	for _, id := range removed {
		t := s.tiles[id]
		delete(s.tiles, id)
		if t.HasData() {
			t.ClearFadeHold()
			s.cache.Set(id, t)
		}
	}
	return removed
}
