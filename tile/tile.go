package tile

import (
	"time"
)

// Tile is a single resident tile: an identifier, the externally produced
// payload, and the fade-hold state that keeps symbol-bearing tiles alive
// briefly after they stop being ideal.
//
// The payload producer must hand over fully decoded payloads; the tile
// never sees partial data.
type Tile struct {
	// ID is the identifier the tile is currently addressed by. On a cache
	// hit it carries the caller's world copy, not necessarily the one the
	// tile was stored under.
	ID OverscaledID

	// Payload is the decoded tile payload. Its format is owned by the
	// producer; this core only tracks residency and size.
	Payload []byte

	// Size is the tile's screen size in pixels.
	Size float64

	// QueryPadding is the maximum additional screen-pixel radius any of the
	// tile's layers need during spatial queries (e.g. for wide lines or
	// icons drawn past the tile edge).
	QueryPadding float64

	// HasSymbols reports renderable symbol content. Only symbol-bearing
	// tiles are held for a fade-out instead of being dropped immediately.
	HasSymbols bool

	loaded        bool
	holding       bool
	fadeHoldUntil time.Time
}

// New creates a tile with the given identifier and screen size.
func New(id OverscaledID, size float64) *Tile {
	return &Tile{ID: id, Size: size}
}

// SetPayload installs a fully decoded payload and marks the tile loaded.
func (t *Tile) SetPayload(data []byte) {
	t.Payload = data
	t.loaded = true
}

// HasData reports whether a loaded payload is present.
func (t *Tile) HasData() bool {
	return t.loaded
}

// HoldingForFade reports whether the tile is inside a fade hold.
func (t *Tile) HoldingForFade() bool {
	return t.holding
}

// SetHoldDuration arms the fade hold. The hold is set once, on the first
// update cycle where a symbol-bearing tile is no longer retained; re-arming
// while already holding keeps the original deadline.
func (t *Tile) SetHoldDuration(now time.Time, duration time.Duration) {
	if t.holding {
		return
	}
	t.holding = true
	t.fadeHoldUntil = now.Add(duration)
}

// ClearFadeHold resets the tile to "not holding". A later fade hold starts
// from zero again.
func (t *Tile) ClearFadeHold() {
	t.holding = false
	t.fadeHoldUntil = time.Time{}
}

// SymbolFadeFinished reports whether the hold interval has elapsed. A tile
// that is not holding has nothing left to fade.
func (t *Tile) SymbolFadeFinished(now time.Time) bool {
	return !t.holding || !now.Before(t.fadeHoldUntil)
}

// IsRenderable reports whether the tile should be considered for drawing a
// layer. A tile mid-fade-hold is visually retained only for symbol
// continuity; non-symbol layers should prefer a replacement tile.
func (t *Tile) IsRenderable(symbolLayer bool) bool {
	return t.HasData() && (symbolLayer || !t.HoldingForFade())
}
