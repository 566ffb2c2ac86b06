package tilestore

import (
	"context"
	"fmt"
	"os"

	"github.com/hupe1980/tilego/tile"
)

// ErrNotFound is returned when a tile payload does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for persisting tile payloads by key.
//
// Keys are slash-separated relative paths; Key produces the canonical
// layout for tile identifiers. Implementations must be safe for concurrent
// use.
type Store interface {
	// Put writes a payload atomically, replacing any existing one.
	Put(ctx context.Context, key string, data []byte) error
	// Get reads a payload. Missing keys return ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes a payload. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns all keys with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Key returns the store key for a tile: "z/x/y" for canonically zoomed
// tiles, with the overscaled zoom prepended when data is reused past the
// source's maxzoom. The world copy never appears in the key; one payload
// serves every copy.
func Key(id tile.OverscaledID) string {
	c := id.Canonical
	if id.OverscaledZ == c.Z {
		return c.String()
	}
	return fmt.Sprintf("%d/%s", id.OverscaledZ, c)
}
