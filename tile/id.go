package tile

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Extent is the tile-local coordinate extent. Query geometry mapped into a
// tile spans [0, Extent) across the tile's width and height.
const Extent = 8192.0

// CanonicalID addresses a tile in the canonical (world-copy-free) pyramid.
type CanonicalID struct {
	Z uint8
	X uint32
	Y uint32
}

// String returns the "z/x/y" form.
func (c CanonicalID) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Z, c.X, c.Y)
}

// IsChildOf reports whether c lies under parent in the tile pyramid.
func (c CanonicalID) IsChildOf(parent CanonicalID) bool {
	if parent.Z >= c.Z {
		return false
	}
	zDiff := c.Z - parent.Z
	return parent.X == c.X>>zDiff && parent.Y == c.Y>>zDiff
}

// OverscaledID addresses a resident tile: the canonical coordinate, the
// world-copy repetition index of the projection, and an overscaled zoom that
// may exceed the canonical zoom when a source's maxzoom forces data reuse at
// higher view zooms.
type OverscaledID struct {
	OverscaledZ uint8
	Wrap        int
	Canonical   CanonicalID
}

// NewOverscaledID creates an OverscaledID. overscaledZ must be at least the
// canonical zoom; lower values are clamped up.
func NewOverscaledID(overscaledZ uint8, wrap int, canonical CanonicalID) OverscaledID {
	if overscaledZ < canonical.Z {
		overscaledZ = canonical.Z
	}
	return OverscaledID{OverscaledZ: overscaledZ, Wrap: wrap, Canonical: canonical}
}

// String returns the "overscaledZ:wrap:z/x/y" form.
func (id OverscaledID) String() string {
	return fmt.Sprintf("%d:%d:%s", id.OverscaledZ, id.Wrap, id.Canonical)
}

// Wrapped returns the world-copy-independent form of the identifier. The
// same cached payload is valid for every world copy, so caches key by the
// wrapped form.
func (id OverscaledID) Wrapped() OverscaledID {
	id.Wrap = 0
	return id
}

// UnwrapTo places the tile in the given world copy.
func (id OverscaledID) UnwrapTo(wrap int) OverscaledID {
	id.Wrap = wrap
	return id
}

// ScaledTo rescales the identifier to the target zoom. Scaling up keeps the
// canonical coordinate and only raises the overscaled zoom; scaling down
// walks up the pyramid.
func (id OverscaledID) ScaledTo(targetZ uint8) OverscaledID {
	if targetZ >= id.Canonical.Z {
		return OverscaledID{OverscaledZ: targetZ, Wrap: id.Wrap, Canonical: id.Canonical}
	}
	zDiff := id.Canonical.Z - targetZ
	return OverscaledID{
		OverscaledZ: targetZ,
		Wrap:        id.Wrap,
		Canonical: CanonicalID{
			Z: targetZ,
			X: id.Canonical.X >> zDiff,
			Y: id.Canonical.Y >> zDiff,
		},
	}
}

// IsChildOf reports whether id covers a strict sub-area of parent in the
// same world copy.
func (id OverscaledID) IsChildOf(parent OverscaledID) bool {
	if parent.Wrap != id.Wrap {
		return false
	}
	if parent.Canonical.Z == 0 {
		return parent.OverscaledZ < id.OverscaledZ
	}
	return parent.OverscaledZ < id.OverscaledZ && id.Canonical.IsChildOf(parent.Canonical)
}

// Less orders identifiers so that coarser tiles sort before their finer
// descendants; spatial query results emitted in this order can be read as
// finer tiles overdrawing coarser ones.
func (id OverscaledID) Less(rhs OverscaledID) bool {
	if id.Wrap != rhs.Wrap {
		return id.Wrap < rhs.Wrap
	}
	if id.OverscaledZ != rhs.OverscaledZ {
		return id.OverscaledZ < rhs.OverscaledZ
	}
	if id.Canonical.X != rhs.Canonical.X {
		return id.Canonical.X < rhs.Canonical.X
	}
	return id.Canonical.Y < rhs.Canonical.Y
}

// GetTilePoint maps a point in planar world coordinates (x and y in [0, 1]
// across one world copy) into this tile's local coordinate space in Extent
// units, honoring the identifier's world copy.
func (id OverscaledID) GetTilePoint(coord orb.Point) orb.Point {
	zoomScale := float64(uint64(1) << id.Canonical.Z)
	return orb.Point{
		(coord[0]*zoomScale - float64(id.Canonical.X) - float64(id.Wrap)*zoomScale) * Extent,
		(coord[1]*zoomScale - float64(id.Canonical.Y)) * Extent,
	}
}
