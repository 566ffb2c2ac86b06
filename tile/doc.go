// Package tile implements the tile lifecycle core: identifiers across
// world copies, the identity cache, the fade-hold retention strategy and
// the spatial query used for feature picking.
//
// # Identifiers
//
// A tile is addressed by its canonical z/x/y plus a world-copy repetition
// index for projections that tile the plane infinitely, and an overscaled
// zoom for data reused past a source's maxzoom. Caches key by the wrapped
// (world-copy-free) form so one payload serves every copy.
//
// # Retention
//
// Each update cycle the host supplies the set of tiles that should survive
// (the ideal tiles plus ancestor/descendant coverage). Non-retained tiles
// without symbol content are dropped immediately; symbol-bearing tiles get
// a fade hold so their labels animate out instead of popping. The clock is
// supplied by the caller every cycle; nothing here blocks or sleeps.
//
// # Spatial query
//
// TilesIn projects a screen-space query polygon into the projection plane,
// corrects antimeridian wrap-around for projections without world copies,
// and returns the resident tiles whose padded extent intersects the query,
// with the geometry mapped into each tile's local coordinate space.
package tile
