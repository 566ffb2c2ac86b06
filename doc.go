// Package tilego provides the tile and source-data lifecycle core of an
// interactive map renderer.
//
// Tilego is an embeddable library: it owns the bookkeeping a renderer
// needs between frames, while the host owns rendering, networking and the
// projection math behind the Transform interface.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	src := tilego.NewSource(tilego.WithPromoteID("osm_id"))
//	src.SetData(ctx, collection)
//
//	// Incremental updates coalesce until the next commit.
//	_ = src.UpdateData(ctx, &sourcediff.SourceDiff{Remove: []model.FeatureID{id}})
//	applied, _ := src.Commit(ctx)
//
// # Tiles
//
//	tiles := tile.NewSet(func(o *tile.Options) {
//	    o.MaxCacheSize = 512
//	    o.FadeDuration = 300 * time.Millisecond
//	})
//	tiles.Add(t)
//
//	// TileSet adds logging and metrics around retention and queries.
//	ts := tilego.NewTileSet(tiles, tilego.WithMetricsCollector(metrics))
//	removed := ts.Update(ctx, retain, time.Now())
//	hits := ts.TilesIn(queryGeometry, maxPitchScale, false, transform, nil)
//
// # Persistence
//
// Tile payloads and source snapshots persist through the tilestore
// package: local filesystem, in-memory, or object storage (S3, MinIO),
// optionally wrapped with zstd/lz4 compression and a bounded read-through
// cache.
//
// # Key Features
//
//   - Bounded LRU caches with eviction hooks and live resizing
//   - World-copy aware tile identity (one payload serves every copy)
//   - Symbol fade-hold retention so labels animate out instead of popping
//   - Spatial tile queries with antimeridian wrap correction
//   - Incremental GeoJSON source diffs with promote-id support
package tilego
