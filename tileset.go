package tilego

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"github.com/hupe1980/tilego/tile"
)

// TileSet wraps a tile.Set with the library's structured logging and
// metrics. The underlying set stays fully usable through Set; Update and
// TilesIn route through the wrapper so retention cycles are logged and
// query latency is measured.
type TileSet struct {
	set  *tile.Set
	opts options
}

// NewTileSet wraps set. WithLogger and WithMetricsCollector control where
// retention and query telemetry goes.
func NewTileSet(set *tile.Set, optFns ...Option) *TileSet {
	return &TileSet{
		set:  set,
		opts: applyOptions(optFns),
	}
}

// Set returns the underlying tile set.
func (ts *TileSet) Set() *tile.Set {
	return ts.set
}

// Update runs one retention cycle and logs how many tiles stayed resident
// and how many were removed.
func (ts *TileSet) Update(ctx context.Context, retain map[tile.OverscaledID]bool, now time.Time) []tile.OverscaledID {
	removed := ts.set.Update(retain, now)
	ts.opts.logger.LogRetention(ctx, ts.set.Len(), len(removed))
	return removed
}

// TilesIn runs a spatial tile query, recording the result count and latency
// with the configured collector.
func (ts *TileSet) TilesIn(queryGeometry []orb.Point, maxPitchScaleFactor float64, has3DLayers bool, transform tile.Transform, terrain tile.Terrain) []tile.QueryResult {
	start := time.Now()
	results := ts.set.TilesIn(queryGeometry, maxPitchScaleFactor, has3DLayers, transform, terrain)
	ts.opts.metricsCollector.RecordQuery(len(results), time.Since(start))
	return results
}
