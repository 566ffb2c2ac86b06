// Package testutil provides testing utilities for tilego.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded helpers for generating random features, tile
// identifiers and payloads.
//
//	rng := testutil.NewRNG(seed)
//	features := rng.Features(100)
//	id := rng.TileID(4)
package testutil
