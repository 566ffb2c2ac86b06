// Package sourcediff implements incremental updates for GeoJSON sources:
// the diff model, eligibility checks, working-set construction, diff
// application and diff coalescing.
//
// A source is only updateable when every feature resolves to a distinct
// identifier (intrinsic or promoted from a property). Updateable sources
// are materialized into a WorkingSet, an id-indexed map that diffs mutate
// in place with copy-on-write feature semantics.
//
// Diffs that arrive while a rebuild is in flight are coalesced with Merge,
// which produces a single diff equivalent to sequential application.
package sourcediff
