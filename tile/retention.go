package tile

import (
	"time"
)

// Retainer implements the per-cycle retention decision for resident tiles.
//
// Each update cycle the host computes the ideal tile set for the current
// view (including ancestor/descendant coverage tiles) and hands it over as
// the retain set; the retainer decides which resident tiles to drop now and
// which to hold for a fade-out.
type Retainer struct {
	// FadeDuration is the grace period a symbol-bearing tile stays resident
	// after it stops being retained, so its symbols can animate out instead
	// of popping.
	FadeDuration time.Duration
}

// Update drives the fade-hold state machine for one cycle and returns the
// identifiers marked for removal. The caller discards them from residency.
//
// now is the host's monotonic clock reading for this cycle; the retainer
// never reads the wall clock itself.
func (r *Retainer) Update(tiles map[OverscaledID]*Tile, retain map[OverscaledID]bool, now time.Time) []OverscaledID {
	var remove []OverscaledID

	for id, t := range tiles {
		if retain[id] {
			// A future drop restarts the hold from zero.
			t.ClearFadeHold()
			continue
		}

		switch {
		case !t.HasSymbols:
			remove = append(remove, id)
		case !t.HoldingForFade():
			t.SetHoldDuration(now, r.FadeDuration)
		case t.SymbolFadeFinished(now):
			remove = append(remove, id)
		}
	}

	return remove
}
