package sourcediff

import (
	"slices"

	"github.com/hupe1980/tilego/model"
)

// Merge combines two pending diffs into a single diff equivalent to
// applying prev fully and then next fully against any working set. Hosts
// use it to coalesce diffs that arrive while a source rebuild is in flight,
// so the same working set never needs concurrent mutation.
//
// If either input is absent or empty, the other is returned as-is; the
// result may therefore alias an input, and callers must treat diffs as
// immutable once handed to Merge.
func Merge(prev, next *SourceDiff) *SourceDiff {
	if prev.Empty() {
		if next.Empty() {
			return &SourceDiff{}
		}
		return next
	}
	if next.Empty() {
		return prev
	}

	// Id-indexed views for O(1) conflict lookups. These are internal only;
	// emission below restores a stable order.
	prevAdd := indexFeatures(prev.Add)
	prevUpdate := indexDiffs(prev.Update)
	nextAdd := indexFeatures(next.Add)
	nextUpdate := indexDiffs(next.Update)

	// A removeAll in next wipes everything prev was still planning to add
	// or mutate before next runs.
	if next.RemoveAll {
		clear(prevAdd)
		clear(prevUpdate)
	}

	// An id removed by next makes any earlier pending add/update for that
	// id moot.
	for _, id := range next.Remove {
		delete(prevAdd, id)
		delete(prevUpdate, id)
	}

	// Ids updated by both collapse into one reconciled feature diff,
	// carried in next's slot.
	for id, nfd := range nextUpdate {
		if pfd, ok := prevUpdate[id]; ok {
			nextUpdate[id] = MergeFeatureDiffs(pfd, nfd)
			delete(prevUpdate, id)
		}
	}

	out := &SourceDiff{
		RemoveAll: prev.RemoveAll || next.RemoveAll,
	}

	// An add supersedes a pending removal of the same id.
	added := func(id model.FeatureID) bool {
		_, inPrev := prevAdd[id]
		_, inNext := nextAdd[id]
		return inPrev || inNext
	}

	seenRemove := make(map[model.FeatureID]struct{})
	appendRemove := func(ids []model.FeatureID) {
		for _, id := range ids {
			if _, dup := seenRemove[id]; dup || added(id) {
				continue
			}
			seenRemove[id] = struct{}{}
			out.Remove = append(out.Remove, id)
		}
	}
	appendRemove(prev.Remove)
	appendRemove(next.Remove)

	// Union of the add maps; next wins on id collision since an add is a
	// whole-feature replacement.
	seenAdd := make(map[model.FeatureID]struct{})
	for _, f := range prev.Add {
		id := f.ID
		if _, survives := prevAdd[id]; !survives {
			continue
		}
		if _, dup := seenAdd[id]; dup {
			continue
		}
		seenAdd[id] = struct{}{}
		if nf, ok := nextAdd[id]; ok {
			out.Add = append(out.Add, nf)
		} else {
			out.Add = append(out.Add, prevAdd[id])
		}
	}
	for _, f := range next.Add {
		if _, dup := seenAdd[f.ID]; dup {
			continue
		}
		seenAdd[f.ID] = struct{}{}
		out.Add = append(out.Add, nextAdd[f.ID])
	}

	seenUpdate := make(map[model.FeatureID]struct{})
	for _, fd := range prev.Update {
		if _, survives := prevUpdate[fd.ID]; !survives {
			continue
		}
		if _, dup := seenUpdate[fd.ID]; dup {
			continue
		}
		seenUpdate[fd.ID] = struct{}{}
		out.Update = append(out.Update, prevUpdate[fd.ID])
	}
	for _, fd := range next.Update {
		if _, dup := seenUpdate[fd.ID]; dup {
			continue
		}
		seenUpdate[fd.ID] = struct{}{}
		out.Update = append(out.Update, nextUpdate[fd.ID])
	}

	return out
}

// MergeFeatureDiffs combines two feature diffs for the same id. Next's
// geometry wins; next's property mutations are appended after prev's, so
// later pairs still overwrite earlier ones on replay. RemoveAllProperties
// is ORed in; replay order during Apply is clear, then remove, then
// add/update, so the final effect stays "clear, then re-apply the
// concatenated list".
func MergeFeatureDiffs(prev, next FeatureDiff) FeatureDiff {
	out := FeatureDiff{
		ID:                    prev.ID,
		NewGeometry:           prev.NewGeometry,
		RemoveAllProperties:   prev.RemoveAllProperties || next.RemoveAllProperties,
		RemoveProperties:      slices.Clone(prev.RemoveProperties),
		AddOrUpdateProperties: slices.Clone(prev.AddOrUpdateProperties),
	}
	if next.NewGeometry != nil {
		out.NewGeometry = next.NewGeometry
	}
	out.RemoveProperties = append(out.RemoveProperties, next.RemoveProperties...)
	out.AddOrUpdateProperties = append(out.AddOrUpdateProperties, next.AddOrUpdateProperties...)
	return out
}

func indexFeatures(features []*model.Feature) map[model.FeatureID]*model.Feature {
	m := make(map[model.FeatureID]*model.Feature, len(features))
	for _, f := range features {
		m[f.ID] = f
	}
	return m
}

func indexDiffs(diffs []FeatureDiff) map[model.FeatureID]FeatureDiff {
	m := make(map[model.FeatureID]FeatureDiff, len(diffs))
	for _, fd := range diffs {
		m[fd.ID] = fd
	}
	return m
}
