package sourcediff

import (
	"github.com/paulmach/orb/geojson"

	"github.com/hupe1980/tilego/model"
	"github.com/hupe1980/tilego/property"
)

// SourceValueKind discriminates the three updateable source shapes.
type SourceValueKind uint8

const (
	// SourceNull represents an absent source value.
	SourceNull SourceValueKind = iota
	// SourceFeature represents a single feature.
	SourceFeature
	// SourceCollection represents a feature collection.
	SourceCollection
)

// SourceValue is the update target of a GeoJSON source: absent, a single
// feature, or a feature collection. The variant is fixed at construction
// time, never inferred from runtime shape inspection.
type SourceValue struct {
	kind     SourceValueKind
	feature  *model.Feature
	features []*model.Feature
}

// NullValue returns the absent source value.
func NullValue() SourceValue { return SourceValue{kind: SourceNull} }

// FeatureValue returns a single-feature source value.
func FeatureValue(f *model.Feature) SourceValue {
	return SourceValue{kind: SourceFeature, feature: f}
}

// CollectionValue returns a feature-collection source value.
func CollectionValue(features []*model.Feature) SourceValue {
	return SourceValue{kind: SourceCollection, features: features}
}

// FromGeoJSONFeature builds a single-feature source value from decoded
// GeoJSON.
func FromGeoJSONFeature(f *geojson.Feature) (SourceValue, error) {
	mf, err := model.FromGeoJSON(f)
	if err != nil {
		return SourceValue{}, err
	}
	return FeatureValue(mf), nil
}

// FromGeoJSONCollection builds a collection source value from decoded
// GeoJSON.
func FromGeoJSONCollection(fc *geojson.FeatureCollection) (SourceValue, error) {
	features := make([]*model.Feature, 0, len(fc.Features))
	for _, gf := range fc.Features {
		mf, err := model.FromGeoJSON(gf)
		if err != nil {
			return SourceValue{}, err
		}
		features = append(features, mf)
	}
	return CollectionValue(features), nil
}

// Kind returns the variant of the source value.
func (v SourceValue) Kind() SourceValueKind { return v.kind }

// Features returns the features the value carries: nil for an absent
// value, a single-element slice for a feature, the full slice for a
// collection. The slice is shared, not copied.
func (v SourceValue) Features() []*model.Feature {
	switch v.kind {
	case SourceFeature:
		return []*model.Feature{v.feature}
	case SourceCollection:
		return v.features
	default:
		return nil
	}
}

// ResolveID resolves a feature's identifier under the promote-id
// configuration: with a promote key set, the id is read from that property
// (integers, integral floats and strings resolve; everything else yields
// the invalid id); otherwise the intrinsic id is used.
func ResolveID(f *model.Feature, promoteID string) model.FeatureID {
	if promoteID == "" {
		return f.ID
	}

	v, ok := f.Properties[promoteID]
	if !ok {
		return model.FeatureID{}
	}
	switch v.Kind {
	case property.KindInt:
		i, _ := v.AsInt64()
		return model.IntID(i)
	case property.KindFloat:
		fv, _ := v.AsFloat64()
		i := int64(fv)
		if float64(i) != fv {
			return model.FeatureID{}
		}
		return model.IntID(i)
	case property.KindString:
		return model.StringID(v.StringValue())
	default:
		return model.FeatureID{}
	}
}

// IsUpdateable reports whether a source value supports incremental diffs.
//
// An absent value is updateable. A single feature is updateable only if it
// resolves to a valid identifier. A collection is updateable only if every
// feature resolves to a valid identifier and all identifiers are pairwise
// distinct; a duplicate would make diff application silently overwrite.
func IsUpdateable(v SourceValue, promoteID string) bool {
	switch v.kind {
	case SourceNull:
		return true
	case SourceFeature:
		return ResolveID(v.feature, promoteID).Valid()
	case SourceCollection:
		seen := make(map[model.FeatureID]struct{}, len(v.features))
		for _, f := range v.features {
			id := ResolveID(f, promoteID)
			if !id.Valid() {
				return false
			}
			if _, dup := seen[id]; dup {
				return false
			}
			seen[id] = struct{}{}
		}
		return true
	default:
		return false
	}
}

// WorkingSet is the mutable id-indexed feature collection diffs are applied
// against. It owns its feature values: inserted features are cloned, so the
// caller's input structures are never mutated through the set.
type WorkingSet map[model.FeatureID]*model.Feature

// ToWorkingSet builds the working set for a source value. Callers must
// check IsUpdateable first; building from a non-updateable collection
// degenerates to last-write-wins and must not be relied on.
func ToWorkingSet(v SourceValue, promoteID string) WorkingSet {
	switch v.kind {
	case SourceFeature:
		ws := make(WorkingSet, 1)
		if id := ResolveID(v.feature, promoteID); id.Valid() {
			ws[id] = v.feature.Clone()
		}
		return ws
	case SourceCollection:
		ws := make(WorkingSet, len(v.features))
		for _, f := range v.features {
			if id := ResolveID(f, promoteID); id.Valid() {
				ws[id] = f.Clone()
			}
		}
		return ws
	default:
		return make(WorkingSet)
	}
}

// Clone returns an independent copy of the working set. Features are
// shallow-cloned; geometries are shared because they are never mutated in
// place.
func (ws WorkingSet) Clone() WorkingSet {
	out := make(WorkingSet, len(ws))
	for id, f := range ws {
		out[id] = f.Clone()
	}
	return out
}

// Apply mutates the working set in place, replaying the diff fields in the
// fixed order: RemoveAll, Remove, Add, Update.
//
// Malformed entries are well-defined no-ops, never errors: added features
// whose id does not resolve are skipped, and updates referencing an absent
// id are skipped. An update carrying no mutation leaves the stored feature
// reference-identical, not even copied. Otherwise the stored feature
// is shallow-copied before mutation, so a pre-existing feature object still
// referenced elsewhere is left untouched.
func Apply(ws WorkingSet, diff *SourceDiff, promoteID string) {
	if diff == nil {
		return
	}

	if diff.RemoveAll {
		clear(ws)
	}

	for _, id := range diff.Remove {
		delete(ws, id)
	}

	for _, f := range diff.Add {
		id := ResolveID(f, promoteID)
		if !id.Valid() {
			continue
		}
		ws[id] = f.Clone()
	}

	for i := range diff.Update {
		fd := &diff.Update[i]
		f, ok := ws[fd.ID]
		if !ok {
			continue
		}
		if fd.NoOp() {
			continue
		}

		next := f.Clone()

		if fd.NewGeometry != nil {
			next.Geometry = fd.NewGeometry
		}

		// Rebuild the property bag: cleared wholesale or shallow-copied
		// (Clone already copied the key set), then deletes, then sets in
		// diff order.
		if fd.RemoveAllProperties {
			next.Properties = property.Document{}
		} else if next.Properties == nil {
			next.Properties = property.Document{}
		}
		for _, key := range fd.RemoveProperties {
			delete(next.Properties, key)
		}
		for _, e := range fd.AddOrUpdateProperties {
			next.Properties[e.Key] = e.Value
		}

		ws[fd.ID] = next
	}
}
