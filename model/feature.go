package model

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hupe1980/tilego/property"
)

// Feature is a single geographic feature: an identifier, a geometry and a
// typed property bag.
type Feature struct {
	ID         FeatureID
	Geometry   orb.Geometry
	Properties property.Document
}

// Clone creates a shallow copy of the feature.
//
// The geometry value is shared (geometries are treated as immutable; diff
// application replaces them wholesale, never mutates them) and the property
// document is shallow-copied so the clone can rebuild its bag without
// touching the original.
func (f *Feature) Clone() *Feature {
	if f == nil {
		return nil
	}
	return &Feature{
		ID:         f.ID,
		Geometry:   f.Geometry,
		Properties: f.Properties.ShallowClone(),
	}
}

// MarshalJSON implements json.Marshaler via the GeoJSON feature shape.
func (f *Feature) MarshalJSON() ([]byte, error) {
	return f.ToGeoJSON().MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler via the GeoJSON feature shape.
func (f *Feature) UnmarshalJSON(data []byte) error {
	var gf geojson.Feature
	if err := gf.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := FromGeoJSON(&gf)
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}

// FromGeoJSON converts a decoded GeoJSON feature into a typed Feature.
//
// Property values that cannot be represented (e.g. out-of-range integers)
// fail the conversion; the intrinsic id is resolved leniently and may come
// back invalid, which callers treat per the promote-id rules.
func FromGeoJSON(f *geojson.Feature) (*Feature, error) {
	props, err := property.DocumentFromAny(f.Properties)
	if err != nil {
		return nil, err
	}
	return &Feature{
		ID:         IDFromAny(f.ID),
		Geometry:   f.Geometry,
		Properties: props,
	}, nil
}

// ToGeoJSON converts the feature back into the orb GeoJSON shape.
func (f *Feature) ToGeoJSON() *geojson.Feature {
	out := geojson.NewFeature(f.Geometry)
	if f.ID.Valid() {
		switch f.ID.Kind() {
		case IDKindInt:
			i, _ := f.ID.Int64()
			out.ID = i
		case IDKindString:
			s, _ := f.ID.StringValue()
			out.ID = s
		}
	}
	out.Properties = property.DocumentToAny(f.Properties)
	return out
}
