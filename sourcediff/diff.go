package sourcediff

import (
	"encoding/json"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hupe1980/tilego/model"
	"github.com/hupe1980/tilego/property"
)

// SourceDiff is one incremental update to a GeoJSON source. Regardless of
// which fields are populated, application order is fixed: RemoveAll, then
// Remove, then Add, then Update.
type SourceDiff struct {
	RemoveAll bool              `json:"removeAll,omitempty"`
	Remove    []model.FeatureID `json:"remove,omitempty"`
	Add       []*model.Feature  `json:"add,omitempty"`
	Update    []FeatureDiff     `json:"update,omitempty"`
}

// Empty reports whether the diff carries no work at all.
func (d *SourceDiff) Empty() bool {
	return d == nil ||
		(!d.RemoveAll && len(d.Remove) == 0 && len(d.Add) == 0 && len(d.Update) == 0)
}

// PropertyEntry is one ordered key/value pair in a feature diff. Within a
// single diff a later pair with the same key overwrites an earlier one.
type PropertyEntry struct {
	Key   string         `json:"key"`
	Value property.Value `json:"value"`
}

// FeatureDiff identifies one feature and carries its optional mutations.
// If none of the four mutation fields are present the diff is a no-op for
// that id.
type FeatureDiff struct {
	ID model.FeatureID

	// NewGeometry replaces the geometry wholesale.
	NewGeometry orb.Geometry

	// RemoveAllProperties clears the property bag before any other
	// property mutation is replayed.
	RemoveAllProperties bool

	// RemoveProperties deletes the listed keys.
	RemoveProperties []string

	// AddOrUpdateProperties sets the listed pairs, in order.
	AddOrUpdateProperties []PropertyEntry
}

// NoOp reports whether the diff carries no mutation for its feature.
func (fd *FeatureDiff) NoOp() bool {
	return fd.NewGeometry == nil &&
		!fd.RemoveAllProperties &&
		len(fd.RemoveProperties) == 0 &&
		len(fd.AddOrUpdateProperties) == 0
}

// featureDiffJSON is the wire shape; orb geometries marshal through the
// geojson wrapper.
type featureDiffJSON struct {
	ID                    model.FeatureID   `json:"id"`
	NewGeometry           *geojson.Geometry `json:"newGeometry,omitempty"`
	RemoveAllProperties   bool              `json:"removeAllProperties,omitempty"`
	RemoveProperties      []string          `json:"removeProperties,omitempty"`
	AddOrUpdateProperties []PropertyEntry   `json:"addOrUpdateProperties,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (fd FeatureDiff) MarshalJSON() ([]byte, error) {
	aux := featureDiffJSON{
		ID:                    fd.ID,
		RemoveAllProperties:   fd.RemoveAllProperties,
		RemoveProperties:      fd.RemoveProperties,
		AddOrUpdateProperties: fd.AddOrUpdateProperties,
	}
	if fd.NewGeometry != nil {
		aux.NewGeometry = geojson.NewGeometry(fd.NewGeometry)
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements json.Unmarshaler.
func (fd *FeatureDiff) UnmarshalJSON(data []byte) error {
	var aux featureDiffJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	fd.ID = aux.ID
	fd.RemoveAllProperties = aux.RemoveAllProperties
	fd.RemoveProperties = aux.RemoveProperties
	fd.AddOrUpdateProperties = aux.AddOrUpdateProperties
	if aux.NewGeometry != nil {
		fd.NewGeometry = aux.NewGeometry.Geometry()
	} else {
		fd.NewGeometry = nil
	}
	return nil
}
