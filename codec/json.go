package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It is the most portable option: diffs, features and manifests all
// round-trip through their GeoJSON wire shapes. Values that JSON cannot
// represent (funcs, channels, complex numbers) are unsupported.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// NOTE: This affects newly-written manifests. Existing persisted files are
// self-describing (they store the codec name) and are opened by selecting
// the appropriate codec by name.
var Default Codec = GoJSON{}
