// Package property provides the typed property bags attached to map features.
//
// GeoJSON property bags are open-ended key→value maps with heterogeneous
// value types. Tilego stores them as a map from string key to a small tagged
// Value rather than map[string]any, so that diff application and merging
// never need reflection or type-specific dispatch.
//
// # Property Types
//
// Property values can be:
//
//   - String: property.String("motorway")
//   - Int: property.Int(2024)
//   - Float: property.Float(3.14)
//   - Bool: property.Bool(true)
//   - Array: property.Array([]property.Value{...})
//   - Object: property.Object(map[string]property.Value{...})
//
// Example:
//
//	props := property.Document{
//	    "class": property.String("motorway"),
//	    "lanes": property.Int(4),
//	    "oneway": property.Bool(true),
//	}
//
// # Adapters
//
// Decoded GeoJSON carries properties as map[string]any; use FromAny /
// DocumentFromAny to ingest them and ToAny / DocumentToAny to convert back.
package property
