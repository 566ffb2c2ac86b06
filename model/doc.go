// Package model defines core types used throughout tilego.
//
// # Identity Types
//
//   - FeatureID: Stable feature identifier, a union of int64 and string
//   - IDKind: Discriminator for the two identifier kinds
//
// # Data Types
//
//   - Feature: Identifier, orb geometry and typed property bag
//
// GeoJSON input decoded with github.com/paulmach/orb/geojson converts to and
// from these types via FromGeoJSON and Feature.ToGeoJSON.
package model
