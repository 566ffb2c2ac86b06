package tilestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hupe1980/tilego/codec"
)

const (
	// ManifestKey is the well-known store key of the manifest.
	ManifestKey = "MANIFEST"

	// ManifestVersion is the current manifest format version.
	ManifestVersion = 1
)

// Manifest describes how the payloads in a store were written, so a store
// can be reopened with the codec and compressor its data requires.
type Manifest struct {
	Version     int    `json:"version"`
	Codec       string `json:"codec"`
	Compression string `json:"compression"`

	// Format is the payload format identifier ("pbf", "geojson", ...).
	Format string `json:"format,omitempty"`

	// MinZoom and MaxZoom bound the zoom range payloads exist for.
	MinZoom uint8 `json:"minzoom"`
	MaxZoom uint8 `json:"maxzoom"`
}

// LoadManifest reads and validates the manifest from a store. A store
// without a manifest returns ErrNotFound.
//
// The manifest itself is always plain JSON so it can be decoded before the
// codec it names is known.
func LoadManifest(ctx context.Context, store Store) (*Manifest, error) {
	data, err := store.Get(ctx, ManifestKey)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	if m.Version != ManifestVersion {
		return nil, fmt.Errorf("unsupported manifest version: %d (expected %d)", m.Version, ManifestVersion)
	}
	return &m, nil
}

// SaveManifest writes the manifest to a store.
func SaveManifest(ctx context.Context, store Store, m *Manifest) error {
	if m.Version == 0 {
		m.Version = ManifestVersion
	}

	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return store.Put(ctx, ManifestKey, data)
}

// OpenCodecs resolves the codec and compressor a manifest names.
func (m *Manifest) OpenCodecs() (codec.Codec, Compressor, error) {
	name := m.Codec
	if name == "" {
		name = codec.Default.Name()
	}
	c, ok := codec.ByName(name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown codec: %q", name)
	}

	compName := m.Compression
	if compName == "" {
		compName = "none"
	}
	comp, ok := CompressorByName(compName)
	if !ok {
		return nil, nil, fmt.Errorf("unknown compressor: %q", compName)
	}
	return c, comp, nil
}

// IsNotFound reports whether the error marks a missing payload.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
