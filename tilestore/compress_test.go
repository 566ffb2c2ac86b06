package tilestore

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tilego/testutil"
)

func compressors(t *testing.T) []Compressor {
	t.Helper()
	zstd, err := NewZstd()
	require.NoError(t, err)
	return []Compressor{None{}, zstd, LZ4{}}
}

func TestCompressors_RoundTrip(t *testing.T) {
	rng := testutil.NewRNG(42)
	payload := rng.Payload(8 << 10)

	for _, c := range compressors(t) {
		t.Run(c.Name(), func(t *testing.T) {
			compressed, err := c.Compress(payload)
			require.NoError(t, err)

			out, err := c.Decompress(compressed)
			require.NoError(t, err)
			assert.Equal(t, payload, out)
		})
	}
}

func TestCompressors_CompressibleDataShrinks(t *testing.T) {
	payload := bytes.Repeat([]byte("tiletiletile"), 1024)

	for _, c := range compressors(t) {
		if c.Name() == "none" {
			continue
		}
		t.Run(c.Name(), func(t *testing.T) {
			compressed, err := c.Compress(payload)
			require.NoError(t, err)
			assert.Less(t, len(compressed), len(payload))
		})
	}
}

func TestCompressorByName(t *testing.T) {
	for _, name := range []string{"none", "zstd", "lz4"} {
		c, ok := CompressorByName(name)
		require.Truef(t, ok, "compressor %q", name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := CompressorByName("brotli")
	assert.False(t, ok)
}

func TestCompressedStore(t *testing.T) {
	ctx := context.Background()
	zstd, err := NewZstd()
	require.NoError(t, err)

	inner := NewMemoryStore()
	s := NewCompressedStore(inner, zstd)

	payload := bytes.Repeat([]byte("vector tile "), 512)
	require.NoError(t, s.Put(ctx, "3/1/2", payload))

	// The inner store holds compressed bytes.
	raw, err := inner.Get(ctx, "3/1/2")
	require.NoError(t, err)
	assert.Less(t, len(raw), len(payload))

	// Reads are transparent.
	out, err := s.Get(ctx, "3/1/2")
	require.NoError(t, err)
	assert.Equal(t, payload, out)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
