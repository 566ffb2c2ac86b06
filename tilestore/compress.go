package tilestore

import (
	"bytes"
	"context"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor encodes/decodes tile payloads.
// Implementations must be safe for concurrent use.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

// CompressorByName returns a built-in compressor by its stable name.
//
// Manifests record the compressor name so existing stores can be reopened
// with the codec their payloads were written with.
func CompressorByName(name string) (Compressor, bool) {
	switch name {
	case "none":
		return None{}, true
	case "zstd":
		c, err := NewZstd()
		if err != nil {
			return nil, false
		}
		return c, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// None is the identity compressor.
type None struct{}

// Compress returns the payload unchanged.
func (None) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress returns the payload unchanged.
func (None) Decompress(data []byte) ([]byte, error) { return data, nil }

// Name returns the unique name of the compressor ("none").
func (None) Name() string { return "none" }

// Zstd compresses payloads with zstandard. A single Zstd value carries
// shared encoder/decoder state and may be used concurrently.
type Zstd struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// NewZstd creates a zstandard compressor at the default level.
func NewZstd() (*Zstd, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &Zstd{enc: enc, dec: dec}, nil
}

// Compress encodes the payload.
func (z *Zstd) Compress(data []byte) ([]byte, error) {
	return z.enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// Decompress decodes the payload.
func (z *Zstd) Decompress(data []byte) ([]byte, error) {
	return z.dec.DecodeAll(data, nil)
}

// Name returns the unique name of the compressor ("zstd").
func (z *Zstd) Name() string { return "zstd" }

// LZ4 compresses payloads with the self-describing lz4 frame format.
type LZ4 struct{}

// Compress encodes the payload.
func (LZ4) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress decodes the payload.
func (LZ4) Decompress(data []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}

// Name returns the unique name of the compressor ("lz4").
func (LZ4) Name() string { return "lz4" }

// CompressedStore wraps a Store and transparently compresses payloads on
// Put and decompresses them on Get.
type CompressedStore struct {
	inner      Store
	compressor Compressor
}

// NewCompressedStore creates a CompressedStore. A nil compressor means no
// compression.
func NewCompressedStore(inner Store, compressor Compressor) *CompressedStore {
	if compressor == nil {
		compressor = None{}
	}
	return &CompressedStore{inner: inner, compressor: compressor}
}

// Put compresses and writes a payload.
func (s *CompressedStore) Put(ctx context.Context, key string, data []byte) error {
	compressed, err := s.compressor.Compress(data)
	if err != nil {
		return err
	}
	return s.inner.Put(ctx, key, compressed)
}

// Get reads and decompresses a payload.
func (s *CompressedStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.compressor.Decompress(data)
}

// Delete removes a payload.
func (s *CompressedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// List returns all keys with the given prefix, sorted.
func (s *CompressedStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}
