// Package tilestore persists tile payloads by key.
//
// The Store interface abstracts the backing medium: local filesystem,
// in-memory (for tests), or object storage via the s3 and minio
// subpackages. Wrappers compose extra behavior onto any Store:
// CompressedStore for transparent zstd/lz4 payload compression and
// CachingStore for a bounded read-through cache.
//
// A store carries a self-describing Manifest recording the codec and
// compressor its payloads were written with, so it can be reopened
// correctly later.
package tilestore
