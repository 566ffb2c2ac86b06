// Package cache provides a generic bounded least-recently-used cache with
// eviction callbacks.
//
// The cache knows nothing about tiles or geometry; the tile package
// specializes it with world-copy-independent tile keys. The evict hook is an
// injected capability: renderers use it to release GPU-side resources tied
// to an evicted payload, so it must be safe to call synchronously from
// within Set, Remove, Filter, Clear and SetMaxSize. Reentrant calls from the
// hook back into the same cache are unsupported.
package cache
