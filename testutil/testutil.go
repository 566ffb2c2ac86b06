package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/paulmach/orb"

	"github.com/hupe1980/tilego/model"
	"github.com/hupe1980/tilego/property"
	"github.com/hupe1980/tilego/tile"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0,1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Point returns a pseudo-random point in planar world coordinates [0,1).
func (r *RNG) Point() orb.Point {
	return orb.Point{r.Float64(), r.Float64()}
}

// Feature returns a pseudo-random point feature with the given integer id.
func (r *RNG) Feature(id int64) *model.Feature {
	return &model.Feature{
		ID:       model.IntID(id),
		Geometry: r.Point(),
		Properties: property.Document{
			"name": property.String(fmt.Sprintf("feature-%d", id)),
			"rank": property.Int(int64(r.Intn(100))),
		},
	}
}

// Features returns n pseudo-random point features with ids 0..n-1.
func (r *RNG) Features(n int) []*model.Feature {
	out := make([]*model.Feature, 0, n)
	for i := range n {
		out = append(out, r.Feature(int64(i)))
	}
	return out
}

// TileID returns a pseudo-random canonically zoomed tile id at zoom z.
func (r *RNG) TileID(z uint8) tile.OverscaledID {
	n := 1 << z
	return tile.NewOverscaledID(z, 0, tile.CanonicalID{
		Z: z,
		X: uint32(r.Intn(n)),
		Y: uint32(r.Intn(n)),
	})
}

// Payload returns a pseudo-random payload of the given size.
func (r *RNG) Payload(size int) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	buf := make([]byte, size)
	r.rand.Read(buf)
	return buf
}
