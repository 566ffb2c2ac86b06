package tile

import (
	"math"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransform projects screen pixels onto the planar world through an
// injectable function, standing in for the host's view transform.
type fakeTransform struct {
	zoom        float64
	worldCopies bool
	project     func(orb.Point) orb.Point
	cameraPad   float64
}

func (f *fakeTransform) PointCoordinate(p orb.Point, _ Terrain) orb.Point {
	return f.project(p)
}

func (f *fakeTransform) GetCameraQueryGeometry(queryGeometry []orb.Point) []orb.Point {
	out := make([]orb.Point, len(queryGeometry))
	for i, p := range queryGeometry {
		out[i] = orb.Point{p[0] + f.cameraPad, p[1] + f.cameraPad}
	}
	return out
}

func (f *fakeTransform) RenderWorldCopies() bool { return f.worldCopies }

func (f *fakeTransform) Zoom() float64 { return f.zoom }

// flatProject maps a 512px screen onto one world copy.
func flatProject(p orb.Point) orb.Point {
	return orb.Point{p[0] / 512, p[1] / 512}
}

func addLoadedTile(s *Set, id OverscaledID) *Tile {
	tl := New(id, 512)
	tl.SetPayload([]byte("pbf"))
	return s.Add(tl)
}

func screenBox(x0, y0, x1, y1 float64) []orb.Point {
	return []orb.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestTilesIn_BasicHit(t *testing.T) {
	s := newTestSet(0)
	hit := addLoadedTile(s, testID(1, 0, 0))
	addLoadedTile(s, testID(1, 1, 1)) // opposite quadrant, no hit

	tr := &fakeTransform{zoom: 1, worldCopies: true, project: flatProject}

	results := s.TilesIn(screenBox(100, 100, 200, 200), 1, false, tr, nil)

	require.Len(t, results, 1)
	res := results[0]
	assert.Same(t, hit, res.Tile)
	assert.Equal(t, hit.ID, res.ID)
	assert.Equal(t, 1.0, res.Scale)

	// Screen (100,100) -> world (100/512, 100/512) -> tile units.
	require.Len(t, res.QueryGeometry, 4)
	assert.InDelta(t, 3200, res.QueryGeometry[0][0], 1e-9)
	assert.InDelta(t, 3200, res.QueryGeometry[0][1], 1e-9)
	assert.InDelta(t, 6400, res.QueryGeometry[2][0], 1e-9)
}

func TestTilesIn_ScaleReflectsOverscaledZoom(t *testing.T) {
	s := newTestSet(0)
	// Overscaled tile: canonical z1 data shown at z3.
	id := NewOverscaledID(3, 0, CanonicalID{Z: 1, X: 0, Y: 0})
	addLoadedTile(s, id)

	tr := &fakeTransform{zoom: 4, worldCopies: true, project: flatProject}

	results := s.TilesIn(screenBox(100, 100, 200, 200), 1, false, tr, nil)

	require.Len(t, results, 1)
	assert.Equal(t, math.Pow(2, 4-3), results[0].Scale)
}

func TestTilesIn_SkipsTilesHoldingForFade(t *testing.T) {
	s := newTestSet(0)
	tl := addLoadedTile(s, testID(1, 0, 0))
	tl.HasSymbols = true
	tl.SetHoldDuration(time.Unix(1000, 0), time.Second)

	tr := &fakeTransform{zoom: 1, worldCopies: true, project: flatProject}

	results := s.TilesIn(screenBox(100, 100, 200, 200), 1, false, tr, nil)
	assert.Empty(t, results)
}

func TestTilesIn_EmptyInputs(t *testing.T) {
	s := newTestSet(0)
	addLoadedTile(s, testID(1, 0, 0))

	tr := &fakeTransform{zoom: 1, worldCopies: true, project: flatProject}

	assert.Nil(t, s.TilesIn(nil, 1, false, tr, nil))
	assert.Nil(t, s.TilesIn(screenBox(0, 0, 10, 10), 1, false, nil, nil))
}

func TestTilesIn_QueryPaddingExtendsTileBounds(t *testing.T) {
	s := newTestSet(0)
	// Query sits just inside the right neighbor; padding pulls in the left
	// tile as well.
	left := addLoadedTile(s, testID(1, 0, 0))
	right := addLoadedTile(s, testID(1, 1, 0))

	tr := &fakeTransform{zoom: 1, worldCopies: true, project: flatProject}

	// World x in [0.52, 0.55]: only the right tile without padding.
	query := screenBox(266.24, 100, 281.6, 200)

	results := s.TilesIn(query, 1, false, tr, nil)
	require.Len(t, results, 1)
	assert.Same(t, right, results[0].Tile)

	// 30px of padding at scale 1 covers the 0.02-world gap (163.84 units).
	left.QueryPadding = 30
	right.QueryPadding = 30

	results = s.TilesIn(query, 1, false, tr, nil)
	require.Len(t, results, 2)
	assert.Same(t, left, results[0].Tile)
}

func TestTilesIn_CameraGeometryFor3DLayers(t *testing.T) {
	s := newTestSet(0)
	addLoadedTile(s, testID(1, 0, 0))

	tr := &fakeTransform{zoom: 1, worldCopies: true, project: flatProject, cameraPad: 10}

	results := s.TilesIn(screenBox(100, 100, 200, 200), 1, true, tr, nil)

	require.Len(t, results, 1)
	res := results[0]
	// Camera geometry is the expanded polygon, mapped to tile units.
	assert.InDelta(t, 3520, res.CameraQueryGeometry[0][0], 1e-9)
	assert.InDelta(t, 3200, res.QueryGeometry[0][0], 1e-9)
}

func TestTilesIn_AntimeridianWrap(t *testing.T) {
	s := newTestSet(0)
	west := addLoadedTile(s, testID(1, 1, 0)) // world x [0.5, 1], east of the seam when shifted
	east := addLoadedTile(s, testID(1, 0, 0)) // world x [0, 0.5]
	faraway := addLoadedTile(s, testID(1, 1, 1))

	// The view straddles the date line: the left screen half projects to
	// world x near 1, the right half wraps past the seam to x near 0.
	project := func(p orb.Point) orb.Point {
		x := math.Mod(0.9+(p[0]/512)*0.2, 1.0)
		y := 0.2 + (p[1]/512)*0.2
		return orb.Point{x, y}
	}
	tr := &fakeTransform{zoom: 1, worldCopies: false, project: project}

	results := s.TilesIn(screenBox(0, 100, 512, 200), 1, false, tr, nil)

	require.Len(t, results, 2)
	assert.Same(t, east, results[0].Tile)
	assert.Same(t, west, results[1].Tile)

	// Returned identifiers are normalized to the primary world copy.
	assert.Equal(t, 0, results[0].ID.Wrap)
	assert.Equal(t, 0, results[1].ID.Wrap)

	// The corrected geometry is contiguous: the west side maps to negative
	// world x, so in the east tile's space the first corner sits left of 0.
	assert.InDelta(t, -0.1*2*Extent, results[0].QueryGeometry[0][0], 1e-6)

	for _, res := range results {
		assert.NotSame(t, faraway, res.Tile)
	}
}

func TestTilesIn_NoWrapCorrectionForContiguousQuery(t *testing.T) {
	s := newTestSet(0)
	hit := addLoadedTile(s, testID(1, 0, 0))

	// World copies disabled but the query never crosses the seam.
	tr := &fakeTransform{zoom: 1, worldCopies: false, project: flatProject}

	results := s.TilesIn(screenBox(100, 100, 200, 200), 1, false, tr, nil)

	require.Len(t, results, 1)
	assert.Same(t, hit, results[0].Tile)
	assert.InDelta(t, 3200, results[0].QueryGeometry[0][0], 1e-9)
}
