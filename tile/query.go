package tile

import (
	"math"

	"github.com/paulmach/orb"
)

// wrapDetectShrink is the fraction of the query bounds' min dimension the
// antimeridian detector shrinks by. Under a continuous projection a shrunk
// screen box projects inside the full polygon's bounds; across a wrap seam
// the shrink expands the projected bounds instead, which is the signal.
const wrapDetectShrink = 1e-5

// Terrain is an opaque handle passed through to the transform when
// projecting screen points over 3-D terrain.
type Terrain any

// Transform is the subset of the host's view transform the spatial query
// depends on.
type Transform interface {
	// PointCoordinate projects a screen-space point onto the projection's
	// planar coordinate space, where x and y span [0, 1] per world copy.
	PointCoordinate(p orb.Point, terrain Terrain) orb.Point

	// GetCameraQueryGeometry expands a screen-space query polygon to
	// account for terrain occlusion when a 3-D layer is present.
	GetCameraQueryGeometry(queryGeometry []orb.Point) []orb.Point

	// RenderWorldCopies reports whether the active projection tiles
	// multiple world copies.
	RenderWorldCopies() bool

	// Zoom is the current view zoom.
	Zoom() float64
}

// QueryResult is one tile accepted by TilesIn, with the query geometry
// mapped into the tile's local coordinate space (Extent units).
type QueryResult struct {
	Tile                *Tile
	ID                  OverscaledID
	QueryGeometry       []orb.Point
	CameraQueryGeometry []orb.Point
	Scale               float64
}

// TilesIn returns the resident tiles a screen-space query polygon should
// consider for feature picking, coarser tiles first.
//
// Tiles mid-fade-hold are skipped: a tile closer to ideal already covers
// them. When the projection disallows world copies, a query polygon that
// straddled the antimeridian ante-projection is detected and shifted back
// into a contiguous range, and each tile is tested at both its own and its
// left-shifted world placement.
func (s *Set) TilesIn(queryGeometry []orb.Point, maxPitchScaleFactor float64, has3DLayers bool, transform Transform, terrain Terrain) []QueryResult {
	if transform == nil || len(queryGeometry) == 0 {
		return nil
	}

	allowWorldCopies := transform.RenderWorldCopies()

	cameraPointQueryGeometry := queryGeometry
	if has3DLayers {
		cameraPointQueryGeometry = transform.GetCameraQueryGeometry(queryGeometry)
	}

	project := func(pts []orb.Point) []orb.Point {
		out := make([]orb.Point, len(pts))
		for i, p := range pts {
			out[i] = transform.PointCoordinate(p, terrain)
		}
		return out
	}

	projectedQuery := project(queryGeometry)
	projectedCamera := project(cameraPointQueryGeometry)

	if !allowWorldCopies {
		projectedQuery = fixWrappedQueryGeometry(projectedQuery, queryGeometry, project)
		projectedCamera = fixWrappedQueryGeometry(projectedCamera, cameraPointQueryGeometry, project)
	}

	cameraBounds := geometryBounds(projectedCamera)

	var results []QueryResult
	for _, id := range s.SortedIDs() {
		t := s.tiles[id]
		if t.HoldingForFade() {
			// A tile closer to the ideal set already covers this one.
			continue
		}

		placements := []OverscaledID{id}
		if !allowWorldCopies {
			placements = []OverscaledID{id.UnwrapTo(0), id.UnwrapTo(-1)}
		}

		for _, placement := range placements {
			res, ok := queryTile(t, placement, projectedQuery, projectedCamera, cameraBounds, maxPitchScaleFactor, transform.Zoom(), allowWorldCopies)
			if ok {
				results = append(results, res)
				break
			}
		}
	}

	return results
}

func queryTile(t *Tile, id OverscaledID, projectedQuery, projectedCamera []orb.Point, cameraBounds orb.Bound, maxPitchScaleFactor, zoom float64, allowWorldCopies bool) (QueryResult, bool) {
	scale := math.Pow(2, zoom-float64(id.OverscaledZ))
	queryPadding := maxPitchScaleFactor * t.QueryPadding * Extent / t.Size / scale

	tileSpaceMin := id.GetTilePoint(cameraBounds.Min)
	tileSpaceMax := id.GetTilePoint(cameraBounds.Max)

	if tileSpaceMin[0]-queryPadding >= Extent || tileSpaceMin[1]-queryPadding >= Extent ||
		tileSpaceMax[0]+queryPadding < 0 || tileSpaceMax[1]+queryPadding < 0 {
		return QueryResult{}, false
	}

	toTileSpace := func(pts []orb.Point) []orb.Point {
		out := make([]orb.Point, len(pts))
		for i, p := range pts {
			out[i] = id.GetTilePoint(p)
		}
		return out
	}

	outID := id
	if !allowWorldCopies {
		outID = id.UnwrapTo(0)
	}

	return QueryResult{
		Tile:                t,
		ID:                  outID,
		QueryGeometry:       toTileSpace(projectedQuery),
		CameraQueryGeometry: toTileSpace(projectedCamera),
		Scale:               scale,
	}, true
}

// fixWrappedQueryGeometry corrects a projected query polygon that,
// ante-projection, straddled the date line and would otherwise wrongly wrap
// to cover the opposite hemisphere.
func fixWrappedQueryGeometry(projected, screen []orb.Point, project func([]orb.Point) []orb.Point) []orb.Point {
	if len(screen) == 0 {
		return projected
	}

	screenBounds := geometryBounds(screen)
	shrink := math.Min(
		screenBounds.Max[0]-screenBounds.Min[0],
		screenBounds.Max[1]-screenBounds.Min[1],
	) * wrapDetectShrink

	shrunkCorners := []orb.Point{
		{screenBounds.Min[0] + shrink, screenBounds.Min[1] + shrink},
		{screenBounds.Max[0] - shrink, screenBounds.Min[1] + shrink},
		{screenBounds.Max[0] - shrink, screenBounds.Max[1] - shrink},
		{screenBounds.Min[0] + shrink, screenBounds.Max[1] - shrink},
	}

	projectedShrunk := geometryBounds(project(shrunkCorners))
	projectedBounds := geometryBounds(projected)

	if boundContains(projectedBounds, projectedShrunk) {
		return projected
	}

	out := make([]orb.Point, len(projected))
	for i, p := range projected {
		if p[0] > 0.5 {
			p[0] -= 1
		}
		out[i] = p
	}
	return out
}

func geometryBounds(pts []orb.Point) orb.Bound {
	return orb.MultiPoint(pts).Bound()
}

func boundContains(outer, inner orb.Bound) bool {
	return outer.Contains(inner.Min) && outer.Contains(inner.Max)
}
