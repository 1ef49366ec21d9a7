package bsp

import (
	"testing"

	"github.com/10log/BeamTrace2D-sub000/geometry"
	"github.com/10log/BeamTrace2D-sub000/surface"
)

func wall(t *testing.T, id int, x1, y1, x2, y2 float64) surface.Polygon {
	t.Helper()
	w, err := surface.NewWall(id, geometry.Vec2(x1, y1), geometry.Vec2(x2, y2), "")
	if err != nil {
		t.Fatalf("NewWall: %v", err)
	}
	return w
}

func boxWalls(t *testing.T) []surface.Polygon {
	t.Helper()
	return []surface.Polygon{
		wall(t, 0, 0, 0, 100, 0),
		wall(t, 1, 100, 0, 100, 100),
		wall(t, 2, 100, 100, 0, 100),
		wall(t, 3, 0, 100, 0, 0),
	}
}

func TestRayTraceHitsNearestWall(t *testing.T) {
	tree := Build(boxWalls(t), geometry.ClassifyEpsilon)

	hit := tree.RayTrace(geometry.Vec2(50, 50), geometry.Vec3{X: 1}, 0, 1000, -1)
	if hit == nil {
		t.Fatal("expected a hit")
	}
	if hit.SurfaceID != 1 {
		t.Errorf("hit surface %d, want 1 (the east wall)", hit.SurfaceID)
	}
	if got := hit.T; got < 49.9 || got > 50.1 {
		t.Errorf("hit t = %v, want ~50", got)
	}
}

func TestRayTraceReturnsNilWhenNothingInRange(t *testing.T) {
	tree := Build(boxWalls(t), geometry.ClassifyEpsilon)
	hit := tree.RayTrace(geometry.Vec2(50, 50), geometry.Vec3{X: 1}, 0, 10, -1)
	if hit != nil {
		t.Errorf("expected no hit within t in [0,10], got %v", hit)
	}
}

func TestRayTraceExcludesIgnoredSurface(t *testing.T) {
	tree := Build(boxWalls(t), geometry.ClassifyEpsilon)

	// Without exclusion, a ray starting just inside the east wall and aimed
	// at it immediately self-hits.
	if hit := tree.RayTrace(geometry.Vec2(99.999, 50), geometry.Vec3{X: 1}, 0.0001, 1000, -1); hit == nil || hit.SurfaceID != 1 {
		t.Fatalf("expected a self-hit on surface 1 without exclusion, got %v", hit)
	}

	// With id 1 excluded (the surface just reflected from), the same ray
	// passes through since no other wall lies beyond it.
	if hit := tree.RayTrace(geometry.Vec2(99.999, 50), geometry.Vec3{X: 1}, 0.0001, 1000, 1); hit != nil {
		t.Errorf("expected the ignored surface not to self-intersect, got %v", hit)
	}
}

func TestRayOccludedTrueWhenBlocked(t *testing.T) {
	walls := []surface.Polygon{wall(t, 0, 5, -10, 5, 10)}
	tree := Build(walls, geometry.ClassifyEpsilon)

	if !tree.RayOccluded(geometry.Vec2(0, 0), geometry.Vec3{X: 1}, 0, 10, -1) {
		t.Error("expected the wall at x=5 to occlude a ray crossing it")
	}
}

func TestRayOccludedFalseWhenClear(t *testing.T) {
	walls := []surface.Polygon{wall(t, 0, 5, -10, 5, 10)}
	tree := Build(walls, geometry.ClassifyEpsilon)

	if tree.RayOccluded(geometry.Vec2(0, 0), geometry.Vec3{X: 1}, 0, 0.1, -1) {
		t.Error("expected no occlusion before reaching the wall")
	}
}

func TestBuildHandlesManyCoplanarSurfaces(t *testing.T) {
	// Several walls sharing the same line: all should still be individually
	// reachable by RayTrace.
	walls := []surface.Polygon{
		wall(t, 0, 0, 0, 10, 0),
		wall(t, 1, 20, 0, 30, 0),
		wall(t, 2, 40, 0, 50, 0),
	}
	tree := Build(walls, geometry.ClassifyEpsilon)

	hit := tree.RayTrace(geometry.Vec2(25, -5), geometry.Vec3{Y: 1}, 0, 1000, -1)
	if hit == nil || hit.SurfaceID != 1 {
		t.Errorf("expected to hit surface 1, got %v", hit)
	}
}

func TestRayTraceExcludesCoplanarSurfaceByItsOwnID(t *testing.T) {
	// Three walls sharing one line become one BSP node: wall 0 as the node's
	// own fragment, walls 1 and 2 grouped into its Coplanar list. Excluding
	// wall 1's id must hide only wall 1, not fall through because wall 1 is
	// not the node's SurfaceID.
	walls := []surface.Polygon{
		wall(t, 0, 0, 0, 10, 0),
		wall(t, 1, 20, 0, 30, 0),
		wall(t, 2, 40, 0, 50, 0),
	}
	tree := Build(walls, geometry.ClassifyEpsilon)

	if hit := tree.RayTrace(geometry.Vec2(25, -5), geometry.Vec3{Y: 1}, 0, 1000, 1); hit != nil {
		t.Errorf("expected wall 1 to be excluded by its own id even though it is only coplanar with the node's surface, got %v", hit)
	}
}

func TestRayTraceDoesNotExcludeUnrelatedCoplanarSurface(t *testing.T) {
	// Excluding the node's own SurfaceID (wall 0) must not also hide an
	// unrelated coplanar surface (wall 2) grouped onto the same node.
	walls := []surface.Polygon{
		wall(t, 0, 0, 0, 10, 0),
		wall(t, 1, 20, 0, 30, 0),
		wall(t, 2, 40, 0, 50, 0),
	}
	tree := Build(walls, geometry.ClassifyEpsilon)

	hit := tree.RayTrace(geometry.Vec2(45, -5), geometry.Vec3{Y: 1}, 0, 1000, 0)
	if hit == nil || hit.SurfaceID != 2 {
		t.Errorf("expected to still hit unrelated coplanar surface 2 while excluding id 0, got %v", hit)
	}
}

func TestEmptyTreeNeverHits(t *testing.T) {
	tree := Build(nil, geometry.ClassifyEpsilon)
	if hit := tree.RayTrace(geometry.Vec2(0, 0), geometry.Vec3{X: 1}, 0, 1000, -1); hit != nil {
		t.Errorf("expected no hit on an empty tree, got %v", hit)
	}
}
