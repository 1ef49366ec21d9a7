package beam

import (
	"testing"

	"github.com/10log/BeamTrace2D-sub000/geometry"
	"github.com/10log/BeamTrace2D-sub000/surface"
)

func wall2D(t *testing.T, id int, x1, y1, x2, y2 float64) surface.Polygon {
	t.Helper()
	w, err := surface.NewWall(id, geometry.Vec2(x1, y1), geometry.Vec2(x2, y2), "")
	if err != nil {
		t.Fatalf("NewWall: %v", err)
	}
	return w
}

func boxWalls2D(t *testing.T) []surface.Polygon {
	t.Helper()
	return []surface.Polygon{
		wall2D(t, 0, 0, 0, 100, 0),
		wall2D(t, 1, 100, 0, 100, 100),
		wall2D(t, 2, 100, 100, 0, 100),
		wall2D(t, 3, 0, 100, 0, 0),
	}
}

func TestBuild2DOrderZeroProducesOnlyRoot(t *testing.T) {
	tree := Build2D(boxWalls2D(t), geometry.Vec2(50, 50), 0, geometry.ClassifyEpsilon)
	if len(tree.Nodes) != 1 {
		t.Fatalf("expected only the root node at order 0, got %d nodes", len(tree.Nodes))
	}
	if len(tree.Leaves) != 0 {
		t.Errorf("root-only tree should have no leaves, got %d", len(tree.Leaves))
	}
}

func TestBuild2DFirstOrderHasOneChildPerFacingWall(t *testing.T) {
	tree := Build2D(boxWalls2D(t), geometry.Vec2(50, 50), 1, geometry.ClassifyEpsilon)
	root := tree.Nodes[tree.Root]
	if len(root.Children) != 4 {
		t.Fatalf("expected 4 first-order children (one per facing wall), got %d", len(root.Children))
	}
	for _, c := range root.Children {
		node := tree.Nodes[c]
		if node.Order != 1 {
			t.Errorf("child order = %d, want 1", node.Order)
		}
		if node.Aperture == nil {
			t.Error("child aperture should be set")
		}
		if len(node.BoundaryPlanes) != 3 {
			t.Errorf("2D node should carry 3 boundary planes (left, right, window), got %d", len(node.BoundaryPlanes))
		}
	}
	if len(tree.Leaves) != 4 {
		t.Errorf("expected 4 leaves, got %d", len(tree.Leaves))
	}
}

func TestBuild2DVirtualSourceIsMirrorOfParent(t *testing.T) {
	source := geometry.Vec2(50, 50)
	tree := Build2D(boxWalls2D(t), source, 1, geometry.ClassifyEpsilon)
	root := tree.Nodes[tree.Root]

	for _, c := range root.Children {
		node := tree.Nodes[c]
		// The wall supplying this child's image source.
		var w surface.Polygon
		for _, ww := range boxWalls2D(t) {
			if ww.ID == node.SurfaceID {
				w = ww
			}
		}
		want := w.Plane.MirrorPoint(source)
		if !node.VirtualSource.ApproxEqual(want, 1e-9) {
			t.Errorf("surface %d: virtual source %v, want %v", node.SurfaceID, node.VirtualSource, want)
		}
	}
}

func TestBuild2DDoesNotExpandBehindASingleWall(t *testing.T) {
	// A lone wall with inward normal +Y (south wall of the box): a source
	// on its back side (y<0) must not produce a child for it.
	walls := []surface.Polygon{wall2D(t, 0, 0, 0, 100, 0)}
	tree := Build2D(walls, geometry.Vec2(50, -10), 1, geometry.ClassifyEpsilon)
	root := tree.Nodes[tree.Root]
	if len(root.Children) != 0 {
		t.Errorf("expected no child for a source behind the wall's facing side, got %d", len(root.Children))
	}
}

func TestBuild2DSecondOrderAperturesShrinkOrVanish(t *testing.T) {
	tree := Build2D(boxWalls2D(t), geometry.Vec2(50, 50), 2, geometry.ClassifyEpsilon)
	for _, n := range tree.Nodes {
		if n.Order == 2 && n.Aperture != nil {
			if n.Aperture.Area() <= 0 {
				t.Errorf("second-order aperture should have positive clipped length, got %v", n.Aperture.Area())
			}
		}
	}
}

func box3DPolys(t *testing.T) []surface.Polygon {
	t.Helper()
	mk := func(id int, verts ...geometry.Vec3) surface.Polygon {
		p, err := surface.NewPolygon(id, verts, "")
		if err != nil {
			t.Fatalf("NewPolygon %d: %v", id, err)
		}
		return p
	}
	// An axis-aligned 10x8x3 shoebox, each face wound CCW as seen from
	// inside the room (outward normal points into the interior).
	return []surface.Polygon{
		mk(0, geometry.Vec3{X: 0, Y: 0, Z: 0}, geometry.Vec3{X: 0, Y: 8, Z: 0}, geometry.Vec3{X: 0, Y: 8, Z: 3}, geometry.Vec3{X: 0, Y: 0, Z: 3}),          // x=0, normal +X
		mk(1, geometry.Vec3{X: 10, Y: 8, Z: 0}, geometry.Vec3{X: 10, Y: 0, Z: 0}, geometry.Vec3{X: 10, Y: 0, Z: 3}, geometry.Vec3{X: 10, Y: 8, Z: 3}),     // x=10, normal -X
		mk(2, geometry.Vec3{X: 10, Y: 0, Z: 0}, geometry.Vec3{X: 0, Y: 0, Z: 0}, geometry.Vec3{X: 0, Y: 0, Z: 3}, geometry.Vec3{X: 10, Y: 0, Z: 3}),       // y=0, normal +Y
		mk(3, geometry.Vec3{X: 0, Y: 8, Z: 0}, geometry.Vec3{X: 10, Y: 8, Z: 0}, geometry.Vec3{X: 10, Y: 8, Z: 3}, geometry.Vec3{X: 0, Y: 8, Z: 3}),       // y=8, normal -Y
		mk(4, geometry.Vec3{X: 0, Y: 8, Z: 0}, geometry.Vec3{X: 0, Y: 0, Z: 0}, geometry.Vec3{X: 10, Y: 0, Z: 0}, geometry.Vec3{X: 10, Y: 8, Z: 0}),       // z=0, normal +Z
		mk(5, geometry.Vec3{X: 0, Y: 0, Z: 3}, geometry.Vec3{X: 0, Y: 8, Z: 3}, geometry.Vec3{X: 10, Y: 8, Z: 3}, geometry.Vec3{X: 10, Y: 0, Z: 3}),       // z=3, normal -Z
	}
}

func TestBuild3DFirstOrderHasOneChildPerFace(t *testing.T) {
	tree := Build3D(box3DPolys(t), geometry.Vec3{X: 5, Y: 4, Z: 1.5}, 1, geometry.ClassifyEpsilon)
	root := tree.Nodes[tree.Root]
	if len(root.Children) != 6 {
		t.Fatalf("expected 6 first-order children (one per face), got %d", len(root.Children))
	}
	for _, c := range root.Children {
		node := tree.Nodes[c]
		if len(node.BoundaryPlanes) != 5 {
			t.Errorf("3D square-face node should carry 4 edge planes + 1 aperture plane, got %d", len(node.BoundaryPlanes))
		}
	}
}

func TestVisualizeOrderFilter(t *testing.T) {
	tree := Build2D(boxWalls2D(t), geometry.Vec2(50, 50), 2, geometry.ClassifyEpsilon)

	all := tree.Visualize(-1)
	first := tree.Visualize(1)
	if len(first) >= len(all) {
		t.Errorf("maxOrder=1 visualization (%d) should be smaller than unlimited (%d)", len(first), len(all))
	}
	for _, b := range first {
		if b.ReflectionOrder > 1 {
			t.Errorf("visualize(1) returned an order-%d beam", b.ReflectionOrder)
		}
	}
}
