// Package surface models the two shapes of reflecting boundary the beam
// tracer deals with: a 2D wall segment and a 3D convex polygon. Per the
// spec's framing that "the 2D case is its reduction to lines... both shapes
// share one design," both are represented by the same Polygon type; a 2D
// wall is simply a Polygon with exactly two vertices and Closed=false, its
// supporting "plane" the vertical plane through the two endpoints embedded
// at z=0. This mirrors the teacher's own Wall/Polygon split in
// level.Polygon and bsp.Polygon, generalized to carry both shapes through
// one set of clip/split/ray-intersection routines instead of duplicating
// them.
package surface

import (
	"fmt"

	"github.com/10log/BeamTrace2D-sub000/geometry"
)

// Polygon is a convex, CCW-wound boundary: either a 3D reflecting polygon
// (Closed=true, >=3 vertices) or a 2D wall / window (Closed=false, exactly
// 2 vertices, an open polyline with a single edge).
type Polygon struct {
	ID       int
	Vertices []geometry.Vec3
	Closed   bool
	Plane    geometry.Plane
	Material string
}

// NewWall builds a 2D wall segment from two endpoints. The supporting plane
// is vertical (Z=0 component of the normal) through p1 and p2, with its
// normal the left-hand perpendicular of p2-p1, matching the original
// spec's 2D convention.
func NewWall(id int, p1, p2 geometry.Vec3, material string) (Polygon, error) {
	edge := p2.Sub(p1)
	if edge.LengthSquared() < geometry.DegenerateEpsilon {
		return Polygon{}, fmt.Errorf("surface: zero-length wall %d", id)
	}
	normal := geometry.Vec3{X: -edge.Y, Y: edge.X, Z: 0}
	return Polygon{
		ID:       id,
		Vertices: []geometry.Vec3{p1, p2},
		Closed:   false,
		Plane:    geometry.NewPlaneFromNormalPoint(normal, p1),
		Material: material,
	}, nil
}

// NewPolygon builds a 3D convex polygon from CCW-wound vertices. It is an
// error for the polygon to have fewer than 3 vertices or a degenerate
// (near-zero) area.
func NewPolygon(id int, vertices []geometry.Vec3, material string) (Polygon, error) {
	if len(vertices) < 3 {
		return Polygon{}, fmt.Errorf("surface: polygon %d needs at least 3 vertices, got %d", id, len(vertices))
	}
	plane := geometry.NewPlaneFromPoints(vertices[0], vertices[1], vertices[2])
	poly := Polygon{ID: id, Vertices: vertices, Closed: true, Plane: plane, Material: material}
	if poly.Area() < geometry.DegenerateEpsilon {
		return Polygon{}, fmt.Errorf("surface: polygon %d is degenerate (area below threshold)", id)
	}
	return poly, nil
}

// edgeCount returns the number of edges: Vertices wraps for a closed
// polygon, and is a single open chain for a 2-point wall.
func (p Polygon) edgeCount() int {
	if p.Closed {
		return len(p.Vertices)
	}
	if len(p.Vertices) < 2 {
		return 0
	}
	return len(p.Vertices) - 1
}

// Edge returns the i-th edge's two endpoints.
func (p Polygon) Edge(i int) (geometry.Vec3, geometry.Vec3) {
	v1 := p.Vertices[i]
	var v2 geometry.Vec3
	if p.Closed {
		v2 = p.Vertices[(i+1)%len(p.Vertices)]
	} else {
		v2 = p.Vertices[i+1]
	}
	return v1, v2
}

// Area returns the polygon's planar area for a closed polygon, or its
// total edge length for an open wall/window, the two interpretations of
// "area" the spec's MIN_APERTURE_AREA threshold is checked against.
func (p Polygon) Area() float64 {
	if !p.Closed {
		var total float64
		for i := 0; i < p.edgeCount(); i++ {
			a, b := p.Edge(i)
			total += a.Distance(b)
		}
		return total
	}
	if len(p.Vertices) < 3 {
		return 0
	}
	var sum geometry.Vec3
	origin := p.Vertices[0]
	for i := 1; i+1 < len(p.Vertices); i++ {
		sum = sum.Add(p.Vertices[i].Sub(origin).Cross(p.Vertices[i+1].Sub(origin)))
	}
	return 0.5 * sum.Dot(p.Plane.Normal)
}

// Centroid returns the arithmetic mean of the vertices, adequate for convex
// polygons and for a wall's midpoint.
func (p Polygon) Centroid() geometry.Vec3 {
	var sum geometry.Vec3
	for _, v := range p.Vertices {
		sum = sum.Add(v)
	}
	n := float64(len(p.Vertices))
	if n == 0 {
		return sum
	}
	return sum.Scale(1 / n)
}

// RayIntersect returns the parametric distance t>=0 and hit point where the
// ray from origin along dir crosses the polygon's/wall's support, requiring
// the hit point to lie within the polygon's boundary per §4.2: the
// edge-cross-vs-normal containment test for a closed polygon, or parametric
// segment containment for an open wall.
func (p Polygon) RayIntersect(origin, dir geometry.Vec3) (t float64, hit geometry.Vec3, ok bool) {
	t, planeOK := p.Plane.RayIntersect(origin, dir)
	if !planeOK || t < 0 {
		return 0, geometry.Vec3{}, false
	}
	hit = origin.Add(dir.Scale(t))
	if !p.contains(hit) {
		return 0, geometry.Vec3{}, false
	}
	return t, hit, true
}

// contains reports whether a point known to lie on the polygon's plane is
// within its boundary.
func (p Polygon) contains(point geometry.Vec3) bool {
	if !p.Closed {
		if len(p.Vertices) != 2 {
			return false
		}
		p1, p2 := p.Vertices[0], p.Vertices[1]
		edge := p2.Sub(p1)
		lenSq := edge.LengthSquared()
		if lenSq < geometry.DegenerateEpsilon {
			return false
		}
		t := point.Sub(p1).Dot(edge) / lenSq
		if t < -geometry.ClassifyEpsilon || t > 1+geometry.ClassifyEpsilon {
			return false
		}
		// Reject points off the infinite line (out-of-plane residual).
		closest := p1.Add(edge.Scale(geometry.Clamp(t, 0, 1)))
		return point.Distance(closest) < 1e-4
	}
	n := len(p.Vertices)
	for i := 0; i < n; i++ {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		edge := b.Sub(a)
		toPoint := point.Sub(a)
		cross := edge.Cross(toPoint)
		if cross.Dot(p.Plane.Normal) < -geometry.ClassifyEpsilon {
			return false
		}
	}
	return true
}
