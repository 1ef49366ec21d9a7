package beam

import (
	"github.com/10log/BeamTrace2D-sub000/geometry"
	"github.com/10log/BeamTrace2D-sub000/surface"
)

// Build2D constructs the beam tree for a 2D room: walls is the ordered
// list of wall segments, source the real source position, maxOrder the
// deepest reflection order to expand, per §4.4's 2D reduction.
func Build2D(walls []surface.Polygon, source geometry.Vec3, maxOrder int, eps float64) *Tree {
	return build(walls, source, maxOrder, eps, childBuilder2D)
}

// verticalPlaneThroughPoints builds the 2D "line" (a vertical plane, z
// normal component 0) passing through a and b, both assumed to lie in the
// z=0 plane.
func verticalPlaneThroughPoints(a, b geometry.Vec3) geometry.Plane {
	edge := b.Sub(a)
	normal := geometry.Vec3{X: -edge.Y, Y: edge.X, Z: 0}
	return geometry.NewPlaneFromNormalPoint(normal, a)
}

func childBuilder2D(parentVS geometry.Vec3, parentBoundary []geometry.Plane, candidate surface.Polygon, eps float64) (geometry.Vec3, surface.Polygon, []geometry.Plane, bool) {
	vs := candidate.Plane.MirrorPoint(parentVS)

	aperture := candidate
	if len(parentBoundary) > 0 {
		clipped := surface.ClipByPlanes(aperture, parentBoundary, eps)
		if clipped == nil {
			return geometry.Vec3{}, surface.Polygon{}, nil, false
		}
		aperture = *clipped
	}
	if aperture.Area() < geometry.MinApertureArea {
		return geometry.Vec3{}, surface.Polygon{}, nil, false
	}

	p1, p2 := aperture.Vertices[0], aperture.Vertices[1]
	centroid := aperture.Centroid()

	left := orientToward(verticalPlaneThroughPoints(vs, p2), centroid)
	right := orientToward(verticalPlaneThroughPoints(p1, vs), centroid)
	window := orientAway(aperture.Plane, vs)

	boundary := []geometry.Plane{left, right, window}
	return vs, aperture, boundary, true
}
