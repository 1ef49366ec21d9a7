package beam

import (
	"github.com/10log/BeamTrace2D-sub000/geometry"
	"github.com/10log/BeamTrace2D-sub000/surface"
)

// Build3D constructs the beam tree for a 3D room of convex polygons, per
// §4.4.
func Build3D(polygons []surface.Polygon, source geometry.Vec3, maxOrder int, eps float64) *Tree {
	return build(polygons, source, maxOrder, eps, childBuilder3D)
}

func childBuilder3D(parentVS geometry.Vec3, parentBoundary []geometry.Plane, candidate surface.Polygon, eps float64) (geometry.Vec3, surface.Polygon, []geometry.Plane, bool) {
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

	centroid := aperture.Centroid()
	n := len(aperture.Vertices)
	boundary := make([]geometry.Plane, 0, n+1)
	for i := 0; i < n; i++ {
		v1 := aperture.Vertices[i]
		v2 := aperture.Vertices[(i+1)%n]
		edgePlane := geometry.NewPlaneFromPoints(vs, v1, v2)
		boundary = append(boundary, orientToward(edgePlane, centroid))
	}
	boundary = append(boundary, orientAway(aperture.Plane, vs))

	return vs, aperture, boundary, true
}
