// Package detail decorates a raw solver.Path with the per-reflection
// physical quantities §4.8 asks for: incoming/outgoing travel direction, a
// surface normal oriented toward the incoming side, incidence and reflection angle, a wall
// parameter locating the hit point on its surface, a grazing flag, and
// cumulative distance along the path.
package detail

import (
	"errors"
	"fmt"
	"math"

	"github.com/10log/BeamTrace2D-sub000/geometry"
	"github.com/10log/BeamTrace2D-sub000/solver"
	"github.com/10log/BeamTrace2D-sub000/surface"
)

// grazingThreshold is how close to perpendicular incidence must get before
// a reflection is flagged grazing: within 5 degrees of the surface plane.
const grazingThreshold = math.Pi/2 - 5*math.Pi/180

var (
	// ErrEmptyPath is returned for a path with fewer than two points.
	ErrEmptyPath = errors.New("detail: path has no points")
	// ErrMissingSurface is returned when a reflection's surface id has no
	// corresponding geometry in the set passed to Decorate.
	ErrMissingSurface = errors.New("detail: surface id not found")
)

// WallParameter locates a reflection point on its surface: T for a 2D wall
// segment (0 at the first vertex, 1 at the second, clamped in between), or
// U/V for a 3D polygon (an in-plane local frame rooted at the first vertex),
// per §4.8's note that the 3D pair is an optional diagnostic rather than a
// canonical unwrap.
type WallParameter struct {
	T     float64
	HasUV bool
	U, V  float64
}

// Reflection is one decorated interior path vertex. Incoming and Outgoing
// follow the path's own listener-to-source direction: Incoming points from
// the previous path vertex to this one, Outgoing from this one to the next.
type Reflection struct {
	Point              geometry.Vec3
	SurfaceID          int
	Normal             geometry.Vec3
	Incoming           geometry.Vec3
	Outgoing           geometry.Vec3
	IncidenceAngle     float64
	ReflectionAngle    float64
	Grazing            bool
	WallParam          WallParameter
	CumulativeDistance float64
}

// Path is a decorated solver.Path: the endpoints plus one Reflection per
// interior point, in listener-to-source order matching solver.Path.
type Path struct {
	Listener    geometry.Vec3
	Source      geometry.Vec3
	Order       int
	Reflections []Reflection
	TotalLength float64
}

// Decorate computes physical detail for every reflection in path. surfaces
// supplies the geometry for each surface id a reflection references;
// Decorate returns ErrMissingSurface wrapped with the offending id if one is
// absent.
func Decorate(path solver.Path, surfaces []surface.Polygon) (Path, error) {
	pts := path.Points
	n := len(pts)
	if n < 2 {
		return Path{}, ErrEmptyPath
	}

	byID := make(map[int]surface.Polygon, len(surfaces))
	for _, s := range surfaces {
		byID[s.ID] = s
	}

	cumulative := make([]float64, n)
	for i := 1; i < n; i++ {
		cumulative[i] = cumulative[i-1] + pts[i-1].Point.Distance(pts[i].Point)
	}

	reflections := make([]Reflection, 0, n-2)
	for i := 1; i < n-1; i++ {
		pt := pts[i]
		if pt.SurfaceID == nil {
			return Path{}, fmt.Errorf("detail: reflection %d has no surface id: %w", i, ErrMissingSurface)
		}
		surf, ok := byID[*pt.SurfaceID]
		if !ok {
			return Path{}, fmt.Errorf("detail: surface %d: %w", *pt.SurfaceID, ErrMissingSurface)
		}

		a, b := pts[i-1].Point, pts[i+1].Point
		incoming := pt.Point.Sub(a).Normalize()
		outgoing := b.Sub(pt.Point).Normalize()

		normal := surf.Plane.Normal
		if normal.Dot(a.Sub(pt.Point)) < 0 {
			normal = normal.Scale(-1)
		}

		incidence := math.Acos(geometry.Clamp(normal.Dot(incoming.Scale(-1)), -1, 1))
		reflectionAngle := math.Acos(geometry.Clamp(normal.Dot(outgoing), -1, 1))

		reflections = append(reflections, Reflection{
			Point:              pt.Point,
			SurfaceID:          *pt.SurfaceID,
			Normal:             normal,
			Incoming:           incoming,
			Outgoing:           outgoing,
			IncidenceAngle:     incidence,
			ReflectionAngle:    reflectionAngle,
			Grazing:            incidence > grazingThreshold,
			WallParam:          wallParameter(surf, pt.Point),
			CumulativeDistance: cumulative[i],
		})
	}

	return Path{
		Listener:    pts[0].Point,
		Source:      pts[n-1].Point,
		Order:       path.Order,
		Reflections: reflections,
		TotalLength: cumulative[n-1],
	}, nil
}

func wallParameter(surf surface.Polygon, point geometry.Vec3) WallParameter {
	v0, v1 := surf.Vertices[0], surf.Vertices[1]

	if !surf.Closed {
		edge := v1.Sub(v0)
		lenSq := edge.LengthSquared()
		if lenSq < geometry.DegenerateEpsilon {
			return WallParameter{T: 0}
		}
		t := point.Sub(v0).Dot(edge) / lenSq
		return WallParameter{T: geometry.Clamp(t, 0, 1)}
	}

	basis1 := v1.Sub(v0).Normalize()
	basis2 := surf.Plane.Normal.Cross(basis1).Normalize()
	rel := point.Sub(v0)
	return WallParameter{HasUV: true, U: rel.Dot(basis1), V: rel.Dot(basis2)}
}
