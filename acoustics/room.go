// Package acoustics is the public façade: it owns the precomputed beam
// tree, BSP tree, and query-time cache for one (geometry, source, max_order)
// triple and answers getPaths(listener) queries against it, per §6.
package acoustics

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/10log/BeamTrace2D-sub000/beam"
	"github.com/10log/BeamTrace2D-sub000/bsp"
	"github.com/10log/BeamTrace2D-sub000/detail"
	"github.com/10log/BeamTrace2D-sub000/geometry"
	"github.com/10log/BeamTrace2D-sub000/solver"
	"github.com/10log/BeamTrace2D-sub000/surface"
)

// Options configures a Room's build-time parameters, per §6. The zero value
// is a legal configuration (max_reflection_order 0 means direct paths only),
// not an unset sentinel; call DefaultOptions for the spec's stated defaults.
type Options struct {
	MaxReflectionOrder int
	BucketSize         int
	Eps                float64
}

// DefaultOptions returns the spec's documented defaults: max reflection
// order 5, bucket size 16, classification epsilon 1e-6.
func DefaultOptions() Options {
	return Options{MaxReflectionOrder: 5, BucketSize: 16, Eps: geometry.ClassifyEpsilon}
}

func (o Options) withDefaults() Options {
	out := o
	if out.BucketSize < 1 {
		out.BucketSize = 16
	}
	if out.Eps <= 0 {
		out.Eps = geometry.ClassifyEpsilon
	}
	return out
}

// Room is a built façade over one room's geometry, source, and reflection
// budget. It is read-only for the lifetime of any number of GetPaths calls
// except for the fail-plane/skip-sphere cache it owns internally (§5); a
// Room must not be queried concurrently without external synchronization.
type Room struct {
	surfaces []surface.Polygon
	source   geometry.Vec3
	opts     Options
	beams    *beam.Tree
	space    *bsp.Tree
	solver   *solver.Solver
}

// BuildRoom2D constructs a Room from 2D wall segments. source must be
// non-nil; surfaces must be non-empty 2-vertex open walls.
func BuildRoom2D(walls []surface.Polygon, source *geometry.Vec3, opts Options) (*Room, error) {
	if err := validateSurfaces(walls, false); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("acoustics: missing source: %w", InvalidGeometry)
	}
	opts = opts.withDefaults()
	bt := beam.Build2D(walls, *source, opts.MaxReflectionOrder, opts.Eps)
	return newRoom(walls, *source, opts, bt), nil
}

// BuildRoom3D constructs a Room from 3D convex polygons. source must be
// non-nil; surfaces must be non-empty, convex, CCW-wound polygons of at
// least 3 vertices.
func BuildRoom3D(polygons []surface.Polygon, source *geometry.Vec3, opts Options) (*Room, error) {
	if err := validateSurfaces(polygons, true); err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("acoustics: missing source: %w", InvalidGeometry)
	}
	opts = opts.withDefaults()
	bt := beam.Build3D(polygons, *source, opts.MaxReflectionOrder, opts.Eps)
	return newRoom(polygons, *source, opts, bt), nil
}

func newRoom(surfaces []surface.Polygon, source geometry.Vec3, opts Options, bt *beam.Tree) *Room {
	space := bsp.Build(surfaces, opts.Eps)
	return &Room{
		surfaces: surfaces,
		source:   source,
		opts:     opts,
		beams:    bt,
		space:    space,
		solver:   solver.New(bt, space, source, opts.BucketSize, opts.Eps),
	}
}

func validateSurfaces(surfaces []surface.Polygon, want3D bool) error {
	if len(surfaces) == 0 {
		return fmt.Errorf("acoustics: empty surface list: %w", InvalidGeometry)
	}
	for _, s := range surfaces {
		if s.Closed != want3D {
			return fmt.Errorf("acoustics: surface %d has wrong dimensionality: %w", s.ID, InvalidGeometry)
		}
		if s.Closed {
			if len(s.Vertices) < 3 {
				return fmt.Errorf("acoustics: polygon %d has fewer than 3 vertices: %w", s.ID, InvalidGeometry)
			}
			if hasDuplicateVertex(s.Vertices, geometry.ClassifyEpsilon) {
				return fmt.Errorf("acoustics: polygon %d has a duplicated vertex: %w", s.ID, InvalidGeometry)
			}
			if !isConvex(s) {
				return fmt.Errorf("acoustics: polygon %d is non-convex: %w", s.ID, InvalidGeometry)
			}
		} else if len(s.Vertices) != 2 {
			return fmt.Errorf("acoustics: wall %d must have exactly 2 vertices: %w", s.ID, InvalidGeometry)
		}
		if s.Area() < geometry.DegenerateEpsilon {
			return fmt.Errorf("acoustics: surface %d is degenerate: %w", s.ID, InvalidGeometry)
		}
	}
	return nil
}

func hasDuplicateVertex(vertices []geometry.Vec3, eps float64) bool {
	for i := 0; i < len(vertices); i++ {
		for j := i + 1; j < len(vertices); j++ {
			if vertices[i].ApproxEqual(vertices[j], eps) {
				return true
			}
		}
	}
	return false
}

// isConvex reports whether a closed polygon's winding is consistently CCW
// (every consecutive edge pair turns the same way as the supporting plane's
// normal implies), the convexity invariant §3 requires.
func isConvex(poly surface.Polygon) bool {
	n := len(poly.Vertices)
	for i := 0; i < n; i++ {
		a := poly.Vertices[i]
		b := poly.Vertices[(i+1)%n]
		c := poly.Vertices[(i+2)%n]
		turn := b.Sub(a).Cross(c.Sub(b))
		if turn.Dot(poly.Plane.Normal) < -geometry.ClassifyEpsilon {
			return false
		}
	}
	return true
}

// GetPaths answers a listener query, per §4.5. listener must be non-nil.
// Results are sorted by (order, surface-id sequence) for deterministic,
// reproducible output, independent of internal traversal/bucket order.
func (r *Room) GetPaths(listener *geometry.Vec3) ([]solver.Path, error) {
	if listener == nil {
		return nil, fmt.Errorf("acoustics: missing listener: %w", InvalidQuery)
	}
	paths := r.solver.GetPaths(*listener)
	slices.SortStableFunc(paths, comparePaths)
	return paths, nil
}

// GetDetailedPaths is GetPaths followed by per-reflection decoration, per
// §4.8.
func (r *Room) GetDetailedPaths(listener *geometry.Vec3) ([]detail.Path, error) {
	paths, err := r.GetPaths(listener)
	if err != nil {
		return nil, err
	}
	out := make([]detail.Path, 0, len(paths))
	for _, p := range paths {
		d, err := detail.Decorate(p, r.surfaces)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// GetMetrics returns the counters from the most recent GetPaths call.
func (r *Room) GetMetrics() solver.Metrics { return r.solver.Metrics() }

// ClearCache discards every cached fail plane and skip sphere, per §6.
func (r *Room) ClearCache() { r.solver.ClearCache() }

// GetBeamsForVisualization returns one record per beam-tree node up to
// maxOrder (maxOrder < 0 means unlimited), sorted by (order, surface id)
// for deterministic output, per §6.
func (r *Room) GetBeamsForVisualization(maxOrder int) []beam.VisualBeam {
	beams := r.beams.Visualize(maxOrder)
	slices.SortStableFunc(beams, func(a, b beam.VisualBeam) int {
		if a.ReflectionOrder != b.ReflectionOrder {
			return a.ReflectionOrder - b.ReflectionOrder
		}
		return a.SurfaceID - b.SurfaceID
	})
	return beams
}

func comparePaths(a, b solver.Path) int {
	if a.Order != b.Order {
		return a.Order - b.Order
	}
	idsA, idsB := a.SurfaceIDs(), b.SurfaceIDs()
	for i := 0; i < len(idsA) && i < len(idsB); i++ {
		if idsA[i] != idsB[i] {
			return idsA[i] - idsB[i]
		}
	}
	return len(idsA) - len(idsB)
}
