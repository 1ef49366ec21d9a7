// Package solver drives path validation for a listener query: the direct
// path check, recursive node-to-root reflection validation, and the
// bucket-accelerated leaf pass that exploits the fail-plane and skip-sphere
// caches, per §4.5.
package solver

import "github.com/10log/BeamTrace2D-sub000/geometry"

// PathPoint is one vertex of an emitted path: a point, and the id of the
// surface it reflects off, or nil for the listener/source endpoints.
type PathPoint struct {
	Point     geometry.Vec3
	SurfaceID *int
}

// Path is an ordered sequence listener, r_1, ..., r_k, source per §3.
// Order is the number of interior reflection points (k).
type Path struct {
	Points []PathPoint
	Order  int
}

// SurfaceIDs returns the ordered sequence of reflecting surface ids for a
// path's interior points, the comparison key used by the order-monotonicity
// and cache-equivalence property tests in §8.
func (p Path) SurfaceIDs() []int {
	ids := make([]int, 0, len(p.Points)-2)
	for _, pt := range p.Points {
		if pt.SurfaceID != nil {
			ids = append(ids, *pt.SurfaceID)
		}
	}
	return ids
}

// Length returns the path's total polyline length.
func (p Path) Length() float64 {
	var total float64
	for i := 1; i < len(p.Points); i++ {
		total += p.Points[i-1].Point.Distance(p.Points[i].Point)
	}
	return total
}

// Metrics are the monotonic counters exposed by getMetrics(), reset at the
// start of each GetPaths call, per §6.
type Metrics struct {
	LeafNodes         int
	Buckets           int
	BucketsSkipped    int
	BucketsChecked    int
	FailPlaneHits     int
	FailPlaneMisses   int
	RaycastCount      int
	SkipSpheresActive int
	ValidPathCount    int
}
