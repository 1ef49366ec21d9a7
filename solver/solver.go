package solver

import (
	"math"

	"github.com/10log/BeamTrace2D-sub000/beam"
	"github.com/10log/BeamTrace2D-sub000/bsp"
	"github.com/10log/BeamTrace2D-sub000/cache"
	"github.com/10log/BeamTrace2D-sub000/geometry"
)

// noIgnore is the ignoreID sentinel for an occlusion test with no preceding
// surface to exclude (the direct path, and a node-to-root ascent's first
// leg from the listener).
const noIgnore = -1

// Solver answers getPaths(listener) queries against one precomputed beam
// tree and BSP tree, per §4.5. It owns the fail-plane/skip-sphere cache
// state for the pair of trees it was built from.
type Solver struct {
	tree   *beam.Tree
	bsp    *bsp.Tree
	cache  *cache.State
	source geometry.Vec3
	eps    float64

	metrics Metrics
}

// New builds a solver over an already-constructed beam tree and BSP tree.
// bucketSize is the leaf grouping size for the skip-sphere cache (§4.7);
// values below 1 fall back to cache.DefaultBucketSize.
func New(tree *beam.Tree, bspTree *bsp.Tree, source geometry.Vec3, bucketSize int, eps float64) *Solver {
	return &Solver{
		tree:   tree,
		bsp:    bspTree,
		cache:  cache.NewState(tree.Leaves, bucketSize),
		source: source,
		eps:    eps,
	}
}

// ClearCache discards every cached fail plane and skip sphere, per
// clearCache() in §6.
func (s *Solver) ClearCache() { s.cache.Clear() }

// Metrics returns the counters accumulated by the most recent GetPaths call.
func (s *Solver) Metrics() Metrics { return s.metrics }

// GetPaths finds every valid specular path from the real source to listener,
// per §4.5: the direct path, a post-order pass over intermediate (non-leaf)
// nodes, then a bucket-accelerated pass over leaf nodes.
func (s *Solver) GetPaths(listener geometry.Vec3) []Path {
	s.metrics = Metrics{
		LeafNodes: len(s.tree.Leaves),
		Buckets:   len(s.cache.Buckets()),
	}

	var paths []Path

	if p, ok := s.tryDirect(listener); ok {
		paths = append(paths, p)
		s.metrics.ValidPathCount++
	}

	s.traverseIntermediate(s.tree.Root, listener, &paths)
	s.bucketPass(listener, &paths)

	return paths
}

// tryDirect tests the unreflected source-to-listener path (order 0).
func (s *Solver) tryDirect(listener geometry.Vec3) (Path, bool) {
	toSource := s.source.Sub(listener)
	dist := toSource.Length()
	if dist < geometry.DegenerateEpsilon {
		return Path{Points: []PathPoint{{Point: listener}, {Point: s.source}}}, true
	}
	dir := toSource.Scale(1 / dist)

	if !s.clear(listener, dir, dist, noIgnore) {
		return Path{}, false
	}
	return Path{Points: []PathPoint{{Point: listener}, {Point: s.source}}}, true
}

// traverseIntermediate walks the beam tree in post order (children first,
// then self), attempting and emitting a path for every non-root node that
// has at least one child. Leaf nodes are deliberately skipped here — they
// are validated by the cache-accelerated bucketPass instead, so each node
// contributes exactly one emitted path attempt.
func (s *Solver) traverseIntermediate(nodeIdx int32, listener geometry.Vec3, out *[]Path) {
	node := &s.tree.Nodes[nodeIdx]
	for _, child := range node.Children {
		s.traverseIntermediate(child, listener, out)
	}
	if nodeIdx == s.tree.Root || len(node.Children) == 0 {
		return
	}
	if path, ok := s.validateNode(nodeIdx, listener); ok {
		*out = append(*out, path)
		s.metrics.ValidPathCount++
	}
}

// bucketPass validates every leaf node bucket by bucket, consulting and
// updating the fail-plane and skip-sphere caches per §4.6 and §4.7.
func (s *Solver) bucketPass(listener geometry.Vec3, out *[]Path) {
	for bi, bucket := range s.cache.Buckets() {
		if bucket.Skip != nil {
			if bucket.Skip.Contains(listener) {
				s.metrics.BucketsSkipped++
				continue
			}
			s.cache.InvalidateBucket(bi)
			s.cache.ClearBucketFailPlanes(bi)
		}
		s.metrics.BucketsChecked++

		anySuccess := false
		allHaveFailPlane := true

		for _, leafIdx := range bucket.LeafIndices {
			if fp, ok := s.cache.FailPlane(leafIdx); ok {
				if fp.Plane.SignedDistance(listener) < 0 {
					s.metrics.FailPlaneHits++
					continue
				}
				s.cache.ClearFailPlane(leafIdx)
			}
			s.metrics.FailPlaneMisses++

			path, ok := s.validateNode(leafIdx, listener)
			if ok {
				*out = append(*out, path)
				s.metrics.ValidPathCount++
				anySuccess = true
				allHaveFailPlane = false
				continue
			}

			if fp, ok := cache.DetectFailPlane(&s.tree.Nodes[leafIdx], listener); ok {
				s.cache.SetFailPlane(leafIdx, fp)
			} else {
				allHaveFailPlane = false
			}
		}

		if anySuccess || !allHaveFailPlane || len(bucket.LeafIndices) == 0 {
			continue
		}

		minDist := math.Inf(1)
		for _, leafIdx := range bucket.LeafIndices {
			fp, _ := s.cache.FailPlane(leafIdx)
			if d := math.Abs(fp.Plane.SignedDistance(listener)); d < minDist {
				minDist = d
			}
		}
		if minDist > 0 {
			s.cache.SetSkipSphere(bi, cache.SkipSphere{Center: listener, Radius: minDist})
			s.metrics.SkipSpheresActive++
		}
	}
}

// validateNode attempts to build the terminal path represented by beam-tree
// node nodeIdx, ascending from the node to the root per §4.5 step 2: at each
// node aim from the current point at the node's virtual source, find where
// that ray meets the node's reflecting aperture, confirm nothing occludes
// the leg just traced, record the hit, and continue from the parent. The
// final leg (last reflection point to the real source) is tested once the
// ascent reaches the root.
func (s *Solver) validateNode(nodeIdx int32, listener geometry.Vec3) (Path, bool) {
	current := listener
	prevSurfaceID := noIgnore

	points := []PathPoint{{Point: listener}}

	for n := nodeIdx; n != s.tree.Root; n = s.tree.Nodes[n].Parent {
		node := &s.tree.Nodes[n]

		aim := node.VirtualSource.Sub(current)
		distToVS := aim.Length()
		if distToVS < geometry.DegenerateEpsilon {
			return Path{}, false
		}
		dir := aim.Scale(1 / distToVS)

		tHit, hitPoint, ok := node.Aperture.RayIntersect(current, dir)
		s.metrics.RaycastCount++
		if !ok {
			return Path{}, false
		}

		if !s.clear(current, dir, tHit, prevSurfaceID) {
			return Path{}, false
		}

		surfaceID := node.SurfaceID
		points = append(points, PathPoint{Point: hitPoint, SurfaceID: &surfaceID})
		current = hitPoint
		prevSurfaceID = node.SurfaceID
	}

	toSource := s.source.Sub(current)
	dist := toSource.Length()
	if dist >= geometry.DegenerateEpsilon {
		dir := toSource.Scale(1 / dist)
		if !s.clear(current, dir, dist, prevSurfaceID) {
			return Path{}, false
		}
	}
	points = append(points, PathPoint{Point: s.source})

	return Path{Points: points, Order: len(points) - 2}, true
}

// clear reports whether the segment from origin toward dir, up to distance
// dist, is unoccluded, excluding ignoreID from self-intersection. A leg too
// short to carry a meaningful occlusion interval is treated as unoccluded.
func (s *Solver) clear(origin, dir geometry.Vec3, dist float64, ignoreID int) bool {
	tMax := dist - s.eps
	if tMax < s.eps {
		return true
	}
	s.metrics.RaycastCount++
	return !s.bsp.RayOccluded(origin, dir, s.eps, tMax, ignoreID)
}
