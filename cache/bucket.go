package cache

import "github.com/10log/BeamTrace2D-sub000/geometry"

// DefaultBucketSize is the default contiguous group size for leaf nodes,
// per §3.
const DefaultBucketSize = 16

// SkipSphere is a ball around a listener position within which every leaf
// of a bucket is guaranteed to still fail, per §4.7.
type SkipSphere struct {
	Center geometry.Vec3
	Radius float64
}

// Contains reports whether listener falls strictly inside the sphere.
func (s SkipSphere) Contains(listener geometry.Vec3) bool {
	return listener.Distance(s.Center) < s.Radius
}

// Bucket is a contiguous group of leaf beam-tree node indices sharing one
// optional skip sphere.
type Bucket struct {
	LeafIndices []int32
	Skip        *SkipSphere
}

// State is the per-query-session mutable side table: one fail plane slot
// per leaf node index, and one optional skip sphere per bucket. It is
// built once alongside the beam tree and lives for the façade's lifetime,
// written only by query-time cache updates (§3's lifecycle rules) and by
// ClearCache.
type State struct {
	failPlanes map[int32]FailPlane
	buckets    []Bucket
}

// NewState partitions leaves into contiguous buckets of bucketSize (at
// least 1) and returns an empty cache state ready for querying.
func NewState(leaves []int32, bucketSize int) *State {
	if bucketSize < 1 {
		bucketSize = DefaultBucketSize
	}
	s := &State{failPlanes: make(map[int32]FailPlane)}
	for i := 0; i < len(leaves); i += bucketSize {
		end := i + bucketSize
		if end > len(leaves) {
			end = len(leaves)
		}
		chunk := make([]int32, end-i)
		copy(chunk, leaves[i:end])
		s.buckets = append(s.buckets, Bucket{LeafIndices: chunk})
	}
	return s
}

// Buckets exposes the bucket list read-only.
func (s *State) Buckets() []Bucket { return s.buckets }

// FailPlane returns the cached fail plane for a leaf node, if any.
func (s *State) FailPlane(nodeIdx int32) (FailPlane, bool) {
	fp, ok := s.failPlanes[nodeIdx]
	return fp, ok
}

// SetFailPlane caches a fail plane for a leaf node.
func (s *State) SetFailPlane(nodeIdx int32, fp FailPlane) {
	s.failPlanes[nodeIdx] = fp
}

// ClearFailPlane drops a single leaf's cached fail plane.
func (s *State) ClearFailPlane(nodeIdx int32) {
	delete(s.failPlanes, nodeIdx)
}

// InvalidateBucket drops bucket i's skip sphere.
func (s *State) InvalidateBucket(i int) {
	s.buckets[i].Skip = nil
}

// ClearBucketFailPlanes drops every leaf's cached fail plane in bucket i.
func (s *State) ClearBucketFailPlanes(i int) {
	for _, leaf := range s.buckets[i].LeafIndices {
		s.ClearFailPlane(leaf)
	}
}

// SetSkipSphere installs a skip sphere on bucket i.
func (s *State) SetSkipSphere(i int, sphere SkipSphere) {
	s.buckets[i].Skip = &sphere
}

// Clear resets every fail plane and every skip sphere to empty, per
// clearCache() in §3 and §6, leaving the trees themselves intact.
func (s *State) Clear() {
	s.failPlanes = make(map[int32]FailPlane)
	for i := range s.buckets {
		s.buckets[i].Skip = nil
	}
}
