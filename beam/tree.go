// Package beam builds the precomputed tree of image (virtual) sources
// reachable by up to N reflections from the room's real source, per §4.4.
// The tree's bookkeeping (arena storage, parent/child indices, leaf
// tracking, recursion to depth N) is shared between 2D and 3D; only the
// per-candidate construction of a child's virtual source, aperture, and
// boundary planes differs, matching the spec's framing that "both shapes
// share one design."
package beam

import "github.com/10log/BeamTrace2D-sub000/geometry"
import "github.com/10log/BeamTrace2D-sub000/surface"

const noParent = -1

// Node is one node of the beam tree: the root (SurfaceID -1, Aperture nil)
// represents the real source; every other node owns exactly one reflecting
// surface id, per §3.
type Node struct {
	SurfaceID      int
	Order          int
	VirtualSource  geometry.Vec3
	Aperture       *surface.Polygon
	BoundaryPlanes []geometry.Plane
	Parent         int32
	Children       []int32
}

// Tree is the beam tree, arena-allocated: nodes reference each other by
// index, never by pointer, so the tree has no reference cycles (§9).
type Tree struct {
	Nodes []Node
	Root  int32
	// Leaves holds the index (into Nodes) of every node with no children,
	// excluding the root, in tree-traversal (build) order. These are the
	// nodes the bucket/cache layer groups and accelerates.
	Leaves []int32
}

// childBuilder synthesizes a prospective child node from a parent's virtual
// source and accumulated boundary planes plus one candidate surface. It
// returns ok=false if the candidate's clipped aperture is empty or
// degenerates. It does not test whether the candidate faces the parent's
// virtual source; expand applies that test (faces) before calling it.
type childBuilder func(parentVS geometry.Vec3, parentBoundary []geometry.Plane, candidate surface.Polygon, eps float64) (vs geometry.Vec3, aperture surface.Polygon, boundaryPlanes []geometry.Plane, ok bool)

// build is the dimension-agnostic recursive tree builder.
func build(surfaces []surface.Polygon, source geometry.Vec3, maxOrder int, eps float64, cb childBuilder) *Tree {
	t := &Tree{}
	rootIdx := int32(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{SurfaceID: -1, Order: 0, VirtualSource: source, Parent: noParent})
	t.Root = rootIdx

	t.expand(rootIdx, source, nil, surfaces, 1, maxOrder, eps, cb)
	return t
}

func (t *Tree) expand(parentIdx int32, parentVS geometry.Vec3, parentBoundary []geometry.Plane, surfaces []surface.Polygon, depth, maxOrder int, eps float64, cb childBuilder) {
	if depth > maxOrder {
		if parentIdx != t.Root && len(t.Nodes[parentIdx].Children) == 0 {
			t.Leaves = append(t.Leaves, parentIdx)
		}
		return
	}

	childCount := 0
	for _, candidate := range surfaces {
		if !faces(candidate, parentVS, eps) {
			continue
		}
		vs, aperture, boundary, ok := cb(parentVS, parentBoundary, candidate, eps)
		if !ok {
			continue
		}

		childIdx := int32(len(t.Nodes))
		t.Nodes = append(t.Nodes, Node{
			SurfaceID:      candidate.ID,
			Order:          depth,
			VirtualSource:  vs,
			Aperture:       &aperture,
			BoundaryPlanes: boundary,
			Parent:         parentIdx,
		})
		t.Nodes[parentIdx].Children = append(t.Nodes[parentIdx].Children, childIdx)
		childCount++

		t.expand(childIdx, vs, boundary, surfaces, depth+1, maxOrder, eps, cb)
	}

	if childCount == 0 && parentIdx != t.Root {
		t.Leaves = append(t.Leaves, parentIdx)
	}
}

// faces reports whether candidate's outward normal faces the given virtual
// source, the gate for creating any child at all, per §4.4 step 0.
func faces(candidate surface.Polygon, vs geometry.Vec3, eps float64) bool {
	n := candidate.Plane.Normal
	return n.Dot(vs.Sub(candidate.Centroid())) > eps
}

// orientToward flips plane if needed so that point lies on its front side.
func orientToward(plane geometry.Plane, point geometry.Vec3) geometry.Plane {
	if plane.SignedDistance(point) < 0 {
		return plane.Flip()
	}
	return plane
}

// orientAway flips plane if needed so that point lies on its back side.
func orientAway(plane geometry.Plane, point geometry.Vec3) geometry.Plane {
	if plane.SignedDistance(point) > 0 {
		return plane.Flip()
	}
	return plane
}
