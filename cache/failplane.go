// Package cache implements the two optimizations that let successive
// getPaths(listener) calls on the same façade reuse work: the per-leaf
// fail plane (§4.6) and the per-bucket skip sphere (§4.7). Per the
// concurrency design notes (§9), these are kept as a side table keyed by
// beam-tree node index rather than mutated onto the (read-only, shared)
// beam tree itself, so a future lock-free per-query cache is a matter of
// swapping the side table, not restructuring the tree.
package cache

import (
	"github.com/10log/BeamTrace2D-sub000/beam"
	"github.com/10log/BeamTrace2D-sub000/geometry"
)

// Kind tags why a fail plane was cached, a sum type standing in for the
// reference implementation's runtime-tagged polymorphism (§9).
type Kind int

const (
	KindPolygon Kind = iota
	KindEdge
	KindAperture
)

// FailPlane is the cached reason a leaf's last validation failed: the
// listener must be in front of Plane for revalidation to be worth
// attempting.
type FailPlane struct {
	Plane geometry.Plane
	Kind  Kind
}

// DetectFailPlane implements §4.6: given a leaf node that just failed
// validation for listener, find a single plane compactly explaining the
// failure, if the failure is attributable to geometric containment rather
// than third-party occlusion (in which case ok=false and the optimization
// degrades gracefully to ordinary validation next time).
func DetectFailPlane(node *beam.Node, listener geometry.Vec3) (FailPlane, bool) {
	if node.Aperture == nil {
		return FailPlane{}, false
	}

	// Orient the reflecting surface's plane so the virtual source sits in
	// front, then check whether the listener is on the wrong side.
	surfacePlane := node.Aperture.Plane
	if surfacePlane.SignedDistance(node.VirtualSource) < 0 {
		surfacePlane = surfacePlane.Flip()
	}
	if surfacePlane.SignedDistance(listener) < 0 {
		return FailPlane{Plane: surfacePlane, Kind: KindPolygon}, true
	}

	// Otherwise the first boundary plane (edge planes, then the trailing
	// aperture plane) the listener falls behind explains the failure.
	n := len(node.BoundaryPlanes)
	for i, p := range node.BoundaryPlanes {
		if p.SignedDistance(listener) < 0 {
			kind := KindEdge
			if i == n-1 {
				kind = KindAperture
			}
			return FailPlane{Plane: p, Kind: kind}, true
		}
	}

	// Validation failed for a reason no single plane captures (most likely
	// occlusion by a third surface); leave the fail plane unset.
	return FailPlane{}, false
}

// PropagateFailPlane mirrors a fail plane detected at an ancestor node
// through each reflecting surface between the ancestor and a descendant
// leaf, yielding a plane valid for listener tests at the leaf, per §4.6's
// documented (but by default unused, per the leaf-bound simplification)
// propagation helper. chain lists the surface planes encountered walking
// from the ancestor down to the leaf, in that order.
func PropagateFailPlane(fp FailPlane, chain []geometry.Plane) FailPlane {
	out := fp
	for _, surfacePlane := range chain {
		out.Plane = surfacePlane.MirrorPlane(out.Plane)
	}
	return out
}
