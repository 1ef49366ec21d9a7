package beam

import "github.com/10log/BeamTrace2D-sub000/geometry"

// VisualBeam is one read-only record of a beam-tree node's visualization
// geometry: the virtual source, the clipped aperture's vertices, the
// reflection order, and the reflecting surface id. It performs no
// rendering; it exists purely as an allocation-only traversal result for a
// caller to draw however it likes, keeping the out-of-scope rendering
// boundary intact.
type VisualBeam struct {
	VirtualSource    geometry.Vec3
	ApertureVertices []geometry.Vec3
	ReflectionOrder  int
	SurfaceID        int
}

// Visualize walks the tree in traversal order (self, then children) and
// returns one VisualBeam per non-root node. maxOrder < 0 means unlimited;
// otherwise nodes (and their descendants) beyond that order are excluded.
func (t *Tree) Visualize(maxOrder int) []VisualBeam {
	var out []VisualBeam
	var walk func(idx int32)
	walk = func(idx int32) {
		node := &t.Nodes[idx]
		if idx != t.Root {
			verts := make([]geometry.Vec3, len(node.Aperture.Vertices))
			copy(verts, node.Aperture.Vertices)
			out = append(out, VisualBeam{
				VirtualSource:    node.VirtualSource,
				ApertureVertices: verts,
				ReflectionOrder:  node.Order,
				SurfaceID:        node.SurfaceID,
			})
		}
		for _, c := range node.Children {
			if maxOrder < 0 || t.Nodes[c].Order <= maxOrder {
				walk(c)
			}
		}
	}
	walk(t.Root)
	return out
}
