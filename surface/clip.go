package surface

import "github.com/10log/BeamTrace2D-sub000/geometry"

// Split partitions p by plane into front and back fragments, per §4.2.
// Either fragment is nil if its resulting vertex list would have fewer
// than the minimum needed to remain a valid polygon/wall. An on-plane
// vertex is added to both sides; a front->back or back->front edge
// contributes a linearly-interpolated intersection vertex to both.
// Fragments inherit p's supporting plane, Closed flag, and material tag.
func (p Polygon) Split(plane geometry.Plane, eps float64) (front, back *Polygon) {
	var frontVerts, backVerts []geometry.Vec3

	n := len(p.Vertices)
	edges := p.edgeCount()
	for i := 0; i < edges; i++ {
		v1 := p.Vertices[i]
		v2idx := (i + 1) % n
		v2 := p.Vertices[v2idx]

		d1 := plane.SignedDistance(v1)
		d2 := plane.SignedDistance(v2)

		switch {
		case d1 > eps:
			frontVerts = append(frontVerts, v1)
		case d1 < -eps:
			backVerts = append(backVerts, v1)
		default:
			frontVerts = append(frontVerts, v1)
			backVerts = append(backVerts, v1)
		}

		if (d1 > eps && d2 < -eps) || (d1 < -eps && d2 > eps) {
			t := geometry.Clamp(d1/(d1-d2), 0, 1)
			mid := v1.Lerp(v2, t)
			frontVerts = append(frontVerts, mid)
			backVerts = append(backVerts, mid)
		}
	}

	// For an open wall/window, the last vertex (v2 of the final edge) was
	// never visited as a v1; append it as a terminal point so a 2-vertex
	// segment yields correctly-shaped fragments.
	if !p.Closed && n > 0 {
		last := p.Vertices[n-1]
		switch {
		case plane.SignedDistance(last) > eps:
			frontVerts = append(frontVerts, last)
		case plane.SignedDistance(last) < -eps:
			backVerts = append(backVerts, last)
		default:
			frontVerts = append(frontVerts, last)
			backVerts = append(backVerts, last)
		}
	}

	minVerts := 3
	if !p.Closed {
		minVerts = 2
	}

	if len(frontVerts) >= minVerts {
		f := Polygon{ID: p.ID, Vertices: frontVerts, Closed: p.Closed, Plane: p.Plane, Material: p.Material}
		front = &f
	}
	if len(backVerts) >= minVerts {
		b := Polygon{ID: p.ID, Vertices: backVerts, Closed: p.Closed, Plane: p.Plane, Material: p.Material}
		back = &b
	}
	return front, back
}

// ClipByPlane keeps only the portion of p in front of plane (signed
// distance >= -eps counts as inside), using Sutherland-Hodgman. Returns nil
// if fewer than the minimum number of vertices survive.
func (p Polygon) ClipByPlane(plane geometry.Plane, eps float64) *Polygon {
	var out []geometry.Vec3
	n := len(p.Vertices)
	edges := p.edgeCount()

	inside := func(v geometry.Vec3) bool { return plane.SignedDistance(v) >= -eps }

	for i := 0; i < edges; i++ {
		cur := p.Vertices[i]
		next := p.Vertices[(i+1)%n]
		curIn := inside(cur)
		nextIn := inside(next)

		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			d1 := plane.SignedDistance(cur)
			d2 := plane.SignedDistance(next)
			if d1 != d2 {
				t := geometry.Clamp(d1/(d1-d2), 0, 1)
				out = append(out, cur.Lerp(next, t))
			}
		}
	}
	if !p.Closed && edges > 0 {
		last := p.Vertices[n-1]
		if inside(last) {
			out = append(out, last)
		}
	}

	minVerts := 3
	if !p.Closed {
		minVerts = 2
	}
	if len(out) < minVerts {
		return nil
	}
	return &Polygon{ID: p.ID, Vertices: out, Closed: p.Closed, Plane: p.Plane, Material: p.Material}
}

// ClipByPlanes iteratively clips p by each plane in turn, short-circuiting
// to nil as soon as one clip empties the polygon.
func ClipByPlanes(p Polygon, planes []geometry.Plane, eps float64) *Polygon {
	cur := p
	for _, pl := range planes {
		clipped := cur.ClipByPlane(pl, eps)
		if clipped == nil {
			return nil
		}
		cur = *clipped
	}
	return &cur
}

// QuickReject returns true iff every vertex of p is strictly behind at
// least one of the given planes, letting a beam-tree builder cheaply
// discard polygons with no hope of producing a visible aperture without
// running the full clip sequence, per §4.2.
func QuickReject(p Polygon, planes []geometry.Plane, eps float64) bool {
	for _, pl := range planes {
		allBehind := true
		for _, v := range p.Vertices {
			if pl.SignedDistance(v) >= -eps {
				allBehind = false
				break
			}
		}
		if allBehind {
			return true
		}
	}
	return false
}
