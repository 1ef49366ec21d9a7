package geometry

import "math"

// Vec3 is a point or a free vector in R^3. 2D geometry is represented with
// Z held at 0 throughout, the way the teacher's BSP package represented 2D
// points as a degenerate case of its Vector2/Point types.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 constructs a Vec3 in the z=0 plane.
func Vec2(x, y float64) Vec3 {
	return Vec3{X: x, Y: y, Z: 0}
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vec3) LengthSquared() float64 { return v.Dot(v) }

func (v Vec3) Length() float64 { return math.Sqrt(v.LengthSquared()) }

// Normalize returns a unit-length copy of v, or the zero vector if v is
// degenerate (length below DegenerateEpsilon).
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < DegenerateEpsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp linearly interpolates from v to o by t, with t clamped to [0,1] to
// defend against floating-point drift per the spec's numeric policy.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	t = Clamp(t, 0, 1)
	return v.Add(o.Sub(v).Scale(t))
}

func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// ApproxEqual reports whether v and o are within eps of each other in every
// component, used by property tests comparing path endpoints.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}
