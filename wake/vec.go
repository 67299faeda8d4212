package wake

import "math"

// Seconds is simulated wall-clock time. The host render loop supplies it; the
// engine never reads a real clock.
type Seconds float64

// Vec3 is a position or velocity over the simulated water plane. Y is height
// and stays zero for surface vessels.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Length returns the Euclidean norm of v.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns v scaled to unit length, or the zero vector if v has no
// direction.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}

	return v.Scale(1 / l)
}

// Bounds is the simulated patch of water on the XZ plane.
type Bounds struct {
	MinX, MaxX float64
	MinZ, MaxZ float64
}

// Contains reports whether p lies inside the bounds expanded by margin on
// every side.
func (b Bounds) Contains(p Vec3, margin float64) bool {
	return p.X >= b.MinX-margin && p.X <= b.MaxX+margin &&
		p.Z >= b.MinZ-margin && p.Z <= b.MaxZ+margin
}

// Width returns the X extent of the bounds.
func (b Bounds) Width() float64 {
	return b.MaxX - b.MinX
}

// Depth returns the Z extent of the bounds.
func (b Bounds) Depth() float64 {
	return b.MaxZ - b.MinZ
}
