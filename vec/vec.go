// Package vec provides the 2D vector type shared by the simulation packages.
// Screen coordinates are used throughout: X grows to the right, Y grows down.
package vec

import "math"

// Vec2 is an immutable 2D point or direction.
type Vec2 struct {
	X, Y float64
}

// New creates a vector from its components.
func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Zero returns the zero vector.
func Zero() Vec2 {
	return Vec2{}
}

// Down returns the unit vector pointing down the screen.
func Down() Vec2 {
	return Vec2{X: 0, Y: 1}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Div divides both components by s. Dividing by zero yields the zero vector.
func (v Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / s, Y: v.Y / s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Dist returns the distance between two points.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Normalize returns the unit vector in the direction of v, or the zero vector
// when v has no length.
func (v Vec2) Normalize() Vec2 {
	return v.Div(v.Len())
}

// WithLen returns a vector with the direction of v and the given length.
func (v Vec2) WithLen(l float64) Vec2 {
	return v.Normalize().Scale(l)
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Clamp restricts each component to the box spanned by lo and hi.
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{
		X: math.Max(lo.X, math.Min(v.X, hi.X)),
		Y: math.Max(lo.Y, math.Min(v.Y, hi.Y)),
	}
}

// ApproxEqual reports whether both components differ by at most eps.
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}
