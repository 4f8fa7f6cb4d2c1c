// Package physics provides vector math and collision detection.
package physics

import "math"

// Vector is an immutable 2D vector.
type Vector struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vector{}

// Add returns v + u.
func (v Vector) Add(u Vector) Vector { return Vector{v.X + u.X, v.Y + u.Y} }

// Sub returns v - u.
func (v Vector) Sub(u Vector) Vector { return Vector{v.X - u.X, v.Y - u.Y} }

// Scale returns v * s.
func (v Vector) Scale(s float64) Vector { return Vector{v.X * s, v.Y * s} }

// Length returns the magnitude of v.
func (v Vector) Length() float64 { return math.Hypot(v.X, v.Y) }

// Rotate returns v rotated by deg degrees. Positive angles turn +X toward +Y,
// which is clockwise on a y-down screen.
func (v Vector) Rotate(deg float64) Vector {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Circle is a collision shape.
type Circle struct {
	Center Vector
	Radius float64
}

// Overlaps reports whether two circles overlap: their centers are strictly
// closer than the sum of their radii, so tangent circles do not.
func (c Circle) Overlaps(o Circle) bool {
	return c.Center.Sub(o.Center).Length() < c.Radius+o.Radius
}
