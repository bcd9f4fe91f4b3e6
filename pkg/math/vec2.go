// Package math provides the small vector, quaternion and matrix types used by the
// Cast decoder and its exporters.
package math

// Vec2 is a 2D vector. Cast stores texture coordinates as Vec2.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Array returns the components as a fixed-size array.
func (v Vec2) Array() [2]float32 {
	return [2]float32{v.X, v.Y}
}
