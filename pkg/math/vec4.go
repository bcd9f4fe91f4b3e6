package math

// Vec4 is a 4-component vector. Cast stores rotations as Vec4 in x, y, z, w order.
type Vec4 struct {
	X, Y, Z, W float32
}

// Quat reinterprets the vector as a quaternion.
func (v Vec4) Quat() Quat {
	return Quat{X: v.X, Y: v.Y, Z: v.Z, W: v.W}
}

// Array returns the components as a fixed-size array.
func (v Vec4) Array() [4]float32 {
	return [4]float32{v.X, v.Y, v.Z, v.W}
}
