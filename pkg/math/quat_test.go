package math

import (
	"math"
	"testing"
)

func approxVec3(a, b Vec3) bool {
	const eps = 0.0001
	return math.Abs(float64(a.X-b.X)) < eps &&
		math.Abs(float64(a.Y-b.Y)) < eps &&
		math.Abs(float64(a.Z-b.Z)) < eps
}

// quarterTurnZ rotates +X onto +Y.
func quarterTurnZ() Quat {
	s := float32(math.Sin(math.Pi / 4))
	return Quat{Z: s, W: s}
}

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}

	if got := (Quat{}).Normalize(); got != QuatIdentity() {
		t.Errorf("zero quaternion should normalize to identity, got %+v", got)
	}
}

func TestQuatRotate(t *testing.T) {
	got := quarterTurnZ().Rotate(Vec3{1, 0, 0})
	if !approxVec3(got, Vec3{0, 1, 0}) {
		t.Errorf("Rotate(+X) = %v, want +Y", got)
	}
}

func TestQuatConjugateUndoesRotation(t *testing.T) {
	q := quarterTurnZ()
	v := Vec3{1, 2, 3}
	got := q.Conjugate().Rotate(q.Rotate(v))
	if !approxVec3(got, v) {
		t.Errorf("conj(q)*q*v = %v, want %v", got, v)
	}
}

func TestQuatMulComposes(t *testing.T) {
	q := quarterTurnZ()
	half := q.Mul(q)
	got := half.Rotate(Vec3{1, 0, 0})
	if !approxVec3(got, Vec3{-1, 0, 0}) {
		t.Errorf("two quarter turns of +X = %v, want -X", got)
	}
}

func TestQuatToMat4MatchesRotate(t *testing.T) {
	q := quarterTurnZ()
	v := Vec3{1, 2, 3}
	got := q.ToMat4().TransformPoint(v)
	if !approxVec3(got, q.Rotate(v)) {
		t.Errorf("ToMat4 transform = %v, want %v", got, q.Rotate(v))
	}
}
