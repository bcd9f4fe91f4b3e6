package math

import (
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(Vec3{1, 2, 3})
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(Vec3{10, 20, 30})
	got := m.TransformPoint(Vec3{1, 2, 3})

	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformPoint: got %v, want %v", got, want)
	}
}

func TestInverseRigid(t *testing.T) {
	pos := Vec3{4, -2, 7}
	rot := quarterTurnZ()

	bind := Translate(pos).Mul(rot.ToMat4())
	inv := InverseRigid(pos, rot)

	p := Vec3{1, 2, 3}
	got := inv.TransformPoint(bind.TransformPoint(p))
	if !approxVec3(got, p) {
		t.Errorf("inverse(bind) * bind * p = %v, want %v", got, p)
	}
}
