package cast

import (
	"errors"
	"testing"

	"github.com/Faultbox/castview/pkg/math"
)

func TestValue_AsUint(t *testing.T) {
	tests := []struct {
		name    string
		value   Value
		want    uint32
		wantErr bool
	}{
		{"byte", ByteValue(7), 7, false},
		{"short", ShortValue(65000), 65000, false},
		{"int", IntValue(1 << 20), 1 << 20, false},
		{"long rejected", LongValue(1), 0, true},
		{"float rejected", FloatValue(1), 0, true},
		{"string rejected", StringValue("1"), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.AsUint()
			if (err != nil) != tt.wantErr {
				t.Fatalf("AsUint() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("AsUint() error = %v, want ErrTypeMismatch", err)
			}
			if got != tt.want {
				t.Errorf("AsUint() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValue_AsInt(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  int32
	}{
		{"root sentinel", IntValue(0xFFFFFFFF), -1},
		{"positive int", IntValue(12), 12},
		{"byte", ByteValue(3), 3},
		{"short", ShortValue(300), 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.AsInt()
			if err != nil {
				t.Fatalf("AsInt() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AsInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValue_AsLong(t *testing.T) {
	for _, v := range []Value{ByteValue(1), ShortValue(1), IntValue(1), LongValue(1)} {
		got, err := v.AsLong()
		if err != nil || got != 1 {
			t.Errorf("%s.AsLong() = %d, %v; want 1, nil", v.Kind(), got, err)
		}
	}
	if _, err := Vector3Value(math.Vec3{}).AsLong(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("3v.AsLong() error = %v, want ErrTypeMismatch", err)
	}
}

func TestValue_ExactKinds(t *testing.T) {
	if s, err := StringValue("bone").AsString(); err != nil || s != "bone" {
		t.Errorf("AsString() = %q, %v", s, err)
	}
	if f, err := FloatValue(1.5).AsFloat(); err != nil || f != 1.5 {
		t.Errorf("AsFloat() = %v, %v", f, err)
	}
	if d, err := DoubleValue(2.25).AsDouble(); err != nil || d != 2.25 {
		t.Errorf("AsDouble() = %v, %v", d, err)
	}
	if v, err := Vector2Value(math.Vec2{X: 1, Y: 2}).AsVec2(); err != nil || v != (math.Vec2{X: 1, Y: 2}) {
		t.Errorf("AsVec2() = %v, %v", v, err)
	}
	if v, err := Vector3Value(math.Vec3{X: 1, Y: 2, Z: 3}).AsVec3(); err != nil || v != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("AsVec3() = %v, %v", v, err)
	}
	if q, err := Vector4Value(math.Vec4{W: 1}).AsQuat(); err != nil || q != math.QuatIdentity() {
		t.Errorf("AsQuat() = %v, %v", q, err)
	}

	// A 3D vector must never be reinterpreted as a 2D one, or the reverse.
	if _, err := Vector3Value(math.Vec3{}).AsVec2(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("3v.AsVec2() error = %v, want ErrTypeMismatch", err)
	}
	if _, err := Vector2Value(math.Vec2{}).AsVec3(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("2v.AsVec3() error = %v, want ErrTypeMismatch", err)
	}
	if _, err := FloatValue(0).AsDouble(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("f.AsDouble() error = %v, want ErrTypeMismatch", err)
	}
}

func TestKindFromCode(t *testing.T) {
	for i, code := range kindCodes {
		kind, err := KindFromCode(code)
		if err != nil {
			t.Fatalf("KindFromCode(%q) error = %v", code, err)
		}
		if kind != Kind(i) || kind.Code() != code {
			t.Errorf("KindFromCode(%q) = %v", code, kind)
		}
	}
	if _, err := KindFromCode("q"); !errors.Is(err, ErrUnknownPropertyType) {
		t.Errorf("KindFromCode(q) error = %v, want ErrUnknownPropertyType", err)
	}
}
