package cast

import (
	"fmt"

	"github.com/Faultbox/castview/pkg/math"
)

// Kind identifies the stored type of a property value.
type Kind uint8

// Value kinds, one per property type code.
const (
	KindByte    Kind = iota // "b", uint8
	KindShort               // "h", uint16
	KindInt                 // "i", uint32
	KindLong                // "l", uint64
	KindFloat               // "f", float32
	KindDouble              // "d", float64
	KindString              // "s", NUL-terminated
	KindVector2             // "2v"
	KindVector3             // "3v"
	KindVector4             // "4v"
)

var kindCodes = [...]string{"b", "h", "i", "l", "f", "d", "s", "2v", "3v", "4v"}

// Code returns the property type code used in the file.
func (k Kind) Code() string {
	if int(k) < len(kindCodes) {
		return kindCodes[k]
	}
	return "?"
}

// String returns the type code, making kinds readable in error messages.
func (k Kind) String() string {
	return k.Code()
}

// size returns the encoded size of one value, or 0 for variable length kinds.
func (k Kind) size() int {
	switch k {
	case KindByte:
		return 1
	case KindShort:
		return 2
	case KindInt, KindFloat:
		return 4
	case KindLong, KindDouble, KindVector2:
		return 8
	case KindVector3:
		return 12
	case KindVector4:
		return 16
	}
	return 0
}

// KindFromCode maps a property type code to its Kind.
func KindFromCode(code string) (Kind, error) {
	for i, c := range kindCodes {
		if c == code {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPropertyType, code)
}

// Value holds one typed property value.
type Value struct {
	kind Kind
	u    uint64
	f    float64
	s    string
	v    [4]float32
}

// ByteValue returns a "b" value.
func ByteValue(x uint8) Value { return Value{kind: KindByte, u: uint64(x)} }

// ShortValue returns an "h" value.
func ShortValue(x uint16) Value { return Value{kind: KindShort, u: uint64(x)} }

// IntValue returns an "i" value.
func IntValue(x uint32) Value { return Value{kind: KindInt, u: uint64(x)} }

// LongValue returns an "l" value.
func LongValue(x uint64) Value { return Value{kind: KindLong, u: x} }

// FloatValue returns an "f" value.
func FloatValue(x float32) Value { return Value{kind: KindFloat, f: float64(x)} }

// DoubleValue returns a "d" value.
func DoubleValue(x float64) Value { return Value{kind: KindDouble, f: x} }

// StringValue returns an "s" value.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// Vector2Value returns a "2v" value.
func Vector2Value(v math.Vec2) Value {
	return Value{kind: KindVector2, v: [4]float32{v.X, v.Y}}
}

// Vector3Value returns a "3v" value.
func Vector3Value(v math.Vec3) Value {
	return Value{kind: KindVector3, v: [4]float32{v.X, v.Y, v.Z}}
}

// Vector4Value returns a "4v" value.
func Vector4Value(v math.Vec4) Value {
	return Value{kind: KindVector4, v: [4]float32{v.X, v.Y, v.Z, v.W}}
}

// Kind returns the stored kind.
func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) mismatch(want string) error {
	return fmt.Errorf("%w: want %s, have %s", ErrTypeMismatch, want, v.kind)
}

// AsUint returns an unsigned integer stored at 8, 16 or 32 bits.
// Face indices are written at the smallest width that fits the vertex count.
func (v Value) AsUint() (uint32, error) {
	switch v.kind {
	case KindByte, KindShort, KindInt:
		return uint32(v.u), nil
	}
	return 0, v.mismatch("b|h|i")
}

// AsInt returns an integer stored at 8, 16 or 32 bits reinterpreted as signed.
// A 32-bit 0xFFFFFFFF therefore reads as -1.
func (v Value) AsInt() (int32, error) {
	switch v.kind {
	case KindByte, KindShort, KindInt:
		return int32(uint32(v.u)), nil
	}
	return 0, v.mismatch("b|h|i")
}

// AsLong returns any integer kind widened to 64 bits.
func (v Value) AsLong() (uint64, error) {
	switch v.kind {
	case KindByte, KindShort, KindInt, KindLong:
		return v.u, nil
	}
	return 0, v.mismatch("b|h|i|l")
}

// AsFloat returns an "f" value.
func (v Value) AsFloat() (float32, error) {
	if v.kind != KindFloat {
		return 0, v.mismatch("f")
	}
	return float32(v.f), nil
}

// AsDouble returns a "d" value.
func (v Value) AsDouble() (float64, error) {
	if v.kind != KindDouble {
		return 0, v.mismatch("d")
	}
	return v.f, nil
}

// AsString returns an "s" value.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch("s")
	}
	return v.s, nil
}

// AsVec2 returns a "2v" value.
func (v Value) AsVec2() (math.Vec2, error) {
	if v.kind != KindVector2 {
		return math.Vec2{}, v.mismatch("2v")
	}
	return math.Vec2{X: v.v[0], Y: v.v[1]}, nil
}

// AsVec3 returns a "3v" value.
func (v Value) AsVec3() (math.Vec3, error) {
	if v.kind != KindVector3 {
		return math.Vec3{}, v.mismatch("3v")
	}
	return math.Vec3{X: v.v[0], Y: v.v[1], Z: v.v[2]}, nil
}

// AsVec4 returns a "4v" value.
func (v Value) AsVec4() (math.Vec4, error) {
	if v.kind != KindVector4 {
		return math.Vec4{}, v.mismatch("4v")
	}
	return math.Vec4{X: v.v[0], Y: v.v[1], Z: v.v[2], W: v.v[3]}, nil
}

// AsQuat returns a "4v" value as a rotation.
func (v Value) AsQuat() (math.Quat, error) {
	vec, err := v.AsVec4()
	if err != nil {
		return math.Quat{}, err
	}
	return vec.Quat(), nil
}
