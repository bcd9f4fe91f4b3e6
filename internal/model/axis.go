package model

import (
	"fmt"
	"strings"

	"github.com/Faultbox/castview/pkg/math"
)

// AxisTransform re-projects vectors onto a fixed orthonormal basis.
type AxisTransform struct {
	Up    string
	Basis [3]math.Vec3
}

// NewAxisTransform returns the basis for the given up axis.
// "Z" keeps the source orientation; "Y" swaps the Y and Z rows.
func NewAxisTransform(upAxis string) (AxisTransform, error) {
	switch strings.ToUpper(upAxis) {
	case "Z":
		return AxisTransform{Up: "Z", Basis: [3]math.Vec3{
			{X: 1}, {Y: 1}, {Z: 1},
		}}, nil
	case "Y":
		return AxisTransform{Up: "Y", Basis: [3]math.Vec3{
			{X: 1}, {Z: 1}, {Y: 1},
		}}, nil
	default:
		return AxisTransform{}, fmt.Errorf("%w: %q", ErrUnsupportedUpAxis, upAxis)
	}
}

// Apply projects v onto each basis row.
func (a AxisTransform) Apply(v math.Vec3) math.Vec3 {
	return math.Vec3{
		X: v.Dot(a.Basis[0]),
		Y: v.Dot(a.Basis[1]),
		Z: v.Dot(a.Basis[2]),
	}
}

// ApplyAll transforms vs in place.
func (a AxisTransform) ApplyAll(vs []math.Vec3) {
	for i := range vs {
		vs[i] = a.Apply(vs[i])
	}
}
