package model

import (
	"fmt"

	"github.com/Faultbox/castview/pkg/cast"
	"github.com/Faultbox/castview/pkg/math"
)

// buildSkeleton decodes the bones of the model's first Skeleton node.
// Bone indices follow child order; parents are resolved after every bone
// has been read so forward references are accepted.
func buildSkeleton(modelNode *cast.Node) ([]Bone, error) {
	skeleton := modelNode.FirstChildOfType(cast.NodeSkeleton)
	if skeleton == nil {
		return nil, nil
	}

	boneNodes := skeleton.ChildrenOfType(cast.NodeBone)
	bones := make([]Bone, len(boneNodes))
	for i, node := range boneNodes {
		bone, err := readBone(node, i)
		if err != nil {
			return nil, err
		}
		bones[i] = bone
	}

	for i := range bones {
		p := bones[i].Parent
		if p < -1 || p >= len(bones) || p == i {
			return nil, fmt.Errorf("%w: bone %d (%s) has invalid parent %d",
				ErrMalformedSkeleton, i, bones[i].Name, p)
		}
	}

	for i := range bones {
		if !reachesRoot(bones, i) {
			return nil, fmt.Errorf("%w: bone %d (%s) is part of a parent cycle",
				ErrMalformedSkeleton, i, bones[i].Name)
		}
	}

	for i, node := range boneNodes {
		deriveLocal(bones, i, node)
	}
	return bones, nil
}

// reachesRoot walks the ancestors of bones[i] and reports whether the chain
// ends at a root within len(bones) steps.
func reachesRoot(bones []Bone, i int) bool {
	for steps := 0; steps <= len(bones); steps++ {
		if bones[i].IsRoot() {
			return true
		}
		i = bones[i].Parent
	}
	return false
}

func readBone(node *cast.Node, index int) (Bone, error) {
	bone := Bone{
		Index:         index,
		WorldRotation: math.QuatIdentity(),
		Scale:         math.Vec3{X: 1, Y: 1, Z: 1},
	}

	var err error
	if bone.Name, err = node.String("n"); err != nil {
		return Bone{}, fmt.Errorf("%w: bone %d: %w", ErrMalformedSkeleton, index, err)
	}
	parent, err := node.Int("p")
	if err != nil {
		return Bone{}, fmt.Errorf("%w: bone %d: %w", ErrMalformedSkeleton, index, err)
	}
	bone.Parent = int(parent)
	if bone.WorldPosition, err = node.Vec3("wp"); err != nil {
		return Bone{}, fmt.Errorf("%w: bone %d: %w", ErrMalformedSkeleton, index, err)
	}

	if node.Has("wr") {
		q, err := node.Quat("wr")
		if err != nil {
			return Bone{}, fmt.Errorf("%w: bone %d: %w", ErrMalformedSkeleton, index, err)
		}
		bone.WorldRotation = q.Normalize()
	}
	if node.Has("s") {
		if bone.Scale, err = node.Vec3("s"); err != nil {
			return Bone{}, fmt.Errorf("%w: bone %d: %w", ErrMalformedSkeleton, index, err)
		}
	}
	return bone, nil
}

// deriveLocal fills the local transform of bones[i], preferring the stored
// "lp"/"lr" values and otherwise computing them from the parent's world transform.
func deriveLocal(bones []Bone, i int, node *cast.Node) {
	b := &bones[i]
	b.LocalPosition = b.WorldPosition
	b.LocalRotation = b.WorldRotation
	if !b.IsRoot() {
		parent := &bones[b.Parent]
		inv := parent.WorldRotation.Conjugate()
		b.LocalPosition = inv.Rotate(b.WorldPosition.Sub(parent.WorldPosition))
		b.LocalRotation = inv.Mul(b.WorldRotation).Normalize()
	}

	if lp, err := node.Vec3("lp"); err == nil {
		b.LocalPosition = lp
	}
	if lr, err := node.Quat("lr"); err == nil {
		b.LocalRotation = lr.Normalize()
	}
}
