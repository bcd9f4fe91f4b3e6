// Package sample builds a small Cast scene used by the sample command and tests.
package sample

import (
	"github.com/Faultbox/castview/pkg/cast"
	"github.com/Faultbox/castview/pkg/math"
)

// Hashes used by the sample scene.
const (
	ModelHash    uint64 = 0x1000
	MaterialHash uint64 = 0x2000
	FileHash     uint64 = 0x3000
	MeshHash     uint64 = 0x4000
)

// Quad returns a Z-up model with two bones, one material and a single
// mesh of four vertices and two triangles. The diffuse texture points at
// texturePath; pass "" for a material without textures.
func Quad(texturePath string) *cast.File {
	root := cast.NewNode(cast.NodeRoot, 0)
	model := cast.NewNode(cast.NodeModel, ModelHash).
		Set("n", cast.StringValue("quad"))
	root.Add(model)

	skeleton := cast.NewNode(cast.NodeSkeleton, 0).Add(
		cast.NewNode(cast.NodeBone, 0).Set("n", cast.StringValue("root")).
			Set("p", cast.IntValue(0xFFFFFFFF)).
			Set("wp", cast.Vector3Value(math.Vec3{})),
		cast.NewNode(cast.NodeBone, 0).Set("n", cast.StringValue("tip")).
			Set("p", cast.IntValue(0)).
			Set("wp", cast.Vector3Value(math.Vec3{Z: 1})),
	)
	model.Add(skeleton)

	material := cast.NewNode(cast.NodeMaterial, MaterialHash).
		Set("n", cast.StringValue("skin"))
	if texturePath != "" {
		material.Set("diffuse", cast.LongValue(FileHash)).Add(
			cast.NewNode(cast.NodeFile, FileHash).Set("p", cast.StringValue(texturePath)),
		)
	}
	model.Add(material)

	model.Add(cast.NewNode(cast.NodeMesh, MeshHash).
		Set("n", cast.StringValue("plane")).
		Set("m", cast.LongValue(MaterialHash)).
		Set("vp",
			cast.Vector3Value(math.Vec3{X: 0, Y: 0, Z: 0}),
			cast.Vector3Value(math.Vec3{X: 1, Y: 0, Z: 0}),
			cast.Vector3Value(math.Vec3{X: 1, Y: 1, Z: 0}),
			cast.Vector3Value(math.Vec3{X: 0, Y: 1, Z: 0}),
		).
		Set("vn",
			cast.Vector3Value(math.Vec3{Z: 1}),
			cast.Vector3Value(math.Vec3{Z: 1}),
			cast.Vector3Value(math.Vec3{Z: 1}),
			cast.Vector3Value(math.Vec3{Z: 1}),
		).
		Set("u0",
			cast.Vector2Value(math.Vec2{X: 0, Y: 0}),
			cast.Vector2Value(math.Vec2{X: 1, Y: 0}),
			cast.Vector2Value(math.Vec2{X: 1, Y: 1}),
			cast.Vector2Value(math.Vec2{X: 0, Y: 1}),
		).
		Set("f",
			cast.ByteValue(0), cast.ByteValue(1), cast.ByteValue(2),
			cast.ByteValue(0), cast.ByteValue(2), cast.ByteValue(3),
		).
		Set("mi", cast.ByteValue(1)).
		Set("wb", cast.ByteValue(0), cast.ByteValue(0), cast.ByteValue(1), cast.ByteValue(1)).
		Set("wv", cast.FloatValue(1), cast.FloatValue(1), cast.FloatValue(1), cast.FloatValue(1)),
	)

	return &cast.File{Version: 1, Roots: []*cast.Node{root}}
}

// Write encodes the quad scene to path.
func Write(path, texturePath string) error {
	return cast.WriteFile(path, Quad(texturePath))
}
