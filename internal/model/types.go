// Package model assembles renderer-ready models from decoded Cast scene trees.
package model

import (
	"image"
	"image/color"

	"github.com/Faultbox/castview/pkg/cast"
	"github.com/Faultbox/castview/pkg/math"
)

// Options controls how a Cast tree is turned into a Model.
type Options struct {
	// Folder is the base directory for relative texture paths.
	Folder string
	// UpAxis selects the output basis ("Y" or "Z").
	UpAxis string
	// LoadTextures enables texture file resolution.
	LoadTextures bool
	// ReverseWinding emits each triangle as (c, b, a).
	ReverseWinding bool
	// Seed seeds procedural material colors. Zero seeds from the clock.
	Seed int64
}

// DefaultOptions returns Y-up options with textures enabled.
func DefaultOptions() Options {
	return Options{
		UpAxis:         "Y",
		LoadTextures:   true,
		ReverseWinding: true,
	}
}

// Bone is one joint of the skeleton.
type Bone struct {
	Name   string
	Index  int
	Parent int // -1 for root bones

	WorldPosition math.Vec3
	WorldRotation math.Quat
	LocalPosition math.Vec3
	LocalRotation math.Quat
	Scale         math.Vec3
}

// IsRoot reports whether the bone has no parent.
func (b *Bone) IsRoot() bool {
	return b.Parent < 0
}

// Render is the resolved renderer material: a texture or a flat color.
type Render struct {
	Texture     *image.RGBA // nil for procedural materials
	TexturePath string      // resolved on-disk path of Texture
	Color       color.RGBA
}

// Textured reports whether the material is texture-backed.
// Textured materials are tiled and fully opaque.
func (r Render) Textured() bool {
	return r.Texture != nil
}

// Material is a surface definition referenced by meshes through its hash.
type Material struct {
	Name         string
	Hash         uint64
	DiffusePath  string
	NormalPath   string
	SpecularPath string
	Render       Render
}

// Weights holds per-vertex skin influences, Influences entries per vertex.
type Weights struct {
	Influences int
	Bones      []uint32
	Values     []float32
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Mesh is an indexed triangle mesh bound to one material.
type Mesh struct {
	Name         string
	Positions    []math.Vec3
	Normals      []math.Vec3
	UVs          []math.Vec2 // nil when the source has no UV layer
	Indices      []uint32
	Material     int
	MaterialHash uint64
	Weights      *Weights
	Bounds       Bounds
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Stats are the counters accumulated while building a Model.
type Stats struct {
	Materials int
	Vertices  int
	Faces     int
	Bones     int
}

// Model is a fully assembled Cast model.
type Model struct {
	Name      string
	Hash      uint64
	Axis      AxisTransform
	Bones     []Bone
	Materials []Material
	Meshes    []Mesh
	Stats     Stats

	materialIndex map[uint64]int
}

// MaterialByHash returns the index of the material with the given hash.
func (m *Model) MaterialByHash(hash uint64) (int, bool) {
	idx, ok := m.materialIndex[hash]
	return idx, ok
}

// MeshMaterial returns the material bound to mesh.
func (m *Model) MeshMaterial(mesh *Mesh) *Material {
	return &m.Materials[mesh.Material]
}

// Stage is a step of the model build.
type Stage int

// Build stages, in order.
const (
	StageStart Stage = iota
	StageSkeletonLoaded
	StageMaterialsLoaded
	StageMeshesLoaded
	StageDone
)

var stageNames = [...]string{"start", "skeleton-loaded", "materials-loaded", "meshes-loaded", "done"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return "unknown"
}

// nodeName returns the optional "n" property of a node.
func nodeName(n *cast.Node) string {
	name, err := n.String("n")
	if err != nil {
		return ""
	}
	return name
}
