package model

import (
	"fmt"

	"github.com/Faultbox/castview/pkg/cast"
	"github.com/Faultbox/castview/pkg/math"
)

// meshBuilder decodes Mesh nodes against a completed material lookup.
type meshBuilder struct {
	axis      AxisTransform
	materials map[uint64]int
	opts      Options
	stats     *Stats
}

// build decodes one Mesh node.
func (b *meshBuilder) build(node *cast.Node) (Mesh, error) {
	mesh := Mesh{Name: nodeName(node)}

	hash, err := node.Long("m")
	if err != nil {
		return Mesh{}, err
	}
	idx, ok := b.materials[hash]
	if !ok {
		return Mesh{}, node.Err("m", fmt.Errorf("%w: 0x%016X", ErrUnresolvedMaterial, hash))
	}
	mesh.Material = idx
	mesh.MaterialHash = hash

	if !node.Has("vp") {
		return Mesh{}, node.Err("vp", cast.ErrMissingProperty)
	}
	if mesh.Positions, err = node.Vec3s("vp"); err != nil {
		return Mesh{}, err
	}
	b.axis.ApplyAll(mesh.Positions)
	vertexCount := len(mesh.Positions)

	if !node.Has("f") {
		return Mesh{}, node.Err("f", cast.ErrMissingProperty)
	}
	faces, err := node.Uints("f")
	if err != nil {
		return Mesh{}, err
	}
	if mesh.Indices, err = triangulate(faces, vertexCount, b.opts.ReverseWinding); err != nil {
		return Mesh{}, node.Err("f", err)
	}

	if node.Has("vn") {
		if mesh.Normals, err = node.Vec3s("vn"); err != nil {
			return Mesh{}, err
		}
		if len(mesh.Normals) != vertexCount {
			return Mesh{}, node.Err("vn", fmt.Errorf("%w: %d normals for %d vertices",
				ErrMalformedMesh, len(mesh.Normals), vertexCount))
		}
		b.axis.ApplyAll(mesh.Normals)
	} else {
		mesh.Normals = SmoothNormals(mesh.Positions, mesh.Indices)
	}

	if node.Has("u0") {
		if mesh.UVs, err = node.Vec2s("u0"); err != nil {
			return Mesh{}, err
		}
		if len(mesh.UVs) != vertexCount {
			return Mesh{}, node.Err("u0", fmt.Errorf("%w: %d uvs for %d vertices",
				ErrMalformedMesh, len(mesh.UVs), vertexCount))
		}
	}

	if mesh.Weights, err = readWeights(node, vertexCount); err != nil {
		return Mesh{}, err
	}

	mesh.Bounds = ComputeBounds(mesh.Positions)

	b.stats.Vertices += vertexCount
	b.stats.Faces += len(faces) / 3
	return mesh, nil
}

// triangulate groups a flat face stream into triangles of three entries.
func triangulate(faces []uint32, vertexCount int, reverse bool) ([]uint32, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: face stream length %d is not a multiple of 3",
			ErrMalformedMesh, len(faces))
	}
	for i, f := range faces {
		if int(f) >= vertexCount {
			return nil, fmt.Errorf("%w: face entry %d references vertex %d of %d",
				ErrMalformedMesh, i, f, vertexCount)
		}
	}

	indices := make([]uint32, len(faces))
	for i := 0; i < len(faces); i += 3 {
		a, b, c := faces[i], faces[i+1], faces[i+2]
		if reverse {
			a, c = c, a
		}
		indices[i], indices[i+1], indices[i+2] = a, b, c
	}
	return indices, nil
}

// readWeights decodes "wb" bone indices and "wv" weights, "mi" per vertex.
func readWeights(node *cast.Node, vertexCount int) (*Weights, error) {
	if !node.Has("wb") && !node.Has("wv") {
		return nil, nil
	}

	influences := 1
	if node.Has("mi") {
		mi, err := node.Int("mi")
		if err != nil {
			return nil, err
		}
		influences = int(mi)
	}
	if influences <= 0 {
		return nil, node.Err("mi", fmt.Errorf("%w: max influence %d", ErrMalformedMesh, influences))
	}

	bones, err := node.Uints("wb")
	if err != nil {
		return nil, err
	}
	values, err := node.Floats("wv")
	if err != nil {
		return nil, err
	}
	want := vertexCount * influences
	if len(bones) != want || len(values) != want {
		return nil, node.Err("wb", fmt.Errorf("%w: %d bone ids and %d weights, want %d",
			ErrMalformedMesh, len(bones), len(values), want))
	}
	return &Weights{Influences: influences, Bones: bones, Values: values}, nil
}

// SmoothNormals computes per-vertex normals by summing the face normals of
// every triangle a vertex belongs to. Area weighting falls out of the
// unnormalized cross product.
func SmoothNormals(positions []math.Vec3, indices []uint32) []math.Vec3 {
	normals := make([]math.Vec3, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		e1 := positions[b].Sub(positions[a])
		e2 := positions[c].Sub(positions[a])
		n := e1.Cross(e2)
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	return normals
}

// ComputeBounds returns the bounding box of positions. Empty input yields a zero box.
func ComputeBounds(positions []math.Vec3) Bounds {
	if len(positions) == 0 {
		return Bounds{}
	}
	bounds := Bounds{Min: positions[0], Max: positions[0]}
	for _, p := range positions[1:] {
		bounds.Min = bounds.Min.Min(p)
		bounds.Max = bounds.Max.Max(p)
	}
	return bounds
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Union returns the smallest box containing both boxes.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}
