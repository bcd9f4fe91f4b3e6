package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/castview/internal/logger"
	"github.com/Faultbox/castview/internal/model"
	"github.com/Faultbox/castview/pkg/math"
)

// maxJointInfluences is the number of joints a glTF vertex can carry in JOINTS_0.
const maxJointInfluences = 4

// BuildDocument converts a model into a glTF document. Texture URIs are
// written relative to outDir.
func BuildDocument(m *model.Model, outDir string) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = "castview"
	scene := doc.Scenes[0]
	scene.Name = m.Name

	skin := writeSkeleton(doc, m)
	materials := writeMaterials(doc, m, outDir)

	for i := range m.Meshes {
		mesh := &m.Meshes[i]
		attrs := map[string]int{
			gltf.POSITION: modeler.WritePosition(doc, vec3Array(mesh.Positions)),
			gltf.NORMAL:   modeler.WriteNormal(doc, vec3Array(mesh.Normals)),
		}
		if mesh.UVs != nil {
			attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(doc, vec2Array(mesh.UVs))
		}

		node := &gltf.Node{
			Name:     meshName(mesh, i),
			Rotation: [4]float64{0, 0, 0, 1},
			Scale:    [3]float64{1, 1, 1},
		}
		if skin != nil && mesh.Weights != nil {
			joints, weights, ok := jointInfluences(mesh.Weights, len(m.Bones))
			if ok {
				attrs[gltf.JOINTS_0] = modeler.WriteJoints(doc, joints)
				attrs[gltf.WEIGHTS_0] = modeler.WriteWeights(doc, weights)
				node.Skin = skin
			}
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{
			Name: node.Name,
			Primitives: []*gltf.Primitive{{
				Attributes: attrs,
				Indices:    gltf.Index(modeler.WriteIndices(doc, mesh.Indices)),
				Material:   gltf.Index(materials[mesh.Material]),
				Mode:       gltf.PrimitiveTriangles,
			}},
		})
		node.Mesh = gltf.Index(len(doc.Meshes) - 1)
		doc.Nodes = append(doc.Nodes, node)
		scene.Nodes = append(scene.Nodes, len(doc.Nodes)-1)
	}
	return doc
}

// WriteGLTF writes the model as .gltf with a sibling .bin buffer, or as a
// single .glb when binary is set.
func WriteGLTF(m *model.Model, path string, binary bool) error {
	outDir := filepath.Dir(path)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	doc := BuildDocument(m, outDir)
	var err error
	if binary {
		err = gltf.SaveBinary(doc, path)
	} else {
		if len(doc.Buffers) > 0 {
			doc.Buffers[0].URI = stem(path) + ".bin"
		}
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return fmt.Errorf("writing gltf %s: %w", path, err)
	}

	logger.Info("exported model",
		zap.String("path", path),
		zap.Bool("binary", binary),
		zap.Int("meshes", len(doc.Meshes)),
		zap.Int("nodes", len(doc.Nodes)))
	return nil
}

// writeSkeleton adds one node per bone and a skin over them. Bone rest poses
// are expressed as translations in the model's output axis.
func writeSkeleton(doc *gltf.Document, m *model.Model) *int {
	if len(m.Bones) == 0 {
		return nil
	}

	first := len(doc.Nodes)
	joints := make([]int, len(m.Bones))
	inverseBind := make([][4][4]float32, len(m.Bones))
	for i := range m.Bones {
		bone := &m.Bones[i]
		world := m.Axis.Apply(bone.WorldPosition)
		local := world
		if !bone.IsRoot() {
			local = world.Sub(m.Axis.Apply(m.Bones[bone.Parent].WorldPosition))
		}

		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        bone.Name,
			Translation: vec3f64(local),
			Rotation:    [4]float64{0, 0, 0, 1},
			Scale:       [3]float64{1, 1, 1},
		})
		joints[i] = first + i
		inverseBind[i] = mat4Columns(math.InverseRigid(world, math.QuatIdentity()))
	}

	for i := range m.Bones {
		bone := &m.Bones[i]
		if bone.IsRoot() {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, first+i)
			continue
		}
		parent := doc.Nodes[first+bone.Parent]
		parent.Children = append(parent.Children, first+i)
	}

	doc.Skins = append(doc.Skins, &gltf.Skin{
		Name:                m.Name,
		Joints:              joints,
		InverseBindMatrices: gltf.Index(modeler.WriteAccessor(doc, gltf.TargetNone, inverseBind)),
	})
	return gltf.Index(len(doc.Skins) - 1)
}

// writeMaterials adds one glTF material per model material and returns their
// indices in model order. Textures are shared by path.
func writeMaterials(doc *gltf.Document, m *model.Model, outDir string) []int {
	indices := make([]int, len(m.Materials))
	textures := make(map[string]int)

	for i := range m.Materials {
		mat := &m.Materials[i]
		pbr := &gltf.PBRMetallicRoughness{
			MetallicFactor: gltf.Float(0),
		}

		if mat.Render.Textured() {
			tex, ok := textures[mat.Render.TexturePath]
			if !ok {
				if len(doc.Samplers) == 0 {
					doc.Samplers = append(doc.Samplers, &gltf.Sampler{
						WrapS: gltf.WrapRepeat,
						WrapT: gltf.WrapRepeat,
					})
				}
				doc.Images = append(doc.Images, &gltf.Image{
					Name: filepath.Base(mat.Render.TexturePath),
					URI:  relativeURI(outDir, mat.Render.TexturePath),
				})
				doc.Textures = append(doc.Textures, &gltf.Texture{
					Sampler: gltf.Index(0),
					Source:  gltf.Index(len(doc.Images) - 1),
				})
				tex = len(doc.Textures) - 1
				textures[mat.Render.TexturePath] = tex
			}
			pbr.BaseColorTexture = &gltf.TextureInfo{Index: tex}
		} else {
			c := mat.Render.Color
			pbr.BaseColorFactor = &[4]float64{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
				1,
			}
		}

		doc.Materials = append(doc.Materials, &gltf.Material{
			Name:                 mat.Name,
			AlphaMode:            gltf.AlphaOpaque,
			PBRMetallicRoughness: pbr,
		})
		indices[i] = len(doc.Materials) - 1
	}
	return indices
}

// jointInfluences packs per-vertex weights into four joints per vertex,
// keeping the first four influences and renormalizing them.
func jointInfluences(w *model.Weights, boneCount int) ([][4]uint16, [][4]float32, bool) {
	if w.Influences <= 0 || boneCount > 1<<16 {
		return nil, nil, false
	}
	vertices := len(w.Bones) / w.Influences
	joints := make([][4]uint16, vertices)
	weights := make([][4]float32, vertices)

	for v := 0; v < vertices; v++ {
		var sum float32
		for k := 0; k < w.Influences && k < maxJointInfluences; k++ {
			bone := w.Bones[v*w.Influences+k]
			if int(bone) >= boneCount {
				return nil, nil, false
			}
			joints[v][k] = uint16(bone)
			weights[v][k] = w.Values[v*w.Influences+k]
			sum += weights[v][k]
		}
		if sum <= 0 {
			weights[v] = [4]float32{1, 0, 0, 0}
			continue
		}
		for k := range weights[v] {
			weights[v][k] /= sum
		}
	}
	return joints, weights, true
}

func vec3Array(vs []math.Vec3) [][3]float32 {
	out := make([][3]float32, len(vs))
	for i, v := range vs {
		out[i] = v.Array()
	}
	return out
}

func vec2Array(vs []math.Vec2) [][2]float32 {
	out := make([][2]float32, len(vs))
	for i, v := range vs {
		out[i] = v.Array()
	}
	return out
}

func vec3f64(v math.Vec3) [3]float64 {
	return [3]float64{float64(v.X), float64(v.Y), float64(v.Z)}
}

// mat4Columns splits a column-major matrix into glTF accessor columns.
func mat4Columns(m math.Mat4) [4][4]float32 {
	var out [4][4]float32
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			out[c][r] = m[c*4+r]
		}
	}
	return out
}

func relativeURI(outDir, path string) string {
	if rel, err := filepath.Rel(outDir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}

func meshName(mesh *model.Mesh, index int) string {
	if mesh.Name != "" {
		return mesh.Name
	}
	return fmt.Sprintf("mesh_%d", index)
}

func stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
