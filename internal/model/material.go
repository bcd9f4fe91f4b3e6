package model

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/castview/internal/logger"
	"github.com/Faultbox/castview/internal/texture"
	"github.com/Faultbox/castview/pkg/cast"
)

var opaqueWhite = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// materialResolver turns Material nodes into resolved materials.
type materialResolver struct {
	opts     Options
	rng      *rand.Rand
	textures map[string]*image.RGBA
}

func newMaterialResolver(opts Options) *materialResolver {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &materialResolver{
		opts:     opts,
		rng:      rand.New(rand.NewSource(seed)),
		textures: make(map[string]*image.RGBA),
	}
}

// resolve reads every Material child of the model in order and returns the
// materials together with the complete hash to index lookup.
func (r *materialResolver) resolve(modelNode *cast.Node) ([]Material, map[uint64]int, error) {
	nodes := modelNode.ChildrenOfType(cast.NodeMaterial)
	materials := make([]Material, 0, len(nodes))
	index := make(map[uint64]int, len(nodes))

	for _, node := range nodes {
		if prev, ok := index[node.Hash]; ok {
			return nil, nil, fmt.Errorf("%w: 0x%016X (materials %d and %d)",
				ErrDuplicateMaterial, node.Hash, prev, len(materials))
		}

		mat, err := r.readMaterial(node)
		if err != nil {
			return nil, nil, err
		}
		mat.Render = r.render(&mat)

		index[node.Hash] = len(materials)
		materials = append(materials, mat)
	}
	return materials, index, nil
}

func (r *materialResolver) readMaterial(node *cast.Node) (Material, error) {
	mat := Material{Name: nodeName(node), Hash: node.Hash}

	diffuse, err := texturePath(node, "diffuse", "albedo")
	if err != nil {
		return Material{}, err
	}
	if !hasAnySlot(node) {
		// Single texture-path child form.
		if file := node.FirstChildOfType(cast.NodeFile); file != nil {
			diffuse, _ = file.String("p")
		}
	}
	mat.DiffusePath = diffuse

	if mat.NormalPath, err = texturePath(node, "normal"); err != nil {
		return Material{}, err
	}
	if mat.SpecularPath, err = texturePath(node, "specular"); err != nil {
		return Material{}, err
	}
	return mat, nil
}

// slotTags are the properties that reference File children by hash.
var slotTags = []string{"diffuse", "albedo", "normal", "specular"}

func hasAnySlot(node *cast.Node) bool {
	for _, tag := range slotTags {
		if node.Has(tag) {
			return true
		}
	}
	return false
}

// texturePath follows the first slot tag present to its File child and
// returns that child's "p" path. Missing slots or files yield "".
func texturePath(node *cast.Node, slots ...string) (string, error) {
	for _, slot := range slots {
		if !node.Has(slot) {
			continue
		}
		hash, err := node.Long(slot)
		if err != nil {
			return "", err
		}
		file := node.ChildByHash(cast.NodeFile, hash)
		if file == nil {
			return "", nil
		}
		path, _ := file.String("p")
		return path, nil
	}
	return "", nil
}

// render applies the resolution policy: a usable diffuse texture wins,
// anything else falls back to a procedural color.
func (r *materialResolver) render(mat *Material) Render {
	if mat.DiffusePath == "" || !r.opts.LoadTextures {
		return r.procedural()
	}

	path := r.localPath(mat.DiffusePath)
	if !texture.Supported(path) {
		logger.Warn("unsupported texture extension, using procedural color",
			zap.String("material", mat.Name), zap.String("path", path))
		return r.procedural()
	}
	if !texture.Exists(path) {
		logger.Warn("texture not found, using procedural color",
			zap.String("material", mat.Name), zap.String("path", path))
		return r.procedural()
	}

	img, ok := r.textures[path]
	if !ok {
		var err error
		img, err = texture.Load(path)
		if err != nil {
			logger.Warn("texture load failed, using procedural color",
				zap.String("material", mat.Name), zap.Error(err))
			return r.procedural()
		}
		r.textures[path] = img
	}
	return Render{Texture: img, TexturePath: path, Color: opaqueWhite}
}

func (r *materialResolver) procedural() Render {
	return Render{Color: texture.RandomColor(r.rng)}
}

// localPath maps a Cast texture path onto the local filesystem.
func (r *materialResolver) localPath(p string) string {
	p = filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.opts.Folder, p)
}
