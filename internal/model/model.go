package model

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/castview/internal/logger"
	"github.com/Faultbox/castview/pkg/cast"
)

// LoadFile reads a Cast file and builds its model. When opts.Folder is empty
// textures are resolved relative to the file's directory.
func LoadFile(path string, opts Options) (*Model, error) {
	if opts.Folder == "" {
		opts.Folder = filepath.Dir(path)
	}
	if _, err := NewAxisTransform(opts.UpAxis); err != nil {
		return nil, err
	}

	file, err := cast.ParseFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed cast file",
		zap.String("path", path),
		zap.Uint32("version", file.Version),
		zap.Int("roots", len(file.Roots)))

	m, err := Build(file.Roots, opts)
	if err != nil {
		return nil, fmt.Errorf("building model from %s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = stem(path)
	}
	return m, nil
}

// Build assembles the first Model node under the first root. The stages run
// strictly in order and any error aborts the build without a partial result.
func Build(roots []*cast.Node, opts Options) (*Model, error) {
	axis, err := NewAxisTransform(opts.UpAxis)
	if err != nil {
		return nil, err
	}

	var modelNode *cast.Node
	if len(roots) > 0 {
		modelNode = roots[0].FirstChildOfType(cast.NodeModel)
	}
	if modelNode == nil {
		return nil, ErrNoModel
	}
	if n := len(roots[0].ChildrenOfType(cast.NodeModel)); n > 1 {
		logger.Debug("file has several models, loading the first", zap.Int("models", n))
	}

	m := &Model{
		Name: nodeName(modelNode),
		Hash: modelNode.Hash,
		Axis: axis,
	}
	stage := StageStart

	advance := func(next Stage) {
		logger.Debug("model build stage",
			zap.Stringer("from", stage),
			zap.Stringer("to", next),
			logger.Hash("model", m.Hash))
		stage = next
	}

	if m.Bones, err = buildSkeleton(modelNode); err != nil {
		return nil, err
	}
	m.Stats.Bones = len(m.Bones)
	advance(StageSkeletonLoaded)

	resolver := newMaterialResolver(opts)
	if m.Materials, m.materialIndex, err = resolver.resolve(modelNode); err != nil {
		return nil, err
	}
	m.Stats.Materials = len(m.Materials)
	advance(StageMaterialsLoaded)

	builder := &meshBuilder{
		axis:      axis,
		materials: m.materialIndex,
		opts:      opts,
		stats:     &m.Stats,
	}
	for _, node := range modelNode.ChildrenOfType(cast.NodeMesh) {
		mesh, err := builder.build(node)
		if err != nil {
			return nil, err
		}
		m.Meshes = append(m.Meshes, mesh)
	}
	advance(StageMeshesLoaded)

	advance(StageDone)
	logger.Debug("model built",
		zap.String("name", m.Name),
		zap.Int("bones", m.Stats.Bones),
		zap.Int("materials", m.Stats.Materials),
		zap.Int("meshes", len(m.Meshes)),
		zap.Int("vertices", m.Stats.Vertices),
		zap.Int("faces", m.Stats.Faces))
	return m, nil
}

// Bounds returns the union of every mesh's bounding box.
func (m *Model) Bounds() Bounds {
	if len(m.Meshes) == 0 {
		return Bounds{}
	}
	b := m.Meshes[0].Bounds
	for i := 1; i < len(m.Meshes); i++ {
		b = b.Union(m.Meshes[i].Bounds)
	}
	return b
}

func stem(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
