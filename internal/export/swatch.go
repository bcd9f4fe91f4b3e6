package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"go.uber.org/zap"

	"github.com/Faultbox/castview/internal/logger"
	"github.com/Faultbox/castview/internal/model"
	"github.com/Faultbox/castview/internal/texture"
)

// WriteSwatches writes one size x size WebP preview per material into dir and
// returns the written paths in material order.
func WriteSwatches(m *model.Model, dir string, size int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("swatch size must be positive, got %d", size)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating swatch directory: %w", err)
	}

	paths := make([]string, 0, len(m.Materials))
	used := make(map[string]bool)
	for i := range m.Materials {
		mat := &m.Materials[i]
		base := swatchName(mat.Name, i)
		name := base
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[name] = true

		path := filepath.Join(dir, name+".webp")
		if err := writeWebP(path, Swatch(mat.Render, size)); err != nil {
			return paths, err
		}
		logger.Debug("wrote material swatch", zap.String("material", mat.Name), zap.String("path", path))
		paths = append(paths, path)
	}
	return paths, nil
}

// Swatch renders the preview image of a resolved material.
func Swatch(r model.Render, size int) *image.RGBA {
	if r.Textured() {
		return texture.Thumbnail(r.Texture, size)
	}
	return texture.Solid(r.Color, size)
}

func writeWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("encode webp %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// swatchName turns a material name into a safe file name.
func swatchName(name string, index int) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, name)
	clean = strings.Trim(clean, "._")
	if clean == "" {
		return fmt.Sprintf("material_%d", index)
	}
	return clean
}
