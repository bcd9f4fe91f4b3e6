package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/castview/internal/config"
	"github.com/Faultbox/castview/internal/sample"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	return newApp().Run(append([]string{"castview"}, args...))
}

func TestImportOptions(t *testing.T) {
	c := config.Default()
	c.Import.Folder = "/tex"
	c.Import.UpAxis = "Z"
	c.Import.LoadTextures = false
	c.Import.Seed = 9

	opts := importOptions(c)
	if opts.Folder != "/tex" || opts.UpAxis != "Z" || opts.LoadTextures || !opts.ReverseWinding || opts.Seed != 9 {
		t.Errorf("importOptions = %+v", opts)
	}
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	root := sample.Quad("").Roots[0]
	printTree(&buf, root, 0)

	out := buf.String()
	for _, want := range []string{"Root", "  Model", "    Skeleton", "      Bone", "    Mesh", "vp:3v[4]", "f:b[6]"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	castFile := filepath.Join(dir, "quad.cast")
	outDir := filepath.Join(dir, "out")

	steps := []struct {
		name  string
		args  []string
		check string
	}{
		{"sample", []string{"sample", castFile}, castFile},
		{"info", []string{"--no-textures", "info", "--meshes", castFile}, ""},
		{"tree", []string{"tree", castFile}, ""},
		{"list", []string{"list", "--search", "qu", dir}, ""},
		{"export text", []string{"--up-axis", "z", "export", "--out", filepath.Join(outDir, "quad.gltf"), castFile}, filepath.Join(outDir, "quad.gltf")},
		{"export binary", []string{"export", "--out", filepath.Join(outDir, "quad.glb"), castFile}, filepath.Join(outDir, "quad.glb")},
		{"swatches", []string{"swatches", "--out", outDir, "--size", "8", castFile}, filepath.Join(outDir, "skin.webp")},
		{"init-config", []string{"init-config", "--out", filepath.Join(dir, "castview.yaml")}, filepath.Join(dir, "castview.yaml")},
	}

	for _, tt := range steps {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(t, tt.args...); err != nil {
				t.Fatalf("%v: %v", tt.args, err)
			}
			if tt.check != "" {
				if _, err := os.Stat(tt.check); err != nil {
					t.Errorf("expected %s: %v", tt.check, err)
				}
			}
		})
	}
}

func TestCommandErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"missing argument", []string{"info"}},
		{"missing file", []string{"info", filepath.Join(dir, "missing.cast")}},
		{"unsupported up axis", []string{"--up-axis", "X", "info", filepath.Join(dir, "missing.cast")}},
		{"missing config", []string{"--config", filepath.Join(dir, "none.yaml"), "list", dir}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(t, tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}
