package texture

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"skin.png", true},
		{"SKIN.PNG", true},
		{"a/b/c.Tif", true},
		{"c.tiff", true},
		{"c.jpg", true},
		{"c.JPEG", true},
		{"c.bmp", true},
		{"c.tga", false},
		{"c.dds", false},
		{"noext", false},
		{"png", false},
	}

	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestRandomColorRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		c := RandomColor(rng)
		if c.R < 128 || c.G < 128 || c.B < 128 {
			t.Fatalf("color %v has a channel below 128", c)
		}
		if c.A != 255 {
			t.Fatalf("color %v is not opaque", c)
		}
	}
}

func TestRandomColorDeterministic(t *testing.T) {
	a := RandomColor(rand.New(rand.NewSource(42)))
	b := RandomColor(rand.New(rand.NewSource(42)))
	if a != b {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func checker() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.SetRGBA(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.PNG")
	var buf bytes.Buffer
	if err := png.Encode(&buf, checker()); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 2 {
		t.Errorf("size = %v, want 4x2", img.Bounds())
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("pixel (0,0) = %v", got)
	}
}

func TestLoadBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.bmp")
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, checker()); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	img, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("pixel (1,0) = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.png")},
		{"unsupported extension", filepath.Join(dir, "a.tga")},
		{"undecodable", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.png")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if !Exists(file) {
		t.Error("expected file to exist")
	}
	if Exists(dir) {
		t.Error("a directory is not a texture file")
	}
	if Exists(filepath.Join(dir, "b.png")) {
		t.Error("missing file reported as existing")
	}
}

func TestImageToRGBAOffsetOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 12, 13))
	src.SetNRGBA(10, 10, color.NRGBA{G: 255, A: 255})

	dst := ImageToRGBA(src)
	if dst.Bounds() != image.Rect(0, 0, 2, 3) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("pixel (0,0) = %v", got)
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name       string
		w, h, size int
		wantW      int
		wantH      int
	}{
		{"square", 8, 8, 4, 4, 4},
		{"wide", 8, 2, 4, 4, 1},
		{"tall", 2, 8, 4, 1, 4},
		{"upscale", 2, 2, 16, 16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, tt.w, tt.h))
			got := Thumbnail(img, tt.size).Bounds()
			if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
				t.Errorf("Thumbnail size = %dx%d, want %dx%d", got.Dx(), got.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSolid(t *testing.T) {
	c := color.RGBA{R: 200, G: 150, B: 130, A: 255}
	img := Solid(c, 3)
	if img.Bounds().Dx() != 3 {
		t.Fatalf("size = %v", img.Bounds())
	}
	if got := img.RGBAAt(2, 2); got != c {
		t.Errorf("pixel = %v, want %v", got, c)
	}
}
