package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Import.UpAxis != "Y" {
		t.Errorf("expected up axis Y, got %s", cfg.Import.UpAxis)
	}
	if !cfg.Import.LoadTextures {
		t.Error("expected load_textures to be true by default")
	}
	if !cfg.Import.ReverseWinding {
		t.Error("expected reverse_winding to be true by default")
	}
	if cfg.Import.Folder != "" {
		t.Errorf("expected empty folder, got %s", cfg.Import.Folder)
	}

	if cfg.Export.SwatchSize != 64 {
		t.Errorf("expected swatch size 64, got %d", cfg.Export.SwatchSize)
	}
	if cfg.Export.Binary {
		t.Error("expected binary export to be false by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "castview.yaml")

	yamlContent := `
import:
  folder: "/data/textures"
  up_axis: "Z"
  load_textures: false
  reverse_winding: false
  seed: 42

export:
  output_dir: "out"
  binary: true
  swatch_size: 128

logging:
  level: "debug"
  log_file: "castview.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Import.Folder != "/data/textures" {
		t.Errorf("expected folder /data/textures, got %s", cfg.Import.Folder)
	}
	if cfg.Import.UpAxis != "Z" {
		t.Errorf("expected up axis Z, got %s", cfg.Import.UpAxis)
	}
	if cfg.Import.LoadTextures {
		t.Error("expected load_textures to be false")
	}
	if cfg.Import.ReverseWinding {
		t.Error("expected reverse_winding to be false")
	}
	if cfg.Import.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Import.Seed)
	}
	if !cfg.Export.Binary || cfg.Export.SwatchSize != 128 || cfg.Export.OutputDir != "out" {
		t.Errorf("unexpected export config: %+v", cfg.Export)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "castview.log" {
		t.Errorf("expected log file 'castview.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFilePartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "castview.yaml")

	if err := os.WriteFile(configPath, []byte("import:\n  up_axis: Z\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Unset keys keep their defaults
	if !cfg.Import.LoadTextures {
		t.Error("expected load_textures default to survive a partial file")
	}
	if cfg.Export.SwatchSize != 64 {
		t.Errorf("expected swatch size default 64, got %d", cfg.Export.SwatchSize)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
import:
  seed: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/castview.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestApplyOverrides(t *testing.T) {
	tests := []struct {
		name      string
		overrides Overrides
		verify    func(t *testing.T, cfg *Config)
	}{
		{
			name:      "debug",
			overrides: Overrides{Debug: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name:      "up axis is upper-cased",
			overrides: Overrides{UpAxis: "z"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Import.UpAxis != "Z" {
					t.Errorf("expected up axis Z, got %s", cfg.Import.UpAxis)
				}
			},
		},
		{
			name:      "no textures",
			overrides: Overrides{NoTextures: true},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Import.LoadTextures {
					t.Error("expected load_textures to be false")
				}
			},
		},
		{
			name:      "folder and log file",
			overrides: Overrides{Folder: "/tex", LogFile: "x.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Import.Folder != "/tex" || cfg.Logging.LogFile != "x.log" {
					t.Errorf("unexpected config: %+v %+v", cfg.Import, cfg.Logging)
				}
			},
		},
		{
			name:      "zero overrides keep defaults",
			overrides: Overrides{},
			verify: func(t *testing.T, cfg *Config) {
				if *cfg != *Default() {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			applyOverrides(cfg, tt.overrides)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "castview.yaml")

	yamlContent := `
import:
  up_axis: "Z"
  folder: "/from/file"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(Overrides{ConfigPath: configPath, Folder: "/from/flag"})
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Folder comes from the override, up axis from the file
	if cfg.Import.Folder != "/from/flag" {
		t.Errorf("expected folder from override, got %s", cfg.Import.Folder)
	}
	if cfg.Import.UpAxis != "Z" {
		t.Errorf("expected up axis Z from file, got %s", cfg.Import.UpAxis)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "castview.yaml")

	cfg := Default()
	cfg.Import.UpAxis = "Z"
	cfg.Export.SwatchSize = 32
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("reloaded config = %+v, want %+v", loaded, cfg)
	}
}
