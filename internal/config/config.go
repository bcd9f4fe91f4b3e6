// Package config handles castview configuration loading and management.
package config

// Config holds all castview settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ImportConfig controls how Cast files are turned into models.
type ImportConfig struct {
	Folder         string `yaml:"folder"`          // Base directory for texture paths; empty means the Cast file's directory
	UpAxis         string `yaml:"up_axis"`         // "Y" or "Z"
	LoadTextures   bool   `yaml:"load_textures"`   // Resolve diffuse textures from disk
	ReverseWinding bool   `yaml:"reverse_winding"` // Emit faces as (c, b, a)
	Seed           int64  `yaml:"seed"`            // Procedural color seed; 0 seeds from the clock
}

// ExportConfig holds exporter settings.
type ExportConfig struct {
	OutputDir  string `yaml:"output_dir"`
	Binary     bool   `yaml:"binary"`      // Write .glb instead of .gltf
	SwatchSize int    `yaml:"swatch_size"` // Edge length of material swatches in pixels
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			Folder:         "",
			UpAxis:         "Y",
			LoadTextures:   true,
			ReverseWinding: true,
			Seed:           0,
		},
		Export: ExportConfig{
			OutputDir:  ".",
			Binary:     false,
			SwatchSize: 64,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
