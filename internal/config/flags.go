package config

import "strings"

// Overrides carries command-line settings that take priority over the config file.
// Zero values leave the loaded configuration untouched.
type Overrides struct {
	ConfigPath string
	Debug      bool
	Folder     string
	UpAxis     string
	NoTextures bool
	LogFile    string
}

// applyOverrides applies CLI overrides to the config.
func applyOverrides(cfg *Config, o Overrides) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.Folder != "" {
		cfg.Import.Folder = o.Folder
	}
	if o.UpAxis != "" {
		cfg.Import.UpAxis = strings.ToUpper(o.UpAxis)
	}
	if o.NoTextures {
		cfg.Import.LoadTextures = false
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
}
