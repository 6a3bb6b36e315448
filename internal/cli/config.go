package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// Config File
// =============================================================================

// configFileName is the config file name inside the config directory.
const configFileName = "config.toml"

// Config holds user defaults loaded from ~/.config/layercake/config.toml.
// Every value maps to a command flag; explicitly set flags always win.
type Config struct {
	Render RenderConfig `toml:"render"`
	Serve  ServeConfig  `toml:"serve"`
}

// RenderConfig supplies defaults for the render command.
type RenderConfig struct {
	// Formats is a comma-separated list of output formats (e.g. "png,svg").
	Formats string `toml:"formats"`
	// Output is the default output directory.
	Output string `toml:"output"`
	// Frames is the default frame count for animated formats.
	Frames int `toml:"frames"`
	// FPS is the default animation frame rate.
	FPS int `toml:"fps"`
	// Quality is the default JPEG quality (1-100).
	Quality int `toml:"quality"`
	// Scale is the default canvas scale ratio.
	Scale float64 `toml:"scale"`
}

// ServeConfig supplies defaults for the serve command.
type ServeConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `toml:"addr"`
	// Store selects the scene store backend: memory, fs, sqlite, or mongo.
	Store string `toml:"store"`
	// StorePath is the directory (fs) or database file (sqlite) path.
	StorePath string `toml:"store_path"`
	// MongoURI is the connection string for the mongo backend.
	MongoURI string `toml:"mongo_uri"`
	// MongoDatabase is the database name for the mongo backend.
	MongoDatabase string `toml:"mongo_database"`
	// Cache is the artifact cache backend: file, memory, none, or a
	// redis:// URL.
	Cache string `toml:"cache"`
}

// LoadConfig reads the config file if present. A missing file is not an
// error and yields the zero config; a malformed file is reported so the
// caller can warn and continue with defaults.
func LoadConfig() (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, nil
	}
	return loadConfigFile(filepath.Join(dir, configFileName))
}

func loadConfigFile(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}
