// Package config loads the engine defaults from a TOML file.
//
// The file lives at ~/.owareplay/config.toml; a missing file yields the
// built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// File is the on-disk layout of the configuration.
type File struct {
	Engine EngineConfig `toml:"engine"`
	Paths  PathsConfig  `toml:"paths"`
}

// EngineConfig holds the search defaults applied at startup.
type EngineConfig struct {
	HashMB     int `toml:"hash_mb"`
	MoveTimeMS int `toml:"move_time_ms"`
	Depth      int `toml:"depth"`
	Contempt   int `toml:"contempt"`
}

// PathsConfig points at the optional opening book and endgame tablebase.
type PathsConfig struct {
	Book   string `toml:"book"`
	Leaves string `toml:"leaves"`
}

// Default returns the built-in configuration.
func Default() File {
	return File{
		Engine: EngineConfig{
			HashMB:     64,
			MoveTimeMS: 3600,
			Depth:      254,
			Contempt:   0,
		},
	}
}

// Dir returns the configuration directory, ~/.owareplay.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".owareplay"), nil
}

// DefaultPath returns the configuration file path inside Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration file at path. A missing file is not an
// error; the defaults are returned instead.
func Load(path string) (File, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes the configuration file, creating the directory if needed.
func Save(path string, cfg File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(cfg)
}
