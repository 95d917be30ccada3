package config

import (
	"os"
	"path/filepath"
)

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./dpbuilder.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "dpbuilder", "config.toml")
}

// DefaultOutputDir returns the directory packs are written to when no
// output directory is configured.
func DefaultOutputDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "DPBuilder"
	}
	return filepath.Join(home, "DPBuilder")
}
