// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	API      APIConfig      `toml:"api"`
	Output   OutputConfig   `toml:"output"`
	Download DownloadConfig `toml:"download"`
	Log      LogConfig      `toml:"log"`
}

type APIConfig struct {
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
}

type OutputConfig struct {
	Dir string `toml:"dir"`
}

type DownloadConfig struct {
	Delay       time.Duration `toml:"delay"`
	Timeout     time.Duration `toml:"timeout"`
	LinkClasses []string      `toml:"link_classes"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Load reads and parses the configuration file. A missing file is not
// an error; the defaults are returned so the tool works without any
// config at all.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://demozoo.org/api/v1"
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = 30 * time.Second
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir()
	}
	if c.Download.Delay == 0 {
		c.Download.Delay = time.Second
	}
	if c.Download.Timeout == 0 {
		c.Download.Timeout = 15 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// substituteEnvVars replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1] // Strip ${ and }
		if value, ok := os.LookupEnv(varName); ok {
			return value
		}
		return match // Leave unchanged if not found
	})
}
