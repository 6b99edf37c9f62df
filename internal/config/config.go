// Package config loads the harness configuration file: terrain synthesis
// parameters and pool parameters under one YAML document.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"territories/internal/harness"
	"territories/internal/terrain"
)

// Config is the root of the YAML document.
type Config struct {
	Terrain terrain.Config     `yaml:"terrain"`
	Pool    harness.PoolConfig `yaml:"pool"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Terrain: terrain.DefaultConfig(),
		Pool:    harness.DefaultPoolConfig(),
	}
}

// Load reads the YAML file at path over the defaults. An empty path yields
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Normalize reconciles fields that must agree: the pool's world dimensions
// follow the terrain grid unless set explicitly.
func (c *Config) Normalize() {
	if c.Pool.Width == 0 {
		c.Pool.Width = c.Terrain.Cols
	}
	if c.Pool.Height == 0 {
		c.Pool.Height = c.Terrain.Rows
	}
	if c.Pool.RenderMode == "" {
		c.Pool.RenderMode = "normal"
	}
}

// Validate reports the first configuration error, if any.
func (c Config) Validate() error {
	if err := c.Terrain.Validate(); err != nil {
		return err
	}
	return c.Pool.Validate()
}
