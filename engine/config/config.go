package config

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/erebus-go/engine/shading"
	"github.com/pelletier/go-toml/v2"
)

// WindowConfig configures the host window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RendererConfig selects the pass variants and clear colour. Variant
// selection lives in host configuration; the passes themselves never
// branch on it.
type RendererConfig struct {
	GeometryVariant string     `toml:"geometry_variant"`
	LightingVariant string     `toml:"lighting_variant"`
	ClearColour     [4]float64 `toml:"clear_colour"`
}

// SceneConfig configures frame flattening.
type SceneConfig struct {
	Workers int `toml:"workers"`
}

// Config is the host-side configuration for a deferred rendering session.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Scene    SceneConfig    `toml:"scene"`
}

// Default returns the configuration used when no file is supplied: an
// 800x600 window, standard geometry, plain lighting.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "erebus",
			Width:  800,
			Height: 600,
		},
		Renderer: RendererConfig{
			GeometryVariant: shading.GeometryStandard.String(),
			LightingVariant: shading.LightingPlain.String(),
			ClearColour:     [4]float64{0.1, 0.1, 0.1, 1.0},
		},
		Scene: SceneConfig{},
	}
}

// Load reads a TOML configuration file. Fields absent from the file keep
// their defaults.
//
// Parameters:
//   - path: the configuration file path
//
// Returns:
//   - Config: the merged configuration
//   - error: an error if the file cannot be read, parsed, or validated
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for contract violations.
//
// Returns:
//   - error: the first violation found, or nil
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := shading.ParseGeometryVariant(c.Renderer.GeometryVariant); err != nil {
		return err
	}
	if _, err := shading.ParseLightingVariant(c.Renderer.LightingVariant); err != nil {
		return err
	}
	return nil
}

// GeometryVariant returns the parsed geometry variant. Call Validate (or
// Load, which validates) first.
//
// Returns:
//   - shading.GeometryVariant: the variant
func (c Config) GeometryVariant() shading.GeometryVariant {
	v, _ := shading.ParseGeometryVariant(c.Renderer.GeometryVariant)
	return v
}

// LightingVariant returns the parsed lighting variant.
//
// Returns:
//   - shading.LightingVariant: the variant
func (c Config) LightingVariant() shading.LightingVariant {
	v, _ := shading.ParseLightingVariant(c.Renderer.LightingVariant)
	return v
}
