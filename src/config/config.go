// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"emberlife/src/universe"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Grid       GridConfig           `yaml:"grid"`
	Viewport   ViewportConfig       `yaml:"viewport"`
	Simulation SimulationConfig     `yaml:"simulation"`
	Noise      universe.NoiseParams `yaml:"noise"`
	Census     CensusConfig         `yaml:"census"`
	Templates  []universe.Template  `yaml:"templates"`
}

// GridConfig holds the simulated grid dimensions.
type GridConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ViewportConfig holds the rendered window onto the grid.
// Negative X or Y centers the viewport on that axis.
type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
}

// SimulationConfig holds pacing and termination settings.
type SimulationConfig struct {
	FPS             int  `yaml:"fps"`
	MaxSteps        int  `yaml:"max_steps"`
	MaxSkippedTicks int  `yaml:"max_skipped_ticks"`
	StopWhenStable  bool `yaml:"stop_when_stable"`
}

// CensusConfig controls the per-generation CSV output.
type CensusConfig struct {
	Path string `yaml:"path"`
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid size must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		errs = append(errs, fmt.Errorf("viewport size must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height))
	}
	if c.Simulation.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %d", c.Simulation.FPS))
	}
	if c.Simulation.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("max_steps must not be negative, got %d", c.Simulation.MaxSteps))
	}
	if c.Simulation.MaxSkippedTicks < 0 {
		errs = append(errs, fmt.Errorf("max_skipped_ticks must not be negative, got %d", c.Simulation.MaxSkippedTicks))
	}
	if c.Noise.Horizontal <= 0 || c.Noise.Vertical <= 0 {
		errs = append(errs, fmt.Errorf("noise frequencies must be positive, got %vx%v", c.Noise.Horizontal, c.Noise.Vertical))
	}
	for i, t := range c.Templates {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("template #%d has no name", i))
		}
	}
	return errors.Join(errs...)
}

// Interval is the pause between two generations.
func (c *Config) Interval() time.Duration {
	if c.Simulation.FPS <= 0 {
		return universe.DefSimulationInterval
	}
	return time.Second / time.Duration(c.Simulation.FPS)
}

// Options converts the configuration into universe options.
func (c *Config) Options() universe.Options {
	return universe.Options{
		Width:           c.Grid.Width,
		Height:          c.Grid.Height,
		Interval:        c.Interval(),
		MaxSteps:        c.Simulation.MaxSteps,
		MaxSkippedTicks: c.Simulation.MaxSkippedTicks,
		StopWhenStable:  c.Simulation.StopWhenStable,
		Noise:           c.Noise,
	}
}

// InitialViewport returns the configured viewport fitted to the grid.
func (c *Config) InitialViewport() universe.Viewport {
	vp := universe.CenteredViewport(c.Grid.Width, c.Grid.Height, c.Viewport.Width, c.Viewport.Height)
	if c.Viewport.X >= 0 {
		vp = vp.Pan(c.Viewport.X-vp.X, 0, c.Grid.Width, c.Grid.Height)
	}
	if c.Viewport.Y >= 0 {
		vp = vp.Pan(0, c.Viewport.Y-vp.Y, c.Grid.Width, c.Grid.Height)
	}
	return vp
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
