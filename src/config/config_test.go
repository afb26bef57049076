package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"emberlife/src/universe"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults are invalid: %v", err)
	}
	if cfg.Grid.Width != 300 || cfg.Grid.Height != 80 {
		t.Fatalf("grid %dx%d, expected 300x80", cfg.Grid.Width, cfg.Grid.Height)
	}
	if cfg.Noise.Horizontal != universe.DefNoiseHorizontal || cfg.Noise.Vertical != universe.DefNoiseVertical {
		t.Fatalf("unexpected noise defaults %+v", cfg.Noise)
	}
	if cfg.Interval() != time.Second/30 {
		t.Fatalf("interval %v, expected 1/30s", cfg.Interval())
	}
	if vp := cfg.InitialViewport(); vp != (universe.Viewport{X: 110, Y: 20, Width: 80, Height: 39}) {
		t.Fatalf("unexpected viewport %+v", vp)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "life.yaml")
	data := `
grid:
  width: 50
viewport:
  x: 3
  y: 100
simulation:
  max_steps: 200
  stop_when_stable: true
noise:
  seed: 77
templates:
  - name: dot
    descr: single cell
    coordinates: [[1, 2]]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	o := cfg.Options()
	if o.Width != 50 || o.Height != 80 {
		t.Fatalf("grid %dx%d, expected 50x80", o.Width, o.Height)
	}
	if o.MaxSteps != 200 || !o.StopWhenStable || o.Noise.Seed != 77 || o.Noise.Vertical != 12 {
		t.Fatalf("unexpected options %+v", o)
	}
	if len(cfg.Templates) != 1 || cfg.Templates[0].Coordinates[0][1] != 2 {
		t.Fatalf("unexpected templates %+v", cfg.Templates)
	}
	//viewport is clamped to the 50 cell wide grid and pushed up to the bottom edge
	if vp := cfg.InitialViewport(); vp != (universe.Viewport{X: 0, Y: 41, Width: 50, Height: 39}) {
		t.Fatalf("unexpected viewport %+v", vp)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("missing file accepted")
	}
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("grid: [1, 2"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Fatalf("broken file err=%v", err)
	}
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Grid.Width = 0
	cfg.Simulation.FPS = -1
	cfg.Noise.Vertical = 0
	cfg.Templates = []universe.Template{{}}

	err = cfg.Validate()
	if err == nil {
		t.Fatalf("invalid config accepted")
	}
	for _, part := range []string{"grid size", "fps", "noise frequencies", "template #0"} {
		if !strings.Contains(err.Error(), part) {
			t.Fatalf("error %q does not mention %q", err, part)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Noise.Seed = 1234
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Noise.Seed != 1234 || back.Grid != cfg.Grid {
		t.Fatalf("written config differs: %+v", back)
	}
}
