package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
camera: 2
listenAddr: ":9090"
activeFPS: 30
canvasWidth: 1280
canvasHeight: 720
pinchThreshold: 0.08
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Camera != 2 {
		t.Errorf("Camera: got %d, want 2", cfg.Camera)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr: got %q, want :9090", cfg.ListenAddr)
	}
	if cfg.ActiveFPS != 30 {
		t.Errorf("ActiveFPS: got %d, want 30", cfg.ActiveFPS)
	}
	if cfg.CanvasWidth != 1280 || cfg.CanvasHeight != 720 {
		t.Errorf("canvas: got %dx%d, want 1280x720", cfg.CanvasWidth, cfg.CanvasHeight)
	}
	if cfg.PinchThreshold != 0.08 {
		t.Errorf("PinchThreshold: got %g, want 0.08", cfg.PinchThreshold)
	}

	// Untouched fields keep their defaults
	if cfg.IdleFPS != Default().IdleFPS {
		t.Errorf("IdleFPS should keep default %d, got %d", Default().IdleFPS, cfg.IdleFPS)
	}
	if cfg.MaxHands != Default().MaxHands {
		t.Errorf("MaxHands should keep default %d, got %d", Default().MaxHands, cfg.MaxHands)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "camera: [not a number\n")

	if _, err := Load(path); err == nil {
		t.Error("malformed YAML should be an error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"negative camera", func(c *Config) { c.Camera = -1 }, false},
		{"empty listen addr", func(c *Config) { c.ListenAddr = "" }, false},
		{"zero active fps", func(c *Config) { c.ActiveFPS = 0 }, false},
		{"idle above active", func(c *Config) { c.IdleFPS = 60 }, false},
		{"zero canvas", func(c *Config) { c.CanvasWidth = 0 }, false},
		{"pinch threshold too large", func(c *Config) { c.PinchThreshold = 1.5 }, false},
		{"zero pinch threshold", func(c *Config) { c.PinchThreshold = 0 }, false},
		{"visibility out of range", func(c *Config) { c.PoseVisibility = 2 }, false},
		{"zero max hands", func(c *Config) { c.MaxHands = 0 }, false},
		{"confidence out of range", func(c *Config) { c.MinConfidence = -0.1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := writeConfig(t, "activeFPS: -5\n")

	if _, err := Load(path); err == nil {
		t.Error("invalid config values should fail Load")
	}
}

func TestResolveDBPath_Explicit(t *testing.T) {
	want := filepath.Join(t.TempDir(), "data", "custom.db")
	cfg := Default()
	cfg.DBPath = want

	got, err := cfg.ResolveDBPath()
	if err != nil {
		t.Fatalf("failed to resolve db path: %v", err)
	}
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Parent directory should have been created
	if _, err := os.Stat(filepath.Dir(want)); err != nil {
		t.Errorf("parent directory should exist: %v", err)
	}
}
