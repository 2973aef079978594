// Package config loads application settings from a YAML file, filling
// in defaults for anything the file omits.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all tunable application settings.
type Config struct {
	// Camera is the OpenCV device ID to capture from.
	Camera int `yaml:"camera"`

	// ListenAddr is the HTTP server bind address.
	ListenAddr string `yaml:"listenAddr"`

	// DBPath is the SQLite database location. Empty means
	// ~/.mudra/mudra.db.
	DBPath string `yaml:"dbPath"`

	// ActiveFPS is the capture rate while motion is present.
	ActiveFPS int `yaml:"activeFPS"`

	// IdleFPS is the capture rate while the scene is still.
	IdleFPS int `yaml:"idleFPS"`

	// MotionThreshold is the percentage of changed pixels that counts
	// as motion.
	MotionThreshold float64 `yaml:"motionThreshold"`

	// CanvasWidth and CanvasHeight set the stroke coordinate space.
	CanvasWidth  int `yaml:"canvasWidth"`
	CanvasHeight int `yaml:"canvasHeight"`

	// PinchThreshold is the normalized thumb-to-index distance below
	// which a pinch is recognized.
	PinchThreshold float64 `yaml:"pinchThreshold"`

	// PoseVisibility is the minimum landmark visibility for pose rules.
	PoseVisibility float64 `yaml:"poseVisibility"`

	// MaxHands and MaxBodies cap how many of each the detector reports.
	MaxHands  int `yaml:"maxHands"`
	MaxBodies int `yaml:"maxBodies"`

	// MinConfidence is the detector's detection confidence floor.
	MinConfidence float64 `yaml:"minConfidence"`
}

// Default returns a Config with all fields set to their defaults.
func Default() Config {
	return Config{
		Camera:          0,
		ListenAddr:      ":8080",
		ActiveFPS:       15,
		IdleFPS:         2,
		MotionThreshold: 0.5,
		CanvasWidth:     640,
		CanvasHeight:    480,
		PinchThreshold:  0.05,
		PoseVisibility:  0.5,
		MaxHands:        2,
		MaxBodies:       1,
		MinConfidence:   0.5,
	}
}

// Load reads the YAML file at path over the defaults. A missing file is
// not an error; the defaults are returned as-is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the loaded values are usable.
func (c Config) Validate() error {
	if c.Camera < 0 {
		return fmt.Errorf("invalid camera ID: %d", c.Camera)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.ActiveFPS <= 0 {
		return fmt.Errorf("invalid active FPS: %d", c.ActiveFPS)
	}
	if c.IdleFPS <= 0 || c.IdleFPS > c.ActiveFPS {
		return fmt.Errorf("idle FPS must be in 1..%d, got %d", c.ActiveFPS, c.IdleFPS)
	}
	if c.MotionThreshold < 0 || c.MotionThreshold > 100 {
		return fmt.Errorf("motion threshold must be in 0..100, got %g", c.MotionThreshold)
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("invalid canvas size: %dx%d", c.CanvasWidth, c.CanvasHeight)
	}
	if c.PinchThreshold <= 0 || c.PinchThreshold >= 1 {
		return fmt.Errorf("pinch threshold must be in (0, 1), got %g", c.PinchThreshold)
	}
	if c.PoseVisibility < 0 || c.PoseVisibility > 1 {
		return fmt.Errorf("pose visibility must be in 0..1, got %g", c.PoseVisibility)
	}
	if c.MaxHands <= 0 {
		return fmt.Errorf("invalid max hands: %d", c.MaxHands)
	}
	if c.MaxBodies <= 0 {
		return fmt.Errorf("invalid max bodies: %d", c.MaxBodies)
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be in 0..1, got %g", c.MinConfidence)
	}
	return nil
}

// ResolveDBPath returns the configured database path, or the default
// under the user's home directory, creating the parent directory.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		if err := os.MkdirAll(filepath.Dir(c.DBPath), 0755); err != nil {
			return "", fmt.Errorf("failed to create data directory: %w", err)
		}
		return c.DBPath, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dbDir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return filepath.Join(dbDir, "mudra.db"), nil
}
