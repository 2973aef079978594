package capture

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera plays back a fixed frame sequence for testing. Each grab
// advances a synthetic timestamp so dedup behavior can be exercised
// without a device.
type MockCamera struct {
	frames  []*gocv.Mat
	index   int
	loop    bool
	mu      sync.Mutex
	running bool
	fps     int
	nextMs  int64
	stepMs  int64
}

// NewMockCamera creates a MockCamera over the given frames. With loop
// set, playback wraps around instead of running dry.
func NewMockCamera(frames []*gocv.Mat, loop bool) *MockCamera {
	return &MockCamera{
		frames: frames,
		loop:   loop,
		fps:    DefaultFPS,
		stepMs: 1000 / DefaultFPS,
	}
}

// Open starts playback from the first frame.
func (c *MockCamera) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.index = 0
	return nil
}

// Close stops playback.
func (c *MockCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
	return nil
}

// Grab returns a clone of the next frame with a synthetic timestamp.
func (c *MockCamera) Grab() (Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return Frame{}, ErrCameraNotOpen
	}
	if len(c.frames) == 0 {
		return Frame{}, fmt.Errorf("no frames available")
	}

	if c.index >= len(c.frames) {
		if !c.loop {
			return Frame{}, fmt.Errorf("no more frames")
		}
		c.index = 0
	}

	// Clone so the caller can close its copy freely.
	mat := c.frames[c.index].Clone()
	c.index++

	c.nextMs += c.stepMs
	return Frame{Mat: &mat, TimestampMs: c.nextMs}, nil
}

// SetFPS adjusts the synthetic timestamp step.
func (c *MockCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fps = fps
	c.stepMs = int64(1000 / fps)
}

// FPS returns the configured frame rate.
func (c *MockCamera) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

// IsOpen reports whether playback is active.
func (c *MockCamera) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Reset restarts playback from the beginning.
func (c *MockCamera) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = 0
}
