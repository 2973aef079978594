// Package capture provides camera acquisition using GoCV (OpenCV).
package capture

import (
	"errors"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Default camera settings.
const (
	DefaultFPS    = 15
	DefaultWidth  = 640
	DefaultHeight = 480
)

// ErrCameraNotOpen is returned when reading from a camera that is not open.
var ErrCameraNotOpen = errors.New("camera is not open")

// Frame is one captured frame stamped with its acquisition time. The
// timestamp is the source-frame identity downstream dedup compares, so
// two grabs never share one. The caller owns the Mat and must Close it.
type Frame struct {
	Mat         *gocv.Mat
	TimestampMs int64
}

// Close releases the frame's pixel data.
func (f *Frame) Close() {
	if f.Mat != nil {
		f.Mat.Close()
		f.Mat = nil
	}
}

// Camera defines the interface for camera implementations.
type Camera interface {
	Open() error
	Close() error
	Grab() (Frame, error)
	SetFPS(fps int)
	FPS() int
	IsOpen() bool
}

// cameraImpl manages video capture from a device using GoCV.
type cameraImpl struct {
	deviceID int
	capture  *gocv.VideoCapture
	mu       sync.Mutex
	running  bool
	fps      int
	lastMs   int64
}

// NewCamera creates a Camera for the given device ID.
func NewCamera(deviceID int) Camera {
	return &cameraImpl{
		deviceID: deviceID,
		fps:      DefaultFPS,
	}
}

// Open opens the device. Resolution is pinned to 640x480 for detection
// performance.
func (c *cameraImpl) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	capture, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return err
	}

	capture.Set(gocv.VideoCaptureFrameWidth, DefaultWidth)
	capture.Set(gocv.VideoCaptureFrameHeight, DefaultHeight)
	capture.Set(gocv.VideoCaptureFPS, float64(c.fps))

	c.capture = capture
	c.running = true
	return nil
}

// Close releases the device.
func (c *cameraImpl) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		c.running = false
		return nil
	}

	err := c.capture.Close()
	c.capture = nil
	c.running = false
	return err
}

// Grab reads one frame and stamps it. Stamps stay strictly monotonic
// even when two grabs land in the same millisecond.
func (c *cameraImpl) Grab() (Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running || c.capture == nil {
		return Frame{}, ErrCameraNotOpen
	}

	mat := gocv.NewMat()
	if ok := c.capture.Read(&mat); !ok {
		mat.Close()
		return Frame{}, errors.New("failed to read frame from camera")
	}
	if mat.Empty() {
		mat.Close()
		return Frame{}, errors.New("captured frame is empty")
	}

	ms := time.Now().UnixMilli()
	if ms <= c.lastMs {
		ms = c.lastMs + 1
	}
	c.lastMs = ms

	return Frame{Mat: &mat, TimestampMs: ms}, nil
}

// SetFPS sets the capture frame rate. Non-positive values are ignored.
func (c *cameraImpl) SetFPS(fps int) {
	if fps <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fps = fps
	if c.capture != nil {
		c.capture.Set(gocv.VideoCaptureFPS, float64(fps))
	}
}

// FPS returns the current frame rate setting.
func (c *cameraImpl) FPS() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

// IsOpen reports whether the camera is open.
func (c *cameraImpl) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
