// Package app wires the capture, perception and session layers into the
// frame loop and fans its updates out to the store, the WebSocket hub
// and the tray.
package app

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/perception"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing defaults.
const (
	// DefaultIdleFPS is the frame rate when no motion is detected.
	DefaultIdleFPS = 2
	// DefaultActiveFPS is the frame rate during active tracking.
	DefaultActiveFPS = 15
	// IdleTimeoutMs is how long after the last motion the pipeline
	// drops back to idle.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	Session      session.Config
	CameraID     int
	ActiveFPS    int
	IdleFPS      int
	MotionThresh float64
	Perception   perception.Config
}

// App owns the frame loop. The session it drives is single-writer, so
// every access to it, whether from the loop or from an API handler,
// goes through the app's lock.
type App struct {
	config  Config
	camera  capture.Camera
	motion  *capture.MotionDetector
	engine  perception.Engine
	session *session.Session

	enabled   bool
	mu        sync.RWMutex
	stopCh    chan struct{}
	wg        sync.WaitGroup
	sessionID string

	// last recorded label per tracker slot, for change-only event logs
	lastGesture map[string]string
	lastPose    map[string]string

	onUpdate func(session.Update)
	onLabel  func(label string)
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.ActiveFPS <= 0 {
		config.ActiveFPS = DefaultActiveFPS
	}
	if config.IdleFPS <= 0 {
		config.IdleFPS = DefaultIdleFPS
	}
	if config.MotionThresh <= 0 {
		config.MotionThresh = 0.5
	}

	a := &App{
		config:      config,
		camera:      capture.NewCamera(config.CameraID),
		motion:      capture.NewMotionDetector(config.MotionThresh),
		session:     session.New(config.Session),
		lastGesture: make(map[string]string),
		lastPose:    make(map[string]string),
	}

	// Try MediaPipe first, fall back to the mock engine
	if mp, err := perception.NewMediaPipeEngine(config.Perception); err == nil {
		a.engine = mp
		log.Println("Using MediaPipe landmark engine")
	} else {
		log.Printf("MediaPipe not available (%v), using mock engine", err)
		a.engine = perception.NewMockEngine()
	}

	return a
}

// SetEnabled enables or disables frame processing.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether frame processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetEngine sets the landmark engine implementation to use.
func (a *App) SetEngine(e perception.Engine) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.engine = e
}

// SetCamera sets the camera implementation to use. Must be called
// before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// OnUpdate registers the callback invoked with every processed frame's
// update. Must be set before Start.
func (a *App) OnUpdate(fn func(session.Update)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onUpdate = fn
}

// OnLabel registers the callback invoked when a hand's gesture label
// changes. Must be set before Start.
func (a *App) OnLabel(fn func(label string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onLabel = fn
}

// Start begins the frame loop. The session starts from a clean state
// every time; nothing carries over from a previous run.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(a.config.IdleFPS)

	a.session.Reset()
	a.motion.Reset()
	a.lastGesture = make(map[string]string)
	a.lastPose = make(map[string]string)

	a.sessionID = uuid.NewString()
	if a.config.Store != nil {
		if err := a.config.Store.Sessions().Create(&store.Session{ID: a.sessionID}); err != nil {
			log.Printf("Failed to record session start: %v", err)
		}
	}

	a.stopCh = make(chan struct{})
	a.wg.Add(1)
	go a.runPipeline(a.stopCh)

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the frame loop and releases resources. The loop is fully
// stopped before the camera and engine are closed, so no late tick can
// touch a released device.
func (a *App) Stop() {
	a.mu.Lock()
	if a.stopCh == nil {
		a.mu.Unlock()
		return
	}
	close(a.stopCh)
	a.stopCh = nil
	a.mu.Unlock()

	a.wg.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.config.Store != nil {
		err := a.config.Store.Sessions().Finish(a.sessionID,
			a.session.Frames(),
			len(a.session.Recorder().Strokes()),
			a.session.Anchors().Len())
		if err != nil {
			log.Printf("Failed to record session end: %v", err)
		}
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}
	a.motion.Close()
	if a.engine != nil {
		if err := a.engine.Close(); err != nil {
			log.Printf("Error closing engine: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// MotionDetector returns the motion detector instance.
func (a *App) MotionDetector() *capture.MotionDetector {
	return a.motion
}

// Engine returns the landmark engine.
func (a *App) Engine() perception.Engine {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.engine
}

// SessionID returns the ID of the current (or last) tracking session.
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}
