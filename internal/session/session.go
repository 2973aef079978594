// Package session owns all per-session frame state and runs the
// classification core once per distinct source frame.
//
// The previous frame timestamp, the pinch flag and the accumulated
// strokes all live on the Session, so sessions can be restarted and
// multiple sessions can coexist in tests without hidden statics.
package session

import (
	"github.com/ayusman/mudra/internal/anchor"
	"github.com/ayusman/mudra/internal/geom"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/landmark"
	"github.com/ayusman/mudra/internal/perception"
	"github.com/ayusman/mudra/internal/pose"
	"github.com/ayusman/mudra/internal/sketch"
	"github.com/ayusman/mudra/internal/track"
)

// Config holds session tuning.
type Config struct {
	Gesture gesture.Config
	Pose    pose.Config

	// CanvasWidth/Height map normalized pinch midpoints into the pixel
	// space strokes are recorded in.
	CanvasWidth  float64
	CanvasHeight float64

	TrackerMaxMissed   int
	TrackerMaxDistance float64
}

// DefaultConfig returns the stock session tuning.
func DefaultConfig() Config {
	return Config{
		Gesture:      gesture.DefaultConfig(),
		Pose:         pose.DefaultConfig(),
		CanvasWidth:  640,
		CanvasHeight: 480,
	}
}

// HandState is one classified hand in an update.
type HandState struct {
	Slot       string              `json:"slot"`
	Handedness landmark.Handedness `json:"handedness"`
	Gesture    gesture.Label       `json:"gesture"`
}

// BodyState is one classified person in an update.
type BodyState struct {
	Slot string     `json:"slot"`
	Pose pose.Label `json:"pose"`
}

// Update is what one processed frame produced.
type Update struct {
	TimestampMs int64 `json:"timestamp_ms"`

	// Duplicate is set when the source timestamp matched the previous
	// frame: the labels are replayed and nothing was re-classified.
	Duplicate bool `json:"duplicate,omitempty"`

	Hands  []HandState `json:"hands"`
	Bodies []BodyState `json:"bodies"`

	// Committed is the stroke finished this frame, if any.
	Committed *sketch.Stroke `json:"committed,omitempty"`

	ReticleVisible bool `json:"reticle_visible"`
}

// Session is the frame-driven core. It has exactly one writer, the
// frame loop calling Step, so it does no locking; Trigger and the
// accessors are meant to be called from that same loop's thread of
// control.
type Session struct {
	config Config

	gestures *gesture.Classifier
	poses    *pose.Classifier
	recorder *sketch.Recorder
	reticle  *anchor.Reticle
	anchors  *anchor.Registry

	handTracker *track.Tracker
	bodyTracker *track.Tracker

	lastTimestamp int64
	lastUpdate    Update
	frames        int
}

// New creates a Session with fresh per-frame state.
func New(config Config) *Session {
	if config.CanvasWidth <= 0 {
		config.CanvasWidth = DefaultConfig().CanvasWidth
	}
	if config.CanvasHeight <= 0 {
		config.CanvasHeight = DefaultConfig().CanvasHeight
	}
	return &Session{
		config:        config,
		gestures:      gesture.NewClassifier(config.Gesture),
		poses:         pose.NewClassifier(config.Pose),
		recorder:      sketch.NewRecorder(),
		reticle:       anchor.NewReticle(),
		anchors:       anchor.NewRegistry(),
		handTracker:   track.New(config.TrackerMaxMissed, config.TrackerMaxDistance),
		bodyTracker:   track.New(config.TrackerMaxMissed, config.TrackerMaxDistance),
		lastTimestamp: -1,
	}
}

// Step processes one engine result. The render loop may outpace the
// source: when the result carries the same timestamp as the previous
// call, the classifiers do not run again, no discrete event can fire
// twice, and the previous labels are replayed marked Duplicate.
func (s *Session) Step(result perception.Result) Update {
	if s.lastTimestamp >= 0 && result.TimestampMs == s.lastTimestamp {
		replay := s.lastUpdate
		replay.Committed = nil
		replay.Duplicate = true
		return replay
	}

	update := Update{TimestampMs: result.TimestampMs}

	update.Hands = s.stepHands(result.Hands, &update)
	update.Bodies = s.stepBodies(result.Bodies)

	s.reticle.Step(result.Hits)
	update.ReticleVisible = s.reticle.Visible()

	s.lastTimestamp = result.TimestampMs
	s.lastUpdate = update
	s.frames++
	return update
}

func (s *Session) stepHands(hands []landmark.Hand, update *Update) []HandState {
	centroids := make([]landmark.Point, len(hands))
	for i := range hands {
		centroids[i] = hands[i].Centroid()
	}
	slots := s.handTracker.Assign(centroids)

	states := make([]HandState, len(hands))
	pinching := false
	var pen sketch.Point
	for i := range hands {
		h := &hands[i]
		label := s.gestures.Classify(h)
		states[i] = HandState{
			Slot:       slots[i].ID,
			Handedness: h.Handedness,
			Gesture:    label,
		}

		// One active stroke system-wide: the first pinching hand in
		// iteration order drives the pen.
		if label == gesture.Pinch && !pinching {
			pinching = true
			mid := geom.Midpoint(h.Points[landmark.ThumbTip], h.Points[landmark.IndexTip])
			pen = sketch.Point{
				X: mid.X * s.config.CanvasWidth,
				Y: mid.Y * s.config.CanvasHeight,
			}
		}
	}

	// With no hand in frame the recorder holds its state rather than
	// reading a stale pinch flag as a release.
	if len(hands) > 0 {
		update.Committed = s.recorder.Step(pinching, pen)
	}

	return states
}

func (s *Session) stepBodies(bodies []landmark.Body) []BodyState {
	centroids := make([]landmark.Point, len(bodies))
	for i := range bodies {
		centroids[i] = bodies[i].Centroid()
	}
	slots := s.bodyTracker.Assign(centroids)

	states := make([]BodyState, len(bodies))
	for i := range bodies {
		states[i] = BodyState{
			Slot: slots[i].ID,
			Pose: s.poses.Classify(&bodies[i]),
		}
	}
	return states
}

// Trigger handles one discrete select signal: a visible reticle places
// an anchor into the registry, a hidden one makes this a no-op.
func (s *Session) Trigger() (*anchor.Anchor, bool) {
	a, ok := s.reticle.Trigger()
	if !ok {
		return nil, false
	}
	s.anchors.Add(*a)
	return a, true
}

// Recorder exposes the stroke recorder for color selection, undo and
// rendering.
func (s *Session) Recorder() *sketch.Recorder {
	return s.recorder
}

// Reticle exposes the placement reticle for type/color selection and
// rendering.
func (s *Session) Reticle() *anchor.Reticle {
	return s.reticle
}

// Anchors exposes the placed-anchor registry.
func (s *Session) Anchors() *anchor.Registry {
	return s.anchors
}

// Frames returns how many distinct source frames have been processed.
func (s *Session) Frames() int {
	return s.frames
}

// Reset clears all per-frame state so the session can be reused after a
// stop: dedup timestamp, strokes, tracker slots, reticle. Placed anchors
// belong to the session and are cleared too.
func (s *Session) Reset() {
	s.lastTimestamp = -1
	s.lastUpdate = Update{}
	s.frames = 0
	s.recorder.Reset()
	s.reticle.Reset()
	s.anchors.Clear()
	s.handTracker.Reset()
	s.bodyTracker.Reset()
}
