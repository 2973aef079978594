// Package perception defines the capability interface to the external
// landmark engine.
//
// The engine is an opaque producer: the core never probes its shape or
// retries it. Availability is explicit: constructing an engine either
// succeeds or fails once, and a session surfaces that to its caller as a
// terminal setup failure.
package perception

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/anchor"
	"github.com/ayusman/mudra/internal/landmark"
)

// Result is everything the engine produced for one source frame.
//
// TimestampMs identifies the source frame and is monotonic and
// comparable for equality; the session uses it to run classifiers at
// most once per distinct frame. Zero detections is a normal result, not
// an error.
type Result struct {
	TimestampMs int64              `json:"timestamp_ms"`
	Hands       []landmark.Hand    `json:"hands"`
	Bodies      []landmark.Body    `json:"bodies"`
	Hits        []anchor.HitResult `json:"hits"`
}

// Engine produces landmark results for video frames.
type Engine interface {
	// Detect analyzes a frame. Empty slices mean nothing was detected
	// this frame.
	Detect(frame *gocv.Mat) (Result, error)

	// Close releases any resources held by the engine.
	Close() error
}

// Config holds engine configuration options.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int

	// MaxBodies is the maximum number of people to detect (default: 1).
	MaxBodies int

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:      2,
		MaxBodies:     1,
		MinConfidence: 0.5,
	}
}
