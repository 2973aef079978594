// Package gesture classifies a single hand's landmarks into a discrete
// gesture label.
package gesture

import (
	"github.com/ayusman/mudra/internal/geom"
	"github.com/ayusman/mudra/internal/landmark"
)

// Label is a discrete hand gesture. The set is closed; Unknown is the
// fallback for anything the rules do not claim.
type Label string

const (
	Pinch    Label = "pinch"
	ThumbsUp Label = "thumbs_up"
	OpenPalm Label = "open_palm"
	Fist     Label = "fist"
	Pointing Label = "pointing"
	Peace    Label = "peace"
	Unknown  Label = "unknown"
)

// Config holds the tunable thresholds for hand classification.
type Config struct {
	// PinchThreshold is the maximum thumb-tip to index-tip distance for a
	// pinch, in normalized frame-space units (not pixels). It is scale
	// invariant only while the hand stays at a roughly fixed distance
	// from the camera; no calibration is performed.
	PinchThreshold float64
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		PinchThreshold: 0.05,
	}
}

// Classifier classifies hands into gesture labels. It is stateless and
// safe for concurrent use.
type Classifier struct {
	config Config
}

// NewClassifier creates a Classifier with the given thresholds. Zero
// thresholds fall back to the defaults.
func NewClassifier(config Config) *Classifier {
	if config.PinchThreshold <= 0 {
		config.PinchThreshold = DefaultConfig().PinchThreshold
	}
	return &Classifier{config: config}
}

// Classify returns the gesture label for one hand. It is deterministic
// and total: every input maps to a label, with Unknown as the fallback.
//
// Rules are evaluated in order, first match wins. Pinch is checked before
// the finger-extension patterns because a pinch can co-occur with them
// and must win for drawing to work.
func (c *Classifier) Classify(h *landmark.Hand) Label {
	if h == nil {
		return Unknown
	}

	if geom.Distance(h.Points[landmark.ThumbTip], h.Points[landmark.IndexTip]) < c.config.PinchThreshold {
		return Pinch
	}

	thumb := geom.ThumbExtended(
		h.Points[landmark.ThumbTip],
		h.Points[landmark.ThumbIP],
		h.Points[landmark.ThumbMCP],
		h.Handedness,
	)
	index := fingerExtended(h, landmark.IndexTip, landmark.IndexPIP, landmark.IndexMCP)
	middle := fingerExtended(h, landmark.MiddleTip, landmark.MiddlePIP, landmark.MiddleMCP)
	ring := fingerExtended(h, landmark.RingTip, landmark.RingPIP, landmark.RingMCP)
	pinky := fingerExtended(h, landmark.PinkyTip, landmark.PinkyPIP, landmark.PinkyMCP)

	fingersDown := !index && !middle && !ring && !pinky

	switch {
	case thumb && fingersDown:
		return ThumbsUp
	case thumb && index && middle && ring && pinky:
		return OpenPalm
	case !thumb && fingersDown:
		return Fist
	case index && !thumb && !middle && !ring && !pinky:
		return Pointing
	case index && middle && !thumb && !ring && !pinky:
		return Peace
	default:
		return Unknown
	}
}

func fingerExtended(h *landmark.Hand, tip, pip, mcp int) bool {
	return geom.FingerExtended(h.Points[tip], h.Points[pip], h.Points[mcp])
}
