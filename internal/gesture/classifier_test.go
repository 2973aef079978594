package gesture

import (
	"testing"

	"github.com/ayusman/mudra/internal/landmark"
)

// testHand builds a right hand with each digit forced extended or curled.
// Geometry mirrors what the hand model reports for an upright hand facing
// the camera: extended fingers climb the frame, curled tips fold back
// below their PIP.
func testHand(t *testing.T, thumb, index, middle, ring, pinky bool) *landmark.Hand {
	t.Helper()

	h := &landmark.Hand{Handedness: landmark.RightHand, Score: 0.95}
	h.Points[landmark.Wrist] = landmark.Point{X: 0.5, Y: 0.8}

	digit := func(mcp, pip, tip int, x float64, extended bool) {
		h.Points[mcp] = landmark.Point{X: x, Y: 0.7}
		if extended {
			h.Points[pip] = landmark.Point{X: x, Y: 0.55}
			h.Points[tip] = landmark.Point{X: x, Y: 0.35}
		} else {
			h.Points[pip] = landmark.Point{X: x, Y: 0.66}
			h.Points[tip] = landmark.Point{X: x, Y: 0.73}
		}
	}

	digit(landmark.IndexMCP, landmark.IndexPIP, landmark.IndexTip, 0.55, index)
	digit(landmark.MiddleMCP, landmark.MiddlePIP, landmark.MiddleTip, 0.50, middle)
	digit(landmark.RingMCP, landmark.RingPIP, landmark.RingTip, 0.45, ring)
	digit(landmark.PinkyMCP, landmark.PinkyPIP, landmark.PinkyTip, 0.40, pinky)

	h.Points[landmark.ThumbCMC] = landmark.Point{X: 0.56, Y: 0.75}
	h.Points[landmark.ThumbMCP] = landmark.Point{X: 0.62, Y: 0.70}
	if thumb {
		h.Points[landmark.ThumbIP] = landmark.Point{X: 0.68, Y: 0.65}
		h.Points[landmark.ThumbTip] = landmark.Point{X: 0.74, Y: 0.60}
	} else {
		h.Points[landmark.ThumbIP] = landmark.Point{X: 0.60, Y: 0.65}
		h.Points[landmark.ThumbTip] = landmark.Point{X: 0.56, Y: 0.62}
	}

	return h
}

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	tests := []struct {
		name                              string
		thumb, index, middle, ring, pinky bool
		want                              Label
	}{
		{"thumbs up", true, false, false, false, false, ThumbsUp},
		{"open palm", true, true, true, true, true, OpenPalm},
		{"fist", false, false, false, false, false, Fist},
		{"pointing", false, true, false, false, false, Pointing},
		{"peace", false, true, true, false, false, Peace},
		{"unknown three fingers", false, true, true, true, false, Unknown},
		{"unknown thumb and index", true, true, false, false, false, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHand(t, tt.thumb, tt.index, tt.middle, tt.ring, tt.pinky)
			if got := c.Classify(h); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("nil hand returns unknown", func(t *testing.T) {
		if got := c.Classify(nil); got != Unknown {
			t.Errorf("Classify(nil) = %s, want %s", got, Unknown)
		}
	})
}

func TestClassifier_PinchPriority(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	t.Run("coincident tips beat extended fingers", func(t *testing.T) {
		h := testHand(t, true, true, true, true, true)
		h.Points[landmark.ThumbTip] = h.Points[landmark.IndexTip]

		if got := c.Classify(h); got != Pinch {
			t.Errorf("Classify() = %s, want %s", got, Pinch)
		}
	})

	t.Run("near tips within threshold", func(t *testing.T) {
		h := testHand(t, true, true, true, true, true)
		h.Points[landmark.ThumbTip] = landmark.Point{X: 0.30, Y: 0.35}
		h.Points[landmark.IndexTip] = landmark.Point{X: 0.31, Y: 0.35}

		if got := c.Classify(h); got != Pinch {
			t.Errorf("Classify() = %s, want %s", got, Pinch)
		}
	})

	t.Run("tips past threshold do not pinch", func(t *testing.T) {
		h := testHand(t, false, false, false, false, false)
		if got := c.Classify(h); got == Pinch {
			t.Error("fist distance should not classify as pinch")
		}
	})
}

func TestClassifier_Thresholds(t *testing.T) {
	t.Run("custom pinch threshold", func(t *testing.T) {
		c := NewClassifier(Config{PinchThreshold: 0.3})
		h := testHand(t, false, false, false, false, false)
		// Fist geometry leaves the tips ~0.11 apart, inside the loose threshold.
		if got := c.Classify(h); got != Pinch {
			t.Errorf("Classify() = %s, want %s with loose threshold", got, Pinch)
		}
	})

	t.Run("zero config falls back to defaults", func(t *testing.T) {
		c := NewClassifier(Config{})
		if c.config.PinchThreshold != DefaultConfig().PinchThreshold {
			t.Errorf("threshold = %f, want default", c.config.PinchThreshold)
		}
	})
}

func TestClassifier_LeftHandMirrored(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	// Mirror the right-hand thumbs up across x=0.5 and flip handedness.
	h := testHand(t, true, false, false, false, false)
	h.Handedness = landmark.LeftHand
	for i := range h.Points {
		h.Points[i].X = 1 - h.Points[i].X
	}

	if got := c.Classify(h); got != ThumbsUp {
		t.Errorf("Classify() = %s, want %s", got, ThumbsUp)
	}
}
