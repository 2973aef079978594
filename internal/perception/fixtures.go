package perception

import (
	"github.com/ayusman/mudra/internal/anchor"
	"github.com/ayusman/mudra/internal/landmark"
)

// Preset landmark builders for tests and the mock engine. Geometry
// mirrors what the detectors report for an upright subject facing the
// camera: y grows downward, extended fingers climb the frame.

// handBase returns a right hand with the wrist planted and all four
// fingers curled, ready for individual digits to be posed.
func handBase() landmark.Hand {
	h := landmark.Hand{Handedness: landmark.RightHand, Score: 0.95}
	h.Points[landmark.Wrist] = landmark.Point{X: 0.5, Y: 0.8}

	curl := func(mcp, pip, dip, tip int, x float64) {
		h.Points[mcp] = landmark.Point{X: x, Y: 0.70}
		h.Points[pip] = landmark.Point{X: x, Y: 0.66}
		h.Points[dip] = landmark.Point{X: x - 0.02, Y: 0.70}
		h.Points[tip] = landmark.Point{X: x - 0.03, Y: 0.73}
	}
	curl(landmark.IndexMCP, landmark.IndexPIP, landmark.IndexDIP, landmark.IndexTip, 0.55)
	curl(landmark.MiddleMCP, landmark.MiddlePIP, landmark.MiddleDIP, landmark.MiddleTip, 0.50)
	curl(landmark.RingMCP, landmark.RingPIP, landmark.RingDIP, landmark.RingTip, 0.45)
	curl(landmark.PinkyMCP, landmark.PinkyPIP, landmark.PinkyDIP, landmark.PinkyTip, 0.40)

	// Thumb tucked across the palm.
	h.Points[landmark.ThumbCMC] = landmark.Point{X: 0.56, Y: 0.75}
	h.Points[landmark.ThumbMCP] = landmark.Point{X: 0.62, Y: 0.70}
	h.Points[landmark.ThumbIP] = landmark.Point{X: 0.60, Y: 0.65}
	h.Points[landmark.ThumbTip] = landmark.Point{X: 0.56, Y: 0.62}

	return h
}

func extendFinger(h *landmark.Hand, mcp, pip, dip, tip int) {
	x := h.Points[mcp].X
	h.Points[pip] = landmark.Point{X: x, Y: 0.55}
	h.Points[dip] = landmark.Point{X: x, Y: 0.45}
	h.Points[tip] = landmark.Point{X: x, Y: 0.35}
}

func extendThumb(h *landmark.Hand) {
	h.Points[landmark.ThumbIP] = landmark.Point{X: 0.68, Y: 0.65}
	h.Points[landmark.ThumbTip] = landmark.Point{X: 0.74, Y: 0.60}
}

// FistHand returns a hand with every digit curled.
func FistHand() landmark.Hand {
	return handBase()
}

// OpenPalmHand returns a hand with all five digits extended.
func OpenPalmHand() landmark.Hand {
	h := handBase()
	extendThumb(&h)
	extendFinger(&h, landmark.IndexMCP, landmark.IndexPIP, landmark.IndexDIP, landmark.IndexTip)
	extendFinger(&h, landmark.MiddleMCP, landmark.MiddlePIP, landmark.MiddleDIP, landmark.MiddleTip)
	extendFinger(&h, landmark.RingMCP, landmark.RingPIP, landmark.RingDIP, landmark.RingTip)
	extendFinger(&h, landmark.PinkyMCP, landmark.PinkyPIP, landmark.PinkyDIP, landmark.PinkyTip)
	return h
}

// ThumbsUpHand returns a hand with only the thumb extended.
func ThumbsUpHand() landmark.Hand {
	h := handBase()
	extendThumb(&h)
	return h
}

// PointingHand returns a hand with only the index finger extended.
func PointingHand() landmark.Hand {
	h := handBase()
	extendFinger(&h, landmark.IndexMCP, landmark.IndexPIP, landmark.IndexDIP, landmark.IndexTip)
	return h
}

// PinchHand returns a hand pinching at the given normalized point: thumb
// and index tips nearly touching there, other fingers extended so the
// pinch rule's priority is actually exercised.
func PinchHand(x, y float64) landmark.Hand {
	h := OpenPalmHand()
	h.Points[landmark.ThumbTip] = landmark.Point{X: x - 0.005, Y: y}
	h.Points[landmark.IndexTip] = landmark.Point{X: x + 0.005, Y: y}
	return h
}

// bodyBase returns a fully visible upright person with arms hanging and
// legs straight.
func bodyBase() landmark.Body {
	b := landmark.Body{Score: 0.95}
	set := func(i int, x, y float64) {
		b.Points[i] = landmark.Point{X: x, Y: y, Visibility: 0.95}
	}

	set(landmark.Nose, 0.5, 0.15)
	set(landmark.LeftShoulder, 0.6, 0.3)
	set(landmark.RightShoulder, 0.4, 0.3)
	set(landmark.LeftElbow, 0.62, 0.42)
	set(landmark.RightElbow, 0.38, 0.42)
	set(landmark.LeftWrist, 0.63, 0.53)
	set(landmark.RightWrist, 0.37, 0.53)
	set(landmark.LeftHip, 0.58, 0.55)
	set(landmark.RightHip, 0.42, 0.55)
	set(landmark.LeftKnee, 0.57, 0.75)
	set(landmark.RightKnee, 0.43, 0.75)
	set(landmark.LeftAnkle, 0.57, 0.95)
	set(landmark.RightAnkle, 0.43, 0.95)

	for i := range b.Points {
		if b.Points[i].Visibility == 0 {
			set(i, 0.5, 0.2)
		}
	}
	return b
}

// StandingBody returns an upright person with straight knees.
func StandingBody() landmark.Body {
	return bodyBase()
}

// ArmsUpBody returns a person with both arms raised overhead.
func ArmsUpBody() landmark.Body {
	b := bodyBase()
	set := func(i int, x, y float64) {
		b.Points[i] = landmark.Point{X: x, Y: y, Visibility: 0.95}
	}
	set(landmark.LeftElbow, 0.61, 0.18)
	set(landmark.RightElbow, 0.39, 0.18)
	set(landmark.LeftWrist, 0.62, 0.05)
	set(landmark.RightWrist, 0.38, 0.05)
	return b
}

// TPoseBody returns a person with both arms straight out horizontally.
func TPoseBody() landmark.Body {
	b := bodyBase()
	set := func(i int, x, y float64) {
		b.Points[i] = landmark.Point{X: x, Y: y, Visibility: 0.95}
	}
	set(landmark.LeftElbow, 0.75, 0.3)
	set(landmark.RightElbow, 0.25, 0.3)
	set(landmark.LeftWrist, 0.9, 0.3)
	set(landmark.RightWrist, 0.1, 0.3)
	return b
}

// GroundHit returns a hit-test result on a horizontal surface at the
// given world position.
func GroundHit(x, y, z float64) anchor.HitResult {
	return anchor.HitResult{Transform: anchor.Transform{
		Position: anchor.Vec3{X: x, Y: y, Z: z},
	}}
}
