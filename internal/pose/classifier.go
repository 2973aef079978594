// Package pose classifies a single person's body landmarks into a
// discrete pose label.
package pose

import (
	"github.com/ayusman/mudra/internal/geom"
	"github.com/ayusman/mudra/internal/landmark"
)

// Label is a discrete body pose. The set is closed; Unknown is the
// fallback for anything the rules do not claim.
type Label string

const (
	ArmsUp      Label = "arms_up"
	TPose       Label = "t_pose"
	HandsOnHips Label = "hands_on_hips"
	Sitting     Label = "sitting"
	Leaning     Label = "leaning"
	Standing    Label = "standing"
	Unknown     Label = "unknown"
)

// Rule thresholds, in degrees and normalized frame-space units.
const (
	armsUpWristMargin   = 0.1
	armsUpShoulderAngle = 150
	tPoseShoulderMin    = 70
	tPoseShoulderMax    = 110
	straightElbowAngle  = 150
	tPoseWristTolerance = 0.15
	hipWristDistance    = 0.15
	bentElbowAngle      = 120
	sittingKneeAngle    = 120
	leaningTilt         = 0.3
	standingKneeAngle   = 150
	standingTilt        = 0.2
)

// Config holds the tunable thresholds for pose classification.
type Config struct {
	// Visibility is the minimum landmark confidence for shoulders and
	// hips. Below it the classifier has insufficient signal and returns
	// Unknown without evaluating any rule.
	Visibility float64
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		Visibility: geom.DefaultVisibility,
	}
}

// Classifier classifies bodies into pose labels. Stateless; each person
// in a frame is classified independently with no cross-person state.
type Classifier struct {
	config Config
}

// NewClassifier creates a Classifier with the given thresholds. A zero
// visibility threshold falls back to the default.
func NewClassifier(config Config) *Classifier {
	if config.Visibility <= 0 {
		config.Visibility = DefaultConfig().Visibility
	}
	return &Classifier{config: config}
}

// features holds the per-frame joint angles and torso geometry the rules
// read.
type features struct {
	leftShoulderAngle  float64
	rightShoulderAngle float64
	leftElbowAngle     float64
	rightElbowAngle    float64
	leftKneeAngle      float64
	rightKneeAngle     float64
	torsoTilt          float64
}

// Classify returns the pose label for one body. Total: every input maps
// to a label, with Unknown as the fallback.
func (c *Classifier) Classify(b *landmark.Body) Label {
	if b == nil {
		return Unknown
	}

	leftShoulder := b.Points[landmark.LeftShoulder]
	rightShoulder := b.Points[landmark.RightShoulder]
	leftHip := b.Points[landmark.LeftHip]
	rightHip := b.Points[landmark.RightHip]

	// Shoulders and hips anchor every rule; without them there is no
	// usable signal.
	for _, p := range []landmark.Point{leftShoulder, rightShoulder, leftHip, rightHip} {
		if !geom.Visible(p, c.config.Visibility) {
			return Unknown
		}
	}

	f := extractFeatures(b)

	leftWrist := b.Points[landmark.LeftWrist]
	rightWrist := b.Points[landmark.RightWrist]

	wristsAboveShoulders := leftShoulder.Y-leftWrist.Y > armsUpWristMargin &&
		rightShoulder.Y-rightWrist.Y > armsUpWristMargin
	shouldersRaised := f.leftShoulderAngle > armsUpShoulderAngle &&
		f.rightShoulderAngle > armsUpShoulderAngle
	if wristsAboveShoulders && shouldersRaised {
		return ArmsUp
	}

	shouldersLevel := f.leftShoulderAngle >= tPoseShoulderMin && f.leftShoulderAngle <= tPoseShoulderMax &&
		f.rightShoulderAngle >= tPoseShoulderMin && f.rightShoulderAngle <= tPoseShoulderMax
	armsStraight := f.leftElbowAngle > straightElbowAngle && f.rightElbowAngle > straightElbowAngle
	wristsLevel := abs(leftWrist.Y-leftShoulder.Y) < tPoseWristTolerance &&
		abs(rightWrist.Y-rightShoulder.Y) < tPoseWristTolerance
	if shouldersLevel && armsStraight && wristsLevel {
		return TPose
	}

	wristsOnHips := geom.Distance(leftWrist, leftHip) < hipWristDistance &&
		geom.Distance(rightWrist, rightHip) < hipWristDistance
	elbowsBent := f.leftElbowAngle < bentElbowAngle && f.rightElbowAngle < bentElbowAngle
	if wristsOnHips && elbowsBent {
		return HandsOnHips
	}

	if f.leftKneeAngle < sittingKneeAngle && f.rightKneeAngle < sittingKneeAngle {
		return Sitting
	}

	if f.torsoTilt > leaningTilt {
		return Leaning
	}

	if f.leftKneeAngle > standingKneeAngle && f.rightKneeAngle > standingKneeAngle &&
		f.torsoTilt < standingTilt {
		return Standing
	}

	return Unknown
}

func extractFeatures(b *landmark.Body) features {
	p := b.Points

	shoulderMid := geom.Midpoint(p[landmark.LeftShoulder], p[landmark.RightShoulder])
	hipMid := geom.Midpoint(p[landmark.LeftHip], p[landmark.RightHip])
	shoulderWidth := geom.Distance(p[landmark.LeftShoulder], p[landmark.RightShoulder])

	tilt := 0.0
	if shoulderWidth > 0 {
		tilt = abs(shoulderMid.X-hipMid.X) / shoulderWidth
	}

	return features{
		leftShoulderAngle:  geom.Angle(p[landmark.LeftElbow], p[landmark.LeftShoulder], p[landmark.LeftHip]),
		rightShoulderAngle: geom.Angle(p[landmark.RightElbow], p[landmark.RightShoulder], p[landmark.RightHip]),
		leftElbowAngle:     geom.Angle(p[landmark.LeftShoulder], p[landmark.LeftElbow], p[landmark.LeftWrist]),
		rightElbowAngle:    geom.Angle(p[landmark.RightShoulder], p[landmark.RightElbow], p[landmark.RightWrist]),
		leftKneeAngle:      geom.Angle(p[landmark.LeftHip], p[landmark.LeftKnee], p[landmark.LeftAnkle]),
		rightKneeAngle:     geom.Angle(p[landmark.RightHip], p[landmark.RightKnee], p[landmark.RightAnkle]),
		torsoTilt:          tilt,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
