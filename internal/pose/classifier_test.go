package pose

import (
	"testing"

	"github.com/ayusman/mudra/internal/landmark"
)

// standingBody builds an upright person facing the camera, arms hanging,
// legs straight, all landmarks fully visible. Tests mutate limbs from
// this baseline.
func standingBody(t *testing.T) *landmark.Body {
	t.Helper()

	b := &landmark.Body{Score: 0.95}
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

	// Remaining head/hand/foot points are unused by the rules but keep
	// the set anatomically plausible.
	for i := range b.Points {
		if b.Points[i].Visibility == 0 {
			set(i, 0.5, 0.2)
		}
	}

	return b
}

func TestClassifier_Standing(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	if got := c.Classify(standingBody(t)); got != Standing {
		t.Errorf("Classify() = %s, want %s", got, Standing)
	}
}

func TestClassifier_ArmsUp(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	b := standingBody(t)

	// Raise both arms straight overhead.
	b.Points[landmark.LeftElbow] = landmark.Point{X: 0.61, Y: 0.18, Visibility: 0.95}
	b.Points[landmark.RightElbow] = landmark.Point{X: 0.39, Y: 0.18, Visibility: 0.95}
	b.Points[landmark.LeftWrist] = landmark.Point{X: 0.62, Y: 0.05, Visibility: 0.95}
	b.Points[landmark.RightWrist] = landmark.Point{X: 0.38, Y: 0.05, Visibility: 0.95}

	if got := c.Classify(b); got != ArmsUp {
		t.Errorf("Classify() = %s, want %s", got, ArmsUp)
	}
}

func TestClassifier_ArmsUpScenario(t *testing.T) {
	// Wrists at y=0.2 against shoulders at y=0.5: 0.3 above, well past
	// the 0.1 margin, with near-vertical arms giving shoulder angles
	// around 160 degrees.
	c := NewClassifier(DefaultConfig())
	b := standingBody(t)

	set := func(i int, x, y float64) {
		b.Points[i] = landmark.Point{X: x, Y: y, Visibility: 0.95}
	}
	set(landmark.LeftShoulder, 0.6, 0.5)
	set(landmark.RightShoulder, 0.4, 0.5)
	set(landmark.LeftElbow, 0.66, 0.35)
	set(landmark.RightElbow, 0.34, 0.35)
	set(landmark.LeftWrist, 0.7, 0.2)
	set(landmark.RightWrist, 0.3, 0.2)
	set(landmark.LeftHip, 0.58, 0.75)
	set(landmark.RightHip, 0.42, 0.75)
	set(landmark.LeftKnee, 0.57, 0.87)
	set(landmark.RightKnee, 0.43, 0.87)
	set(landmark.LeftAnkle, 0.57, 0.98)
	set(landmark.RightAnkle, 0.43, 0.98)

	if got := c.Classify(b); got != ArmsUp {
		t.Errorf("Classify() = %s, want %s", got, ArmsUp)
	}
}

func TestClassifier_TPose(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	b := standingBody(t)

	b.Points[landmark.LeftElbow] = landmark.Point{X: 0.75, Y: 0.3, Visibility: 0.95}
	b.Points[landmark.RightElbow] = landmark.Point{X: 0.25, Y: 0.3, Visibility: 0.95}
	b.Points[landmark.LeftWrist] = landmark.Point{X: 0.9, Y: 0.3, Visibility: 0.95}
	b.Points[landmark.RightWrist] = landmark.Point{X: 0.1, Y: 0.3, Visibility: 0.95}

	if got := c.Classify(b); got != TPose {
		t.Errorf("Classify() = %s, want %s", got, TPose)
	}
}

func TestClassifier_HandsOnHips(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	b := standingBody(t)

	b.Points[landmark.LeftElbow] = landmark.Point{X: 0.72, Y: 0.42, Visibility: 0.95}
	b.Points[landmark.RightElbow] = landmark.Point{X: 0.28, Y: 0.42, Visibility: 0.95}
	b.Points[landmark.LeftWrist] = landmark.Point{X: 0.6, Y: 0.54, Visibility: 0.95}
	b.Points[landmark.RightWrist] = landmark.Point{X: 0.4, Y: 0.54, Visibility: 0.95}

	if got := c.Classify(b); got != HandsOnHips {
		t.Errorf("Classify() = %s, want %s", got, HandsOnHips)
	}
}

func TestClassifier_Sitting(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	b := standingBody(t)

	// Thighs stay vertical, shins fold forward.
	b.Points[landmark.LeftAnkle] = landmark.Point{X: 0.7, Y: 0.78, Visibility: 0.95}
	b.Points[landmark.RightAnkle] = landmark.Point{X: 0.3, Y: 0.78, Visibility: 0.95}

	if got := c.Classify(b); got != Sitting {
		t.Errorf("Classify() = %s, want %s", got, Sitting)
	}
}

func TestClassifier_Leaning(t *testing.T) {
	c := NewClassifier(DefaultConfig())
	b := standingBody(t)

	// Shift the whole upper body sideways over fixed hips.
	for _, i := range []int{
		landmark.LeftShoulder, landmark.RightShoulder,
		landmark.LeftElbow, landmark.RightElbow,
		landmark.LeftWrist, landmark.RightWrist,
	} {
		b.Points[i].X += 0.25
	}

	if got := c.Classify(b); got != Leaning {
		t.Errorf("Classify() = %s, want %s", got, Leaning)
	}
}

func TestClassifier_InsufficientSignal(t *testing.T) {
	c := NewClassifier(DefaultConfig())

	t.Run("occluded shoulder", func(t *testing.T) {
		b := standingBody(t)
		b.Points[landmark.LeftShoulder].Visibility = 0.3
		if got := c.Classify(b); got != Unknown {
			t.Errorf("Classify() = %s, want %s", got, Unknown)
		}
	})

	t.Run("occluded hip", func(t *testing.T) {
		b := standingBody(t)
		b.Points[landmark.RightHip].Visibility = 0.1
		if got := c.Classify(b); got != Unknown {
			t.Errorf("Classify() = %s, want %s", got, Unknown)
		}
	})

	t.Run("nil body", func(t *testing.T) {
		if got := c.Classify(nil); got != Unknown {
			t.Errorf("Classify(nil) = %s, want %s", got, Unknown)
		}
	})

	t.Run("zero body is unknown not panic", func(t *testing.T) {
		if got := c.Classify(&landmark.Body{}); got != Unknown {
			t.Errorf("Classify() = %s, want %s", got, Unknown)
		}
	})
}
