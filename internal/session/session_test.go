package session

import (
	"testing"

	"github.com/ayusman/mudra/internal/anchor"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/landmark"
	"github.com/ayusman/mudra/internal/perception"
	"github.com/ayusman/mudra/internal/pose"
)

func frameAt(ts int64, hands ...landmark.Hand) perception.Result {
	return perception.Result{TimestampMs: ts, Hands: hands}
}

func TestSession_Dedup(t *testing.T) {
	t.Run("same timestamp classifies once", func(t *testing.T) {
		s := New(DefaultConfig())

		first := s.Step(frameAt(100, perception.OpenPalmHand()))
		second := s.Step(frameAt(100, perception.OpenPalmHand()))

		if first.Duplicate {
			t.Error("first frame marked duplicate")
		}
		if !second.Duplicate {
			t.Error("replayed frame not marked duplicate")
		}
		if s.Frames() != 1 {
			t.Errorf("Frames() = %d, want 1", s.Frames())
		}
		if len(second.Hands) != 1 || second.Hands[0].Gesture != gesture.OpenPalm {
			t.Errorf("replay lost labels: %+v", second.Hands)
		}
	})

	t.Run("duplicate frame cannot double-count a pinch release", func(t *testing.T) {
		s := New(DefaultConfig())

		s.Step(frameAt(1, perception.PinchHand(0.4, 0.4)))
		s.Step(frameAt(2, perception.PinchHand(0.41, 0.4)))
		done := s.Step(frameAt(3, perception.OpenPalmHand()))
		if done.Committed == nil {
			t.Fatal("release frame did not commit")
		}

		replay := s.Step(frameAt(3, perception.OpenPalmHand()))
		if replay.Committed != nil {
			t.Error("duplicate frame re-emitted the committed stroke")
		}
		if got := len(s.Recorder().Strokes()); got != 1 {
			t.Errorf("history length = %d, want 1", got)
		}
	})

	t.Run("timestamp zero is a valid first frame", func(t *testing.T) {
		s := New(DefaultConfig())
		if u := s.Step(frameAt(0, perception.FistHand())); u.Duplicate {
			t.Error("first frame at ts=0 marked duplicate")
		}
	})
}

func TestSession_Drawing(t *testing.T) {
	t.Run("pinch stream becomes one stroke", func(t *testing.T) {
		s := New(DefaultConfig())

		for i := 0; i < 4; i++ {
			u := s.Step(frameAt(int64(i), perception.PinchHand(0.4+float64(i)*0.01, 0.4)))
			if u.Committed != nil {
				t.Fatal("committed mid-pinch")
			}
		}
		u := s.Step(frameAt(10, perception.OpenPalmHand()))

		if u.Committed == nil {
			t.Fatal("no stroke committed on release")
		}
		if len(u.Committed.Points) != 4 {
			t.Errorf("stroke points = %d, want 4", len(u.Committed.Points))
		}
	})

	t.Run("pen point is the scaled tip midpoint", func(t *testing.T) {
		config := DefaultConfig()
		config.CanvasWidth = 1000
		config.CanvasHeight = 500
		s := New(config)

		s.Step(frameAt(1, perception.PinchHand(0.4, 0.4)))
		active := s.Recorder().Active()
		if active == nil {
			t.Fatal("no active stroke while pinching")
		}
		p := active.Points[0]
		if p.X < 395 || p.X > 405 || p.Y < 195 || p.Y > 205 {
			t.Errorf("pen point = (%f, %f), want ~(400, 200)", p.X, p.Y)
		}
	})

	t.Run("empty frame holds recorder state", func(t *testing.T) {
		s := New(DefaultConfig())

		s.Step(frameAt(1, perception.PinchHand(0.4, 0.4)))
		s.Step(frameAt(2, perception.PinchHand(0.41, 0.4)))

		// Hand drops out; the machine must hold, not commit.
		u := s.Step(frameAt(3))
		if u.Committed != nil {
			t.Error("dropout frame committed the stroke")
		}
		if s.Recorder().Active() == nil {
			t.Error("dropout frame dropped the active stroke")
		}

		// Hand returns still pinching, then releases.
		s.Step(frameAt(4, perception.PinchHand(0.42, 0.4)))
		u = s.Step(frameAt(5, perception.FistHand()))
		if u.Committed == nil || len(u.Committed.Points) != 3 {
			t.Errorf("expected a 3-point stroke after dropout, got %+v", u.Committed)
		}
	})

	t.Run("second pinching hand does not steal the pen", func(t *testing.T) {
		s := New(DefaultConfig())

		s.Step(frameAt(1, perception.PinchHand(0.2, 0.4), perception.PinchHand(0.8, 0.4)))
		s.Step(frameAt(2, perception.PinchHand(0.2, 0.5), perception.PinchHand(0.8, 0.5)))
		u := s.Step(frameAt(3, perception.FistHand()))

		if u.Committed == nil {
			t.Fatal("no stroke committed")
		}
		// Both points follow the first hand.
		for _, p := range u.Committed.Points {
			if p.X > 200 {
				t.Errorf("stroke point %v tracked the second hand", p)
			}
		}
	})
}

func TestSession_Bodies(t *testing.T) {
	s := New(DefaultConfig())

	u := s.Step(perception.Result{
		TimestampMs: 1,
		Bodies:      []landmark.Body{perception.ArmsUpBody(), perception.StandingBody()},
	})

	if len(u.Bodies) != 2 {
		t.Fatalf("bodies = %d, want 2", len(u.Bodies))
	}
	if u.Bodies[0].Pose != pose.ArmsUp || u.Bodies[1].Pose != pose.Standing {
		t.Errorf("poses = %s, %s", u.Bodies[0].Pose, u.Bodies[1].Pose)
	}
	if u.Bodies[0].Slot == u.Bodies[1].Slot {
		t.Error("two people share a slot")
	}
}

func TestSession_SlotStability(t *testing.T) {
	s := New(DefaultConfig())

	left := perception.PinchHand(0.2, 0.5)
	right := perception.OpenPalmHand()
	for i := range right.Points {
		right.Points[i].X += 0.2
	}

	first := s.Step(frameAt(1, left, right))

	// Upstream swaps the array order next frame.
	second := s.Step(frameAt(2, right, left))

	if first.Hands[0].Slot != second.Hands[1].Slot {
		t.Error("left hand identity lost across index swap")
	}
	if first.Hands[1].Slot != second.Hands[0].Slot {
		t.Error("right hand identity lost across index swap")
	}
}

func TestSession_Placement(t *testing.T) {
	t.Run("trigger while visible places a snapshot", func(t *testing.T) {
		s := New(DefaultConfig())

		s.Step(perception.Result{TimestampMs: 1, Hits: []anchor.HitResult{perception.GroundHit(1, 0, -2)}})

		a, ok := s.Trigger()
		if !ok {
			t.Fatal("trigger with visible reticle did not place")
		}

		// The next frame moves the reticle; the anchor must not move.
		s.Step(perception.Result{TimestampMs: 2, Hits: []anchor.HitResult{perception.GroundHit(9, 9, 9)}})
		if a.Position.X != 1 || a.Position.Z != -2 {
			t.Errorf("anchor moved to %+v", a.Position)
		}
		if s.Anchors().Len() != 1 {
			t.Errorf("registry length = %d, want 1", s.Anchors().Len())
		}
	})

	t.Run("trigger while hidden is a no-op", func(t *testing.T) {
		s := New(DefaultConfig())
		s.Step(perception.Result{TimestampMs: 1})

		if _, ok := s.Trigger(); ok {
			t.Error("hidden reticle placed an anchor")
		}
		if s.Anchors().Len() != 0 {
			t.Errorf("registry length = %d, want 0", s.Anchors().Len())
		}
	})
}

func TestSession_Reset(t *testing.T) {
	s := New(DefaultConfig())

	s.Step(frameAt(5, perception.PinchHand(0.4, 0.4)))
	s.Step(perception.Result{TimestampMs: 6, Hits: []anchor.HitResult{perception.GroundHit(0, 0, 0)}})
	s.Trigger()

	s.Reset()

	if s.Frames() != 0 {
		t.Errorf("Frames() = %d after reset", s.Frames())
	}
	if s.Recorder().Active() != nil {
		t.Error("active stroke survived reset")
	}
	if s.Anchors().Len() != 0 {
		t.Error("anchors survived reset")
	}
	if s.Reticle().Visible() {
		t.Error("reticle visible after reset")
	}

	// A frame with the pre-reset timestamp must process, not dedup.
	if u := s.Step(frameAt(6, perception.FistHand())); u.Duplicate {
		t.Error("reset kept the dedup timestamp")
	}
}
