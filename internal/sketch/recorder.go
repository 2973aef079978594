// Package sketch turns a continuous pinch signal into discrete ink
// strokes.
package sketch

import "github.com/google/uuid"

// Point is a 2D position in canvas pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stroke is one continuous ink mark. Committed strokes always have at
// least two points and are never mutated again.
type Stroke struct {
	ID     string  `json:"id"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

// DefaultColor is the ink color used when none has been selected.
const DefaultColor = "#ffffff"

// minStrokePoints is the commit floor: a single-frame pinch is treated
// as noise, not an intentional stroke.
const minStrokePoints = 2

// Recorder is a two-state hysteresis machine driven once per processed
// frame by the pinch flag and the current pen position. It is the only
// writer of its strokes; there is exactly one active stroke at a time.
type Recorder struct {
	active  *Stroke
	history []Stroke
	color   string
}

// NewRecorder creates a Recorder drawing in the default color.
func NewRecorder() *Recorder {
	return &Recorder{color: DefaultColor}
}

// SetColor selects the ink color for strokes started after this call.
// The active stroke keeps the color it was seeded with.
func (r *Recorder) SetColor(color string) {
	if color == "" {
		return
	}
	r.color = color
}

// Color returns the currently selected ink color.
func (r *Recorder) Color() string {
	return r.color
}

// Step advances the machine one frame. On a pinch rising edge a new
// stroke is seeded at the current point; while the pinch holds, every
// processed frame appends a point (no distance-based decimation). On the
// falling edge the stroke is committed if it reached two points and
// discarded otherwise; the committed stroke is returned so callers can
// emit an event for it.
func (r *Recorder) Step(pinching bool, at Point) *Stroke {
	if pinching {
		if r.active == nil {
			r.active = &Stroke{
				ID:     uuid.NewString(),
				Color:  r.color,
				Points: []Point{at},
			}
			return nil
		}
		r.active.Points = append(r.active.Points, at)
		return nil
	}

	if r.active == nil {
		return nil
	}

	done := r.active
	r.active = nil
	if len(done.Points) < minStrokePoints {
		return nil
	}
	r.history = append(r.history, *done)
	return done
}

// Active returns a snapshot of the in-progress stroke, or nil when idle.
func (r *Recorder) Active() *Stroke {
	if r.active == nil {
		return nil
	}
	snapshot := *r.active
	snapshot.Points = append([]Point(nil), r.active.Points...)
	return &snapshot
}

// Strokes returns the committed stroke history in commit order.
func (r *Recorder) Strokes() []Stroke {
	return append([]Stroke(nil), r.history...)
}

// Undo removes the most recently committed stroke. Returns false when
// the history is empty.
func (r *Recorder) Undo() bool {
	if len(r.history) == 0 {
		return false
	}
	r.history = r.history[:len(r.history)-1]
	return true
}

// Clear drops the committed history. The active stroke, if any, keeps
// recording.
func (r *Recorder) Clear() {
	r.history = nil
}

// Reset returns the recorder to its initial state: no active stroke, no
// history, stale pinch state forgotten. Called when a session restarts.
func (r *Recorder) Reset() {
	r.active = nil
	r.history = nil
}
