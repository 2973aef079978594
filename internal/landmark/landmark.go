// Package landmark defines the landmark data model shared by all classifiers.
package landmark

import "fmt"

// Point is one detected landmark. Coordinates are normalized to [0,1] in
// frame space with the origin at the top-left. Z is optional depth as
// reported by the model. Visibility is a confidence score in [0,1]; the
// hand model never populates it, the body model always does.
type Point struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z,omitempty"`
	Visibility float64 `json:"visibility,omitempty"`
}

// Handedness labels which hand a detection belongs to.
type Handedness string

const (
	LeftHand  Handedness = "Left"
	RightHand Handedness = "Right"
)

// Hand is one detected hand: a fixed, index-addressed set of 21 points.
// The index order is a public contract; classifiers read exact indices.
type Hand struct {
	Points     [NumHandLandmarks]Point `json:"points"`
	Handedness Handedness              `json:"handedness"`
	Score      float64                 `json:"score"`
}

// Body is one detected person: a fixed set of 33 points.
type Body struct {
	Points [NumBodyLandmarks]Point `json:"points"`
	Score  float64                 `json:"score"`
}

// HandFromPoints builds a Hand from a slice, rejecting any length other
// than 21. Index reads past a short slice would otherwise be silent
// garbage, so the wrong count is a caller fault, not something tolerated.
func HandFromPoints(points []Point, handedness Handedness) (Hand, error) {
	var h Hand
	if len(points) != NumHandLandmarks {
		return h, fmt.Errorf("hand landmark set has %d points, want %d", len(points), NumHandLandmarks)
	}
	copy(h.Points[:], points)
	h.Handedness = handedness
	return h, nil
}

// BodyFromPoints builds a Body from a slice, rejecting any length other
// than 33.
func BodyFromPoints(points []Point) (Body, error) {
	var b Body
	if len(points) != NumBodyLandmarks {
		return b, fmt.Errorf("body landmark set has %d points, want %d", len(points), NumBodyLandmarks)
	}
	copy(b.Points[:], points)
	return b, nil
}

// Centroid returns the mean position of the hand's points, used by the
// tracker to match detections across frames.
func (h *Hand) Centroid() Point {
	return centroid(h.Points[:])
}

// Centroid returns the mean position of the body's points.
func (b *Body) Centroid() Point {
	return centroid(b.Points[:])
}

func centroid(points []Point) Point {
	var c Point
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(points))
	c.X /= n
	c.Y /= n
	return c
}
