// Package geom provides the pure geometric predicates the classifiers are
// built from. Every function is stateless and never panics; a degenerate
// input yields a well-defined number, not an error.
package geom

import (
	"math"

	"github.com/ayusman/mudra/internal/landmark"
)

// DefaultVisibility is the confidence threshold below which a landmark is
// treated as not visible.
const DefaultVisibility = 0.5

// Distance returns the 2D Euclidean distance between two landmarks in
// their native normalized coordinate space.
func Distance(p, q landmark.Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Distance3D returns the Euclidean distance including the depth axis.
func Distance3D(p, q landmark.Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	dz := p.Z - q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Midpoint returns the 2D midpoint of two landmarks.
func Midpoint(p, q landmark.Point) landmark.Point {
	return landmark.Point{
		X: (p.X + q.X) / 2,
		Y: (p.Y + q.Y) / 2,
	}
}

// Angle returns the unsigned angle in degrees at vertex between the rays
// to a and c, always in [0,180]. The raw difference of two atan2 results
// can exceed 180 or go negative depending on winding, so the value is
// folded back by reflection. Coincident points yield 0, not NaN.
func Angle(a, vertex, c landmark.Point) float64 {
	rad := math.Atan2(c.Y-vertex.Y, c.X-vertex.X) - math.Atan2(a.Y-vertex.Y, a.X-vertex.X)
	deg := math.Abs(rad * 180 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}
	return deg
}

// Visible reports whether a landmark's confidence clears the threshold.
// The hand model never populates Visibility and its callers must not gate
// on it; the body model always does.
func Visible(p landmark.Point, threshold float64) bool {
	return p.Visibility > threshold
}

// FingerExtended reports whether the tip→pip→mcp chain is monotonically
// higher on screen (smaller Y upward). This is a screen-space heuristic,
// not a 3D extension test: it assumes an upright hand and fails when the
// hand is rotated so image-up no longer tracks finger extension.
func FingerExtended(tip, pip, mcp landmark.Point) bool {
	return tip.Y < pip.Y && pip.Y < mcp.Y
}

// ThumbExtended reports whether the thumb tip→ip→mcp chain extends
// horizontally away from the palm. The comparison direction flips with
// handedness because the two hands are mirrored.
func ThumbExtended(tip, ip, mcp landmark.Point, handedness landmark.Handedness) bool {
	if handedness == landmark.LeftHand {
		return tip.X < ip.X && ip.X < mcp.X
	}
	return tip.X > ip.X && ip.X > mcp.X
}
