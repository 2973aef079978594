// Package anchor converts a hit-test transform stream plus a discrete
// trigger signal into placed world anchors.
package anchor

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Vec3 is a 3D vector. Rotations are Euler angles in degrees.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Transform is a world position plus orientation.
type Transform struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
}

// HitResult is one hit-test intersection against the environment.
type HitResult struct {
	Transform Transform `json:"transform"`
}

// Anchor is a placed, immutable point in space. Position and rotation
// are fixed at creation; removal happens only through the registry.
type Anchor struct {
	ID        string    `json:"id"`
	Position  Vec3      `json:"position"`
	Rotation  Vec3      `json:"rotation"`
	Type      string    `json:"type"`
	Label     string    `json:"label,omitempty"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultAnchorType tags anchors placed before any type is selected.
const DefaultAnchorType = "marker"

// pulseStep advances the cosmetic pulse phase per frame.
const pulseStep = 0.15

// Reticle follows the most recent valid hit-test transform and places an
// anchor when triggered while visible.
type Reticle struct {
	transform  Transform
	visible    bool
	pulsePhase float64

	anchorType string
	label      string
	color      string
}

// NewReticle creates a Reticle selecting the default anchor type.
func NewReticle() *Reticle {
	return &Reticle{
		anchorType: DefaultAnchorType,
		color:      "#ffffff",
	}
}

// Step consumes this frame's hit-test results. The first result drives
// the transform and makes the reticle visible; zero results hide it but
// retain the last transform, which a hidden reticle never places.
func (r *Reticle) Step(hits []HitResult) {
	r.pulsePhase += pulseStep
	if len(hits) == 0 {
		r.visible = false
		return
	}
	r.transform = hits[0].Transform
	r.visible = true
}

// Visible reports whether the most recent frame produced a hit.
func (r *Reticle) Visible() bool {
	return r.visible
}

// Transform returns the last known hit transform.
func (r *Reticle) Transform() Transform {
	return r.transform
}

// PulseScale returns the cosmetic pulsing scale for rendering. It is not
// part of the placement contract.
func (r *Reticle) PulseScale() float64 {
	return 1 + 0.1*math.Sin(r.pulsePhase)
}

// SetAnchorType selects the type tag stamped on subsequent placements.
func (r *Reticle) SetAnchorType(anchorType string) {
	if anchorType == "" {
		return
	}
	r.anchorType = anchorType
}

// SetLabel sets the optional label text for subsequent placements.
func (r *Reticle) SetLabel(label string) {
	r.label = label
}

// SetColor selects the color for subsequent placements.
func (r *Reticle) SetColor(color string) {
	if color == "" {
		return
	}
	r.color = color
}

// Trigger handles one discrete select signal. While hidden it is a
// no-op. While visible it returns a new anchor carrying a snapshot of
// the current transform: the reticle keeps moving every frame, so
// handing out a reference would let later frames retroactively move an
// already-placed object.
func (r *Reticle) Trigger() (*Anchor, bool) {
	if !r.visible {
		return nil, false
	}
	return &Anchor{
		ID:        uuid.NewString(),
		Position:  r.transform.Position,
		Rotation:  r.transform.Rotation,
		Type:      r.anchorType,
		Label:     r.label,
		Color:     r.color,
		CreatedAt: time.Now(),
	}, true
}

// Reset hides the reticle and clears the retained transform.
func (r *Reticle) Reset() {
	r.transform = Transform{}
	r.visible = false
	r.pulsePhase = 0
}
