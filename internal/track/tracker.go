// Package track assigns stable identities to per-frame detections.
//
// Upstream hands and people are only indices into the current frame's
// result array, so two entities can silently swap identity whenever the
// detector reorders them. The tracker matches current-frame centroids to
// previous-frame slots by nearest distance, keeping a stable slot ID
// alive across reorderings and short dropouts.
package track

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/geom"
	"github.com/ayusman/mudra/internal/landmark"
)

// Defaults for slot lifecycle and assignment gating.
const (
	// DefaultMaxMissed is how many consecutive frames a slot survives
	// without a matched detection before it is retired.
	DefaultMaxMissed = 15
	// DefaultMaxDistance is the assignment gate in normalized frame
	// units; a detection farther than this from every slot starts a new
	// identity instead of stealing one.
	DefaultMaxDistance = 0.25
)

// Slot is one tracked identity.
type Slot struct {
	ID       string
	Centroid landmark.Point
	missed   int
}

// Tracker matches detections to slots frame by frame.
type Tracker struct {
	slots       []*Slot
	maxMissed   int
	maxDistance float64
}

// New creates a Tracker. Non-positive parameters fall back to defaults.
func New(maxMissed int, maxDistance float64) *Tracker {
	if maxMissed <= 0 {
		maxMissed = DefaultMaxMissed
	}
	if maxDistance <= 0 {
		maxDistance = DefaultMaxDistance
	}
	return &Tracker{maxMissed: maxMissed, maxDistance: maxDistance}
}

type candidate struct {
	slot      int
	detection int
	distance  float64
}

// Assign matches this frame's detection centroids to slots and returns
// one slot per detection, index-aligned with the input. Matching is
// greedy nearest-first under the distance gate; unmatched detections get
// fresh slots, unmatched slots accrue a miss and retire after the
// timeout.
func (t *Tracker) Assign(centroids []landmark.Point) []*Slot {
	assigned := make([]*Slot, len(centroids))

	var candidates []candidate
	for si, s := range t.slots {
		for di, c := range centroids {
			d := geom.Distance(s.Centroid, c)
			if d <= t.maxDistance {
				candidates = append(candidates, candidate{slot: si, detection: di, distance: d})
			}
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	slotTaken := make([]bool, len(t.slots))
	for _, c := range candidates {
		if slotTaken[c.slot] || assigned[c.detection] != nil {
			continue
		}
		s := t.slots[c.slot]
		s.Centroid = centroids[c.detection]
		s.missed = 0
		assigned[c.detection] = s
		slotTaken[c.slot] = true
	}

	for di, s := range assigned {
		if s != nil {
			continue
		}
		fresh := &Slot{ID: uuid.NewString(), Centroid: centroids[di]}
		t.slots = append(t.slots, fresh)
		assigned[di] = fresh
	}

	// Slots beyond len(slotTaken) are the fresh ones appended above and
	// are matched by construction.
	kept := t.slots[:0]
	for i, s := range t.slots {
		if i < len(slotTaken) && !slotTaken[i] {
			s.missed++
			if s.missed > t.maxMissed {
				continue
			}
		}
		kept = append(kept, s)
	}
	t.slots = kept

	return assigned
}

// Len returns the number of live slots, including recently missed ones
// still inside the timeout.
func (t *Tracker) Len() int {
	return len(t.slots)
}

// Reset retires every slot. Called on session restart.
func (t *Tracker) Reset() {
	t.slots = nil
}
