package anchor

import "sync"

// Registry holds the anchors placed during the current session. Anchors
// are immutable once added; removal happens only through explicit Undo
// or Clear calls from the outside, never from the frame loop.
type Registry struct {
	mu      sync.RWMutex
	anchors []Anchor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add stores a placed anchor.
func (g *Registry) Add(a Anchor) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.anchors = append(g.anchors, a)
}

// List returns the anchors in placement order.
func (g *Registry) List() []Anchor {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]Anchor(nil), g.anchors...)
}

// Len returns the number of placed anchors.
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.anchors)
}

// Undo removes the most recently placed anchor. Returns false when the
// registry is empty.
func (g *Registry) Undo() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.anchors) == 0 {
		return false
	}
	g.anchors = g.anchors[:len(g.anchors)-1]
	return true
}

// Clear removes all anchors.
func (g *Registry) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.anchors = nil
}
