package app

import (
	"github.com/ayusman/mudra/internal/anchor"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/sketch"
	"github.com/ayusman/mudra/internal/store"
)

// App satisfies api.Controller: the HTTP handlers reach the session
// only through these locked accessors.

// Status reports a snapshot of the tracking session.
func (a *App) Status() api.Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return api.Status{
		Running:        a.stopCh != nil,
		SessionID:      a.sessionID,
		Frames:         a.session.Frames(),
		Strokes:        len(a.session.Recorder().Strokes()),
		Anchors:        a.session.Anchors().Len(),
		ReticleVisible: a.session.Reticle().Visible(),
	}
}

// Strokes returns the committed stroke history.
func (a *App) Strokes() []sketch.Stroke {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Recorder().Strokes()
}

// ActiveStroke returns a snapshot of the in-progress stroke, or nil.
func (a *App) ActiveStroke() *sketch.Stroke {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Recorder().Active()
}

// UndoStroke removes the most recently committed stroke.
func (a *App) UndoStroke() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Recorder().Undo()
}

// ClearStrokes drops the committed stroke history.
func (a *App) ClearStrokes() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Recorder().Clear()
}

// SetStrokeColor selects the ink color for subsequent strokes.
func (a *App) SetStrokeColor(color string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Recorder().SetColor(color)
}

// Anchors returns the placed anchors in placement order.
func (a *App) Anchors() []anchor.Anchor {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session.Anchors().List()
}

// UndoAnchor removes the most recently placed anchor.
func (a *App) UndoAnchor() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Anchors().Undo()
}

// ClearAnchors removes all placed anchors.
func (a *App) ClearAnchors() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Anchors().Clear()
}

// SetReticle selects what the next trigger will place. Empty fields
// leave the current selection alone.
func (a *App) SetReticle(anchorType, label, color string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	r := a.session.Reticle()
	r.SetAnchorType(anchorType)
	r.SetLabel(label)
	r.SetColor(color)
}

// Trigger routes the select signal to the session: a visible reticle
// places an anchor and records a placement event.
func (a *App) Trigger() (*anchor.Anchor, bool) {
	a.mu.Lock()
	placed, ok := a.session.Trigger()
	sessionID := a.sessionID
	a.mu.Unlock()

	if !ok {
		return nil, false
	}

	a.logEvent(&store.Event{
		SessionID: sessionID,
		Kind:      store.EventPlacement,
		Label:     placed.Type,
		Slot:      placed.ID,
	})
	return placed, true
}
