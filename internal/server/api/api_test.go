package api

import (
	"github.com/ayusman/mudra/internal/anchor"
	"github.com/ayusman/mudra/internal/sketch"
)

// fakeController records calls and returns canned state for handler
// tests.
type fakeController struct {
	status  Status
	strokes []sketch.Stroke
	active  *sketch.Stroke
	anchors []anchor.Anchor

	undoStrokeOK bool
	undoAnchorOK bool
	placed       *anchor.Anchor

	clearedStrokes bool
	clearedAnchors bool
	color          string
	reticleType    string
	reticleLabel   string
	reticleColor   string
}

func (f *fakeController) Status() Status               { return f.status }
func (f *fakeController) Strokes() []sketch.Stroke     { return f.strokes }
func (f *fakeController) ActiveStroke() *sketch.Stroke { return f.active }
func (f *fakeController) UndoStroke() bool             { return f.undoStrokeOK }
func (f *fakeController) ClearStrokes()                { f.clearedStrokes = true }
func (f *fakeController) SetStrokeColor(color string)  { f.color = color }
func (f *fakeController) Anchors() []anchor.Anchor     { return f.anchors }
func (f *fakeController) UndoAnchor() bool             { return f.undoAnchorOK }
func (f *fakeController) ClearAnchors()                { f.clearedAnchors = true }
func (f *fakeController) Trigger() (*anchor.Anchor, bool) {
	if f.placed == nil {
		return nil, false
	}
	return f.placed, true
}
func (f *fakeController) SetReticle(anchorType, label, color string) {
	f.reticleType = anchorType
	f.reticleLabel = label
	f.reticleColor = color
}
