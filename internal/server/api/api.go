// Package api provides the HTTP API handlers for the tracking session:
// strokes, anchors and session status.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/anchor"
	"github.com/ayusman/mudra/internal/sketch"
)

// Controller is the session surface the handlers operate on. The app
// implements it with whatever locking its frame loop needs; the handlers
// never touch the session directly.
type Controller interface {
	Status() Status

	Strokes() []sketch.Stroke
	ActiveStroke() *sketch.Stroke
	UndoStroke() bool
	ClearStrokes()
	SetStrokeColor(color string)

	Anchors() []anchor.Anchor
	UndoAnchor() bool
	ClearAnchors()
	SetReticle(anchorType, label, color string)
	Trigger() (*anchor.Anchor, bool)
}

// Status is a point-in-time snapshot of the tracking session.
type Status struct {
	Running        bool   `json:"running"`
	SessionID      string `json:"session_id"`
	Frames         int    `json:"frames"`
	Strokes        int    `json:"strokes"`
	Anchors        int    `json:"anchors"`
	ReticleVisible bool   `json:"reticle_visible"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
