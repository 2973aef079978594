package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/sketch"
)

// StrokesHandler handles HTTP requests for the stroke canvas.
type StrokesHandler struct {
	control Controller
}

// NewStrokesHandler creates a new StrokesHandler driving the given
// controller.
func NewStrokesHandler(control Controller) *StrokesHandler {
	return &StrokesHandler{control: control}
}

type strokesResponse struct {
	Strokes []sketch.Stroke `json:"strokes"`
	Active  *sketch.Stroke  `json:"active,omitempty"`
}

type setColorRequest struct {
	Color string `json:"color"`
}

// ServeHTTP routes stroke requests.
// Expected paths: /api/strokes, /api/strokes/undo, /api/strokes/color.
func (h *StrokesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/strokes")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodDelete:
			h.clear(w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
	case "undo":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.undo(w, r)
	case "color":
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.setColor(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// list handles GET /api/strokes and returns the committed strokes plus
// the in-progress stroke, if any.
func (h *StrokesHandler) list(w http.ResponseWriter, r *http.Request) {
	strokes := h.control.Strokes()
	if strokes == nil {
		strokes = []sketch.Stroke{}
	}
	writeJSON(w, http.StatusOK, strokesResponse{
		Strokes: strokes,
		Active:  h.control.ActiveStroke(),
	})
}

// clear handles DELETE /api/strokes and drops the committed history.
func (h *StrokesHandler) clear(w http.ResponseWriter, r *http.Request) {
	h.control.ClearStrokes()
	writeJSON(w, http.StatusNoContent, nil)
}

// undo handles POST /api/strokes/undo and removes the latest stroke.
func (h *StrokesHandler) undo(w http.ResponseWriter, r *http.Request) {
	if !h.control.UndoStroke() {
		writeError(w, http.StatusConflict, "no strokes to undo")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// setColor handles PUT /api/strokes/color and selects the ink color for
// subsequent strokes.
func (h *StrokesHandler) setColor(w http.ResponseWriter, r *http.Request) {
	var req setColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Color == "" {
		writeError(w, http.StatusBadRequest, "color is required")
		return
	}

	h.control.SetStrokeColor(req.Color)
	writeJSON(w, http.StatusNoContent, nil)
}
