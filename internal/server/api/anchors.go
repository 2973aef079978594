package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/anchor"
)

// AnchorsHandler handles HTTP requests for placed anchors and the
// placement reticle.
type AnchorsHandler struct {
	control Controller
}

// NewAnchorsHandler creates a new AnchorsHandler driving the given
// controller.
func NewAnchorsHandler(control Controller) *AnchorsHandler {
	return &AnchorsHandler{control: control}
}

type anchorsResponse struct {
	Anchors []anchor.Anchor `json:"anchors"`
}

type setReticleRequest struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// ServeHTTP routes anchor requests.
// Expected paths: /api/anchors, /api/anchors/undo, /api/anchors/reticle.
func (h *AnchorsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/anchors")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.trigger(w, r)
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
	case "reticle":
		if r.Method != http.MethodPut {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		h.setReticle(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// list handles GET /api/anchors and returns placed anchors in placement
// order.
func (h *AnchorsHandler) list(w http.ResponseWriter, r *http.Request) {
	anchors := h.control.Anchors()
	if anchors == nil {
		anchors = []anchor.Anchor{}
	}
	writeJSON(w, http.StatusOK, anchorsResponse{Anchors: anchors})
}

// trigger handles POST /api/anchors: the select signal. A visible
// reticle places an anchor; a hidden one is a conflict, not a crash.
func (h *AnchorsHandler) trigger(w http.ResponseWriter, r *http.Request) {
	placed, ok := h.control.Trigger()
	if !ok {
		writeError(w, http.StatusConflict, "reticle is not on a surface")
		return
	}
	writeJSON(w, http.StatusCreated, placed)
}

// clear handles DELETE /api/anchors and removes all placed anchors.
func (h *AnchorsHandler) clear(w http.ResponseWriter, r *http.Request) {
	h.control.ClearAnchors()
	writeJSON(w, http.StatusNoContent, nil)
}

// undo handles POST /api/anchors/undo and removes the latest anchor.
func (h *AnchorsHandler) undo(w http.ResponseWriter, r *http.Request) {
	if !h.control.UndoAnchor() {
		writeError(w, http.StatusConflict, "no anchors to undo")
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// setReticle handles PUT /api/anchors/reticle and selects what the next
// trigger will place.
func (h *AnchorsHandler) setReticle(w http.ResponseWriter, r *http.Request) {
	var req setReticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.control.SetReticle(req.Type, req.Label, req.Color)
	writeJSON(w, http.StatusNoContent, nil)
}
