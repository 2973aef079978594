package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/store"
)

// SessionsHandler serves the persisted session history.
type SessionsHandler struct {
	store *store.Store
}

// NewSessionsHandler creates a new SessionsHandler backed by the given
// store.
func NewSessionsHandler(s *store.Store) *SessionsHandler {
	return &SessionsHandler{store: s}
}

type sessionResponse struct {
	ID        string `json:"id"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at,omitempty"`
	Frames    int    `json:"frames"`
	Strokes   int    `json:"strokes"`
	Anchors   int    `json:"anchors"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type eventResponse struct {
	ID    int64  `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label"`
	Slot  string `json:"slot,omitempty"`
	At    string `json:"at"`
}

type sessionDetailResponse struct {
	sessionResponse
	Events []eventResponse `json:"events"`
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

func toSessionResponse(sess *store.Session) sessionResponse {
	resp := sessionResponse{
		ID:        sess.ID,
		StartedAt: sess.StartedAt.Format(timeFormat),
		Frames:    sess.Frames,
		Strokes:   sess.Strokes,
		Anchors:   sess.Anchors,
	}
	if sess.EndedAt != nil {
		resp.EndedAt = sess.EndedAt.Format(timeFormat)
	}
	return resp
}

// ServeHTTP routes session history requests.
// Expected paths: /api/sessions or /api/sessions/{id}.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		h.list(w, r)
		return
	}
	h.get(w, r, path)
}

// list handles GET /api/sessions and returns all sessions, newest first.
func (h *SessionsHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	resp := listSessionsResponse{Sessions: make([]sessionResponse, 0, len(sessions))}
	for _, sess := range sessions {
		resp.Sessions = append(resp.Sessions, toSessionResponse(sess))
	}
	writeJSON(w, http.StatusOK, resp)
}

// get handles GET /api/sessions/{id} and returns a session with its
// recognition events.
func (h *SessionsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to get session")
		return
	}

	events, err := h.store.Events().ListBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	resp := sessionDetailResponse{
		sessionResponse: toSessionResponse(sess),
		Events:          make([]eventResponse, 0, len(events)),
	}
	for _, event := range events {
		resp.Events = append(resp.Events, eventResponse{
			ID:    event.ID,
			Kind:  event.Kind,
			Label: event.Label,
			Slot:  event.Slot,
			At:    event.At.Format(timeFormat),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
