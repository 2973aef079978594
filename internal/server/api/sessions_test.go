package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ayusman/mudra/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mudra-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func TestSessionsHandler_List(t *testing.T) {
	s := newTestStore(t)
	if err := s.Sessions().Create(&store.Session{ID: "session-1"}); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	h := NewSessionsHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp listSessionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(resp.Sessions))
	}
	if resp.Sessions[0].ID != "session-1" {
		t.Errorf("expected session-1, got %q", resp.Sessions[0].ID)
	}
	if resp.Sessions[0].EndedAt != "" {
		t.Error("open session should have no ended_at")
	}
}

func TestSessionsHandler_Get(t *testing.T) {
	s := newTestStore(t)
	if err := s.Sessions().Create(&store.Session{ID: "session-1"}); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	if err := s.Events().Log(&store.Event{
		SessionID: "session-1", Kind: store.EventGesture, Label: "pinch", Slot: "slot-a",
	}); err != nil {
		t.Fatalf("failed to log event: %v", err)
	}

	h := NewSessionsHandler(s)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/session-1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp sessionDetailResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "session-1" {
		t.Errorf("expected session-1, got %q", resp.ID)
	}
	if len(resp.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(resp.Events))
	}
	if resp.Events[0].Kind != "gesture" || resp.Events[0].Label != "pinch" {
		t.Errorf("unexpected event: %+v", resp.Events[0])
	}
}

func TestSessionsHandler_Get_NotFound(t *testing.T) {
	h := NewSessionsHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/missing", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestSessionsHandler_MethodNotAllowed(t *testing.T) {
	h := NewSessionsHandler(newTestStore(t))

	req := httptest.NewRequest(http.MethodDelete, "/api/sessions", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, rec.Code)
	}
}
