package store

import (
	"database/sql"
	"time"
)

// Event kinds recorded in the recognition log.
const (
	EventGesture   = "gesture"
	EventPose      = "pose"
	EventStroke    = "stroke"
	EventPlacement = "placement"
)

// Event is one entry in the recognition log: a gesture or pose label
// change, a committed stroke, or an anchor placement.
type Event struct {
	ID        int64
	SessionID string
	Kind      string
	Label     string
	Slot      string
	At        time.Time
}

// EventRepository provides operations on the recognition log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Log appends an event to the recognition log.
func (r *EventRepository) Log(event *Event) error {
	event.At = time.Now()

	result, err := r.db.Exec(
		`INSERT INTO events (session_id, kind, label, slot, at)
		 VALUES (?, ?, ?, ?, ?)`,
		event.SessionID, event.Kind, event.Label, event.Slot, event.At,
	)
	if err != nil {
		return err
	}

	event.ID, err = result.LastInsertId()
	return err
}

// ListBySession retrieves all events for a session in insertion order.
func (r *EventRepository) ListBySession(sessionID string) ([]*Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, kind, label, slot, at
		 FROM events WHERE session_id = ? ORDER BY id ASC`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event := &Event{}
		if err := rows.Scan(&event.ID, &event.SessionID, &event.Kind, &event.Label, &event.Slot, &event.At); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// CountByKind returns how many events of the given kind a session logged.
func (r *EventRepository) CountByKind(sessionID, kind string) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM events WHERE session_id = ? AND kind = ?`,
		sessionID, kind,
	).Scan(&count)
	return count, err
}
