package store

import (
	"fmt"
	"time"

	"github.com/tasknest/tasknest/internal/domain"
)

// EventStore appends to and reads the activity log.
type EventStore struct {
	q queryer
}

// Log appends an event. Timestamp defaults to now when unset.
func (es *EventStore) Log(e *domain.Event) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	res, err := es.q.Exec(`
		INSERT INTO event_log (timestamp, resource_type, resource_id, event_type, payload)
		VALUES (?, ?, ?, ?, ?)
	`, toMillis(e.Timestamp), e.ResourceType, e.ResourceID, e.EventType, e.Payload)
	if err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		e.ID = id
	}
	return nil
}

// ListRecent returns up to limit events, newest first.
func (es *EventStore) ListRecent(limit int) ([]*domain.Event, error) {
	rows, err := es.q.Query(`
		SELECT id, timestamp, resource_type, resource_id, event_type, payload
		FROM event_log
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*domain.Event
	for rows.Next() {
		var (
			e  domain.Event
			ts int64
		)
		if err := rows.Scan(&e.ID, &ts, &e.ResourceType, &e.ResourceID, &e.EventType, &e.Payload); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		events = append(events, &e)
	}
	return events, rows.Err()
}
