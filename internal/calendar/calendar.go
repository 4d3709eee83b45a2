// Package calendar provides the read-only calendar query consumed by the
// calendar agent. Events live in a JSON document maintained elsewhere;
// this package only filters it.
package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// Event is a single calendar event.
type Event struct {
	Subject    string   `json:"subject"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	Attendees  []string `json:"attendees"`
	Location   string   `json:"location,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Store reads events from a JSON document.
type Store struct {
	path string
}

// NewStore creates a store over the calendar document at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Events returns the events that list user as an attendee. A missing
// document reads as no events.
func (s *Store) Events(ctx context.Context, user string) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []Event{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading calendar %s: %w", s.path, err)
	}

	var all []Event
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parsing calendar %s: %w", s.path, err)
	}

	events := []Event{}
	for _, e := range all {
		for _, a := range e.Attendees {
			if a == user {
				events = append(events, e)
				break
			}
		}
	}
	return events, nil
}
