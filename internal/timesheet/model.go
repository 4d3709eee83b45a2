package timesheet

import "time"

// Entry is one logged block of time. Field names match the on-disk
// timesheet document and must not change.
type Entry struct {
	Date          string    `json:"date"`  // YYYY-MM-DD
	Start         string    `json:"start"` // HH:MM:SS
	End           string    `json:"end"`   // HH:MM:SS
	DurationHours float64   `json:"duration_hours"`
	Task          string    `json:"task"`
	Project       string    `json:"project"`
	Billable      bool      `json:"billable"`
	AddedBySystem bool      `json:"added_by_system"`
	ApprovedBy    string    `json:"approved_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// Document is a single user's timesheet. Entries are in write order, not
// date order, and the sequence only ever grows.
type Document struct {
	User    string  `json:"user"`
	Entries []Entry `json:"entries"`
}

// Suggestion is a proposed entry that has not been approved or rejected
// yet. The ID is assigned when the suggestion is recorded and carried into
// the audit trail on either decision.
type Suggestion struct {
	ID            string    `json:"id"`
	User          string    `json:"user"`
	Date          string    `json:"date"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	DurationHours float64   `json:"duration_hours"`
	Task          string    `json:"task"`
	Project       string    `json:"project"`
	Billable      bool      `json:"billable"`
	Rationale     string    `json:"rationale"`
	SuggestedAt   time.Time `json:"suggested_at"`
}
