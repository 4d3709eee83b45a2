// Package audit keeps the append-only trail of every write decision made
// against the timesheet. Records are never reordered, updated, or removed
// from the hot log; retention moves old records into an archive database
// instead of deleting them.
package audit

import (
	"time"

	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

// Action describes what was done.
type Action string

const (
	ActionAddTimesheetEntry Action = "add_timesheet_entry"
	ActionRejectSuggestion  Action = "reject_suggestion"
)

// Entry is a single audit record. The action-specific fields are populated
// depending on Action: approvals carry the full timesheet entry and the
// approver, rejections carry date/task/reason and the rejecter. Field names
// match the on-disk audit document and must not change.
type Entry struct {
	Action       Action    `json:"action"`
	User         string    `json:"user"`
	Timestamp    time.Time `json:"timestamp"`
	SuggestionID string    `json:"suggestion_id,omitempty"`

	// add_timesheet_entry fields.
	Entry      *timesheet.Entry `json:"entry,omitempty"`
	ApprovedBy string           `json:"approved_by,omitempty"`

	// reject_suggestion fields.
	Date       string `json:"date,omitempty"`
	Task       string `json:"task,omitempty"`
	Reason     string `json:"reason,omitempty"`
	RejectedBy string `json:"rejected_by,omitempty"`
}

// Document is the persisted audit log. Entries are in write order.
type Document struct {
	Entries []Entry `json:"entries"`
}

// RecentLog is the payload returned by ReadRecent: the most recent entries
// in original insertion order, plus totals.
type RecentLog struct {
	TotalEntries    int     `json:"total_entries"`
	ReturnedEntries int     `json:"returned_entries"`
	Entries         []Entry `json:"entries"`
}
