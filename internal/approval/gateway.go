// Package approval is the write gateway: the only path through which
// timesheet entries are committed or suggestions rejected. Every call
// appends exactly one correlated audit record, and a decision, once
// recorded, is never updated or removed.
package approval

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ccg-demos/timesleuth/internal/audit"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

// Gateway validates write requests and applies them to the timesheet and
// audit stores. A single mutex serializes all gateway writes so the
// entry+audit pair commits as a unit.
type Gateway struct {
	mu         sync.Mutex
	timesheets *timesheet.Store
	audits     *audit.Store
	now        func() time.Time
}

// NewGateway creates a Gateway over the given stores.
func NewGateway(timesheets *timesheet.Store, audits *audit.Store) *Gateway {
	return &Gateway{
		timesheets: timesheets,
		audits:     audits,
		now:        time.Now,
	}
}

// EntryRequest carries an approved suggestion to be written.
type EntryRequest struct {
	User          string  `json:"user"`
	Date          string  `json:"date"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	DurationHours float64 `json:"duration_hours"`
	Task          string  `json:"task"`
	Project       string  `json:"project"`
	Billable      bool    `json:"billable"`
	ApprovedBy    string  `json:"approved_by"`
	SuggestionID  string  `json:"suggestion_id,omitempty"`
}

// RejectionRequest carries a rejected suggestion to be logged.
type RejectionRequest struct {
	User         string `json:"user"`
	Date         string `json:"date"`
	Task         string `json:"task"`
	Reason       string `json:"reason"`
	RejectedBy   string `json:"rejected_by"`
	SuggestionID string `json:"suggestion_id,omitempty"`
}

// Confirmation is the payload returned for a successful write.
type Confirmation struct {
	Status    string           `json:"status"`
	Message   string           `json:"message"`
	Entry     *timesheet.Entry `json:"entry,omitempty"`
	Rejection *audit.Entry     `json:"rejection,omitempty"`
}

// AddTimesheetEntry validates req, appends the entry to the user's
// timesheet, and appends the correlated audit record. If the audit append
// fails the timesheet is restored to its prior state, so either both
// writes land or neither does.
func (g *Gateway) AddTimesheetEntry(ctx context.Context, req EntryRequest) (*Confirmation, error) {
	if err := ValidateEntryRequest(req); err != nil {
		return nil, err
	}
	if req.ApprovedBy == "" {
		req.ApprovedBy = "system"
	}

	entry := timesheet.Entry{
		Date:          req.Date,
		Start:         req.Start,
		End:           req.End,
		DurationHours: req.DurationHours,
		Task:          req.Task,
		Project:       req.Project,
		Billable:      req.Billable,
		AddedBySystem: true,
		ApprovedBy:    req.ApprovedBy,
		CreatedAt:     g.now(),
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	prior, err := g.timesheets.Load(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := g.timesheets.Append(ctx, req.User, entry); err != nil {
		return nil, err
	}

	record := audit.Entry{
		Action:       audit.ActionAddTimesheetEntry,
		User:         req.User,
		Timestamp:    g.now(),
		SuggestionID: req.SuggestionID,
		Entry:        &entry,
		ApprovedBy:   req.ApprovedBy,
	}
	if err := g.audits.Append(ctx, record); err != nil {
		// Undo the entry so no unaudited write survives. The gateway lock
		// guarantees nothing else wrote between the append and here.
		if restoreErr := g.timesheets.Restore(ctx, prior); restoreErr != nil {
			return nil, fmt.Errorf("audit append failed (%v) and timesheet rollback failed: %w", err, restoreErr)
		}
		return nil, fmt.Errorf("audit append failed, entry rolled back: %w", err)
	}

	return &Confirmation{
		Status:  "success",
		Message: fmt.Sprintf("Added timesheet entry for %s on %s", req.User, req.Date),
		Entry:   &entry,
	}, nil
}

// RejectSuggestion logs a rejection. Rejections never touch the timesheet;
// the audit record is the sole write.
func (g *Gateway) RejectSuggestion(ctx context.Context, req RejectionRequest) (*Confirmation, error) {
	if err := ValidateRejectionRequest(req); err != nil {
		return nil, err
	}
	if req.RejectedBy == "" {
		req.RejectedBy = "system"
	}

	record := audit.Entry{
		Action:       audit.ActionRejectSuggestion,
		User:         req.User,
		Timestamp:    g.now(),
		SuggestionID: req.SuggestionID,
		Date:         req.Date,
		Task:         req.Task,
		Reason:       req.Reason,
		RejectedBy:   req.RejectedBy,
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.audits.Append(ctx, record); err != nil {
		return nil, err
	}

	return &Confirmation{
		Status:    "success",
		Message:   fmt.Sprintf("Rejection logged for %s on %s", req.User, req.Date),
		Rejection: &record,
	}, nil
}

// AuditLog returns the most recent audit entries.
func (g *Gateway) AuditLog(ctx context.Context, limit int) (*audit.RecentLog, error) {
	return g.audits.ReadRecent(ctx, limit)
}
