package orchestrator

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ccg-demos/timesleuth/internal/agents"
	"github.com/ccg-demos/timesleuth/internal/approval"
	"github.com/ccg-demos/timesleuth/internal/audit"
	"github.com/ccg-demos/timesleuth/internal/calendar"
	"github.com/ccg-demos/timesleuth/internal/llm"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

// scriptedProvider returns canned responses in order. Safe for use from
// the orchestrator's parallel fan-out.
type scriptedProvider struct {
	mu        sync.Mutex
	responses []llm.CompletionResponse
	requests  []llm.CompletionRequest
	err       error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	p.requests = append(p.requests, req)
	if len(p.responses) == 0 {
		return &llm.CompletionResponse{Content: "done"}, nil
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return &resp, nil
}

// fixture wires a full orchestrator over temp stores with one scripted
// provider per agent.
type fixture struct {
	orch     *Orchestrator
	ts       *timesheet.Store
	audits   *audit.Store
	recorder *agents.SuggestionRecorder

	calendarLLM, timesheetLLM, suggestLLM, revenueLLM, approvalLLM *scriptedProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()

	f := &fixture{
		ts:           timesheet.NewStore(filepath.Join(dir, "timesheet.json")),
		audits:       audit.NewStore(filepath.Join(dir, "audit_log.json")),
		recorder:     agents.NewSuggestionRecorder(),
		calendarLLM:  &scriptedProvider{},
		timesheetLLM: &scriptedProvider{},
		suggestLLM:   &scriptedProvider{},
		revenueLLM:   &scriptedProvider{},
		approvalLLM:  &scriptedProvider{},
	}
	cal := calendar.NewStore(filepath.Join(dir, "calendar.json"))
	gateway := approval.NewGateway(f.ts, f.audits)

	f.orch = New(
		agents.NewCalendarAgent(f.calendarLLM, "gpt-4o", cal),
		agents.NewTimesheetAgent(f.timesheetLLM, "gpt-4o", f.ts),
		agents.NewSuggestionAgent(f.suggestLLM, "gpt-4o", f.recorder),
		agents.NewRevenueAgent(f.revenueLLM, "gpt-4o", 250, 50),
		agents.NewApprovalAgent(f.approvalLLM, "gpt-4o", gateway),
		f.recorder,
		gateway,
	)
	return f
}

func TestAnalyzeMissingTimeRunsAllThreePhases(t *testing.T) {
	f := newFixture(t)
	f.calendarLLM.responses = []llm.CompletionResponse{{Content: "two billable events, one unlogged flight"}}
	f.timesheetLLM.responses = []llm.CompletionResponse{{Content: "4 hours recorded on 2025-11-13"}}
	f.suggestLLM.responses = []llm.CompletionResponse{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "suggest_timesheet_entry", Arguments: `{
			"user_email": "sarah@ccg.com", "date": "2025-11-13",
			"start_time": "09:00:00", "end_time": "11:00:00",
			"duration_hours": 2.0, "task": "Flight to Vancouver",
			"project": "VanTech Implementation", "billable": true,
			"rationale": "Travel block has no timesheet entry."}`}}},
		{Content: "suggested the unlogged flight"},
	}

	analysis, err := f.orch.AnalyzeMissingTime(context.Background(), "sarah@ccg.com")
	if err != nil {
		t.Fatalf("AnalyzeMissingTime: %v", err)
	}

	if analysis.CalendarAnalysis != "two billable events, one unlogged flight" {
		t.Errorf("calendar analysis = %q", analysis.CalendarAnalysis)
	}
	if analysis.TimesheetAnalysis != "4 hours recorded on 2025-11-13" {
		t.Errorf("timesheet analysis = %q", analysis.TimesheetAnalysis)
	}
	if len(analysis.Suggestions) != 1 || analysis.Suggestions[0].Task != "Flight to Vancouver" {
		t.Errorf("suggestions = %+v", analysis.Suggestions)
	}
	if analysis.Suggestions[0].ID == "" {
		t.Error("suggestion has no ID")
	}

	// The suggestion prompt must carry both upstream analyses.
	prompt := f.suggestLLM.requests[0].Messages[1].Content
	if !strings.Contains(prompt, "unlogged flight") || !strings.Contains(prompt, "4 hours recorded") {
		t.Errorf("suggestion prompt missing upstream analyses: %q", prompt)
	}

	if steps := f.orch.ExecutionSummary(); len(steps) != 3 {
		t.Errorf("execution log has %d steps, want 3", len(steps))
	}
}

func TestAnalyzeMissingTimePropagatesAnalystFailure(t *testing.T) {
	f := newFixture(t)
	f.calendarLLM.err = errors.New("rate limited")
	f.timesheetLLM.responses = []llm.CompletionResponse{{Content: "ok"}}

	if _, err := f.orch.AnalyzeMissingTime(context.Background(), "sarah@ccg.com"); err == nil {
		t.Fatal("expected calendar failure to propagate")
	}
}

func TestProcessApprovalCommitsThroughGateway(t *testing.T) {
	f := newFixture(t)
	f.approvalLLM.responses = []llm.CompletionResponse{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "add_timesheet_entry", Arguments: `{
			"user_email": "sarah@ccg.com", "date": "2025-11-13",
			"start_time": "09:00:00", "end_time": "11:00:00",
			"duration_hours": 2.0, "task": "Flight to Vancouver",
			"project": "VanTech Implementation", "billable": true,
			"approved_by": "sarah", "suggestion_id": "sug-1"}`}}},
		{Content: "Added the flight to the timesheet."},
	}

	msg, err := f.orch.ProcessApproval(context.Background(), Decision{
		Suggestion: timesheet.Suggestion{
			ID: "sug-1", User: "sarah@ccg.com", Date: "2025-11-13",
			Start: "09:00:00", End: "11:00:00", DurationHours: 2.0,
			Task: "Flight to Vancouver", Project: "VanTech Implementation", Billable: true,
		},
		Approve:   true,
		DecidedBy: "sarah",
	})
	if err != nil {
		t.Fatalf("ProcessApproval: %v", err)
	}
	if msg != "Added the flight to the timesheet." {
		t.Errorf("msg = %q", msg)
	}

	// The decision prompt must name the approver and the suggestion ID.
	prompt := f.approvalLLM.requests[0].Messages[1].Content
	if !strings.Contains(prompt, "APPROVED") || !strings.Contains(prompt, "sug-1") {
		t.Errorf("decision prompt = %q", prompt)
	}

	doc, err := f.ts.Entries(context.Background(), "sarah@ccg.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 1 || doc.Entries[0].Task != "Flight to Vancouver" {
		t.Errorf("timesheet entries = %+v", doc.Entries)
	}
	log, err := f.orch.AuditHistory(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if log.TotalEntries != 1 || log.Entries[0].Action != audit.ActionAddTimesheetEntry {
		t.Errorf("audit log = %+v", log)
	}
}

func TestProcessRejectionLogsAuditOnly(t *testing.T) {
	f := newFixture(t)
	f.approvalLLM.responses = []llm.CompletionResponse{
		{ToolCalls: []llm.ToolCall{{ID: "c1", Name: "reject_suggestion", Arguments: `{
			"user_email": "sarah@ccg.com", "date": "2025-11-15",
			"task": "Internal Team Sync", "reason": "Not billable",
			"rejected_by": "sarah", "suggestion_id": "sug-2"}`}}},
		{Content: "Rejection logged."},
	}

	if _, err := f.orch.ProcessApproval(context.Background(), Decision{
		Suggestion: timesheet.Suggestion{
			ID: "sug-2", User: "sarah@ccg.com", Date: "2025-11-15", Task: "Internal Team Sync",
		},
		Approve:   false,
		DecidedBy: "sarah",
		Reason:    "Not billable",
	}); err != nil {
		t.Fatalf("ProcessApproval: %v", err)
	}

	doc, err := f.ts.Entries(context.Background(), "sarah@ccg.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 0 {
		t.Errorf("rejection wrote timesheet entries: %+v", doc.Entries)
	}
	log, err := f.orch.AuditHistory(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if log.TotalEntries != 1 || log.Entries[0].Action != audit.ActionRejectSuggestion {
		t.Errorf("audit log = %+v", log)
	}
	if log.Entries[0].Reason != "Not billable" {
		t.Errorf("reason = %q", log.Entries[0].Reason)
	}
}

func TestCalculateImpactUsesRevenueAgent(t *testing.T) {
	f := newFixture(t)
	f.revenueLLM.responses = []llm.CompletionResponse{{Content: "weekly loss $5,000"}}

	msg, err := f.orch.CalculateImpact(context.Background(), "sarah@ccg.com", 20, 0)
	if err != nil {
		t.Fatalf("CalculateImpact: %v", err)
	}
	if msg != "weekly loss $5,000" {
		t.Errorf("msg = %q", msg)
	}
	prompt := f.revenueLLM.requests[0].Messages[1].Content
	if !strings.Contains(prompt, "20") || !strings.Contains(prompt, "sarah@ccg.com") {
		t.Errorf("revenue prompt = %q", prompt)
	}
}
