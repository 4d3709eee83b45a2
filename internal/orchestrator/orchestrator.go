// Package orchestrator coordinates the agent team: fanning analysis out to
// the calendar and timesheet agents, synthesizing suggestions, routing
// approval decisions, and quantifying revenue impact.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ccg-demos/timesleuth/internal/agent"
	"github.com/ccg-demos/timesleuth/internal/agents"
	"github.com/ccg-demos/timesleuth/internal/audit"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

// Step records one agent run for the execution log.
type Step struct {
	Agent        string        `json:"agent"`
	Duration     time.Duration `json:"duration"`
	InputTokens  int           `json:"input_tokens"`
	OutputTokens int           `json:"output_tokens"`
	ToolCalls    int           `json:"tool_calls"`
}

// Analysis is the outcome of one missing-time analysis run.
type Analysis struct {
	User              string                 `json:"user"`
	CalendarAnalysis  string                 `json:"calendar_analysis"`
	TimesheetAnalysis string                 `json:"timesheet_analysis"`
	Summary           string                 `json:"summary"`
	Suggestions       []timesheet.Suggestion `json:"suggestions"`
}

// Decision is a human verdict on a single suggestion.
type Decision struct {
	Suggestion timesheet.Suggestion
	Approve    bool
	DecidedBy  string
	Reason     string // required for rejections
}

// AuditReader is the slice of the write gateway the orchestrator reads
// history through.
type AuditReader interface {
	AuditLog(ctx context.Context, limit int) (*audit.RecentLog, error)
}

// Orchestrator owns the agent team and the shared suggestion recorder.
type Orchestrator struct {
	calendarAgent  *agent.Agent
	timesheetAgent *agent.Agent
	suggestAgent   *agent.Agent
	revenueAgent   *agent.Agent
	approvalAgent  *agent.Agent
	recorder       *agents.SuggestionRecorder
	audits         AuditReader

	mu    sync.Mutex
	steps []Step
}

// New assembles an orchestrator from an already-built agent team.
func New(calendarAgent, timesheetAgent, suggestAgent, revenueAgent, approvalAgent *agent.Agent, recorder *agents.SuggestionRecorder, audits AuditReader) *Orchestrator {
	return &Orchestrator{
		calendarAgent:  calendarAgent,
		timesheetAgent: timesheetAgent,
		suggestAgent:   suggestAgent,
		revenueAgent:   revenueAgent,
		approvalAgent:  approvalAgent,
		recorder:       recorder,
		audits:         audits,
	}
}

// record appends one step to the execution log.
func (o *Orchestrator) record(name string, started time.Time, res *agent.Result) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.steps = append(o.steps, Step{
		Agent:        name,
		Duration:     time.Since(started),
		InputTokens:  res.InputTokens,
		OutputTokens: res.OutputTokens,
		ToolCalls:    res.ToolCalls,
	})
}

// run executes one agent and logs the step.
func (o *Orchestrator) run(ctx context.Context, a *agent.Agent, prompt string) (*agent.Result, error) {
	started := time.Now()
	res, err := a.Run(ctx, prompt)
	if err != nil {
		return nil, err
	}
	o.record(a.Name(), started, res)
	return res, nil
}

// AnalyzeMissingTime runs the calendar and timesheet agents concurrently,
// then hands both analyses to the suggestion agent. Suggestions recorded
// during the run are returned for review; nothing is written to any store.
func (o *Orchestrator) AnalyzeMissingTime(ctx context.Context, user string) (*Analysis, error) {
	var (
		wg           sync.WaitGroup
		calRes       *agent.Result
		tsRes        *agent.Result
		calErr, tsEr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		calRes, calErr = o.run(ctx, o.calendarAgent,
			fmt.Sprintf("Analyze the calendar for %s. Classify every event as billable or non-billable.", user))
	}()
	go func() {
		defer wg.Done()
		tsRes, tsEr = o.run(ctx, o.timesheetAgent,
			fmt.Sprintf("Audit the submitted timesheet for %s. Report all recorded entries and total hours.", user))
	}()
	wg.Wait()

	if calErr != nil {
		return nil, fmt.Errorf("calendar analysis: %w", calErr)
	}
	if tsEr != nil {
		return nil, fmt.Errorf("timesheet audit: %w", tsEr)
	}

	before := len(o.recorder.Suggestions())
	sugRes, err := o.run(ctx, o.suggestAgent, fmt.Sprintf(
		"User: %s\n\nCALENDAR ANALYSIS:\n%s\n\nTIMESHEET AUDIT:\n%s\n\nSuggest timesheet entries for billable calendar time that has no matching entry.",
		user, calRes.Text, tsRes.Text))
	if err != nil {
		return nil, fmt.Errorf("suggestion synthesis: %w", err)
	}

	return &Analysis{
		User:              user,
		CalendarAnalysis:  calRes.Text,
		TimesheetAnalysis: tsRes.Text,
		Summary:           sugRes.Text,
		Suggestions:       o.recorder.Suggestions()[before:],
	}, nil
}

// ProcessApproval routes one human decision through the approval agent,
// which commits it via the write gateway.
func (o *Orchestrator) ProcessApproval(ctx context.Context, d Decision) (string, error) {
	s := d.Suggestion
	var prompt string
	if d.Approve {
		prompt = fmt.Sprintf(
			"%s APPROVED this suggestion. Add it to the timesheet exactly as stated.\n"+
				"suggestion_id: %s\nuser: %s\ndate: %s\nstart: %s\nend: %s\nduration_hours: %g\ntask: %s\nproject: %s\nbillable: %t",
			d.DecidedBy, s.ID, s.User, s.Date, s.Start, s.End, s.DurationHours, s.Task, s.Project, s.Billable)
	} else {
		prompt = fmt.Sprintf(
			"%s REJECTED this suggestion. Log the rejection.\n"+
				"suggestion_id: %s\nuser: %s\ndate: %s\ntask: %s\nreason: %s",
			d.DecidedBy, s.ID, s.User, s.Date, s.Task, d.Reason)
	}

	res, err := o.run(ctx, o.approvalAgent, prompt)
	if err != nil {
		return "", fmt.Errorf("processing decision: %w", err)
	}
	return res.Text, nil
}

// CalculateImpact asks the revenue agent to quantify missingHours of
// unlogged billable time for user. A non-positive rate defers to the
// agent's configured default.
func (o *Orchestrator) CalculateImpact(ctx context.Context, user string, missingHours, rate float64) (string, error) {
	prompt := fmt.Sprintf(
		"Quantify the revenue impact of %g missing billable hours this week for %s.", missingHours, user)
	if rate > 0 {
		prompt += fmt.Sprintf(" Use a billable rate of %g USD per hour.", rate)
	}
	res, err := o.run(ctx, o.revenueAgent, prompt)
	if err != nil {
		return "", fmt.Errorf("revenue analysis: %w", err)
	}
	return res.Text, nil
}

// AuditHistory returns the most recent audit entries.
func (o *Orchestrator) AuditHistory(ctx context.Context, limit int) (*audit.RecentLog, error) {
	return o.audits.AuditLog(ctx, limit)
}

// ExecutionSummary returns a copy of the execution log so far.
func (o *Orchestrator) ExecutionSummary() []Step {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]Step, len(o.steps))
	copy(out, o.steps)
	return out
}
