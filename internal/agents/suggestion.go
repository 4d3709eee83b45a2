package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ccg-demos/timesleuth/internal/agent"
	"github.com/ccg-demos/timesleuth/internal/llm"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

const suggestionInstructions = `You are the Timesheet Entry Suggester for a consulting firm's time and expense system.

You receive a calendar analysis and a timesheet audit for the same user and week. Your job is to find billable calendar events that have no matching timesheet entry and propose entries for them.

For each missing billable block, call the suggest_timesheet_entry tool with the exact date, start and end times, duration in hours, a concise task description, the project name, and a one-sentence rationale referencing the calendar event.

Rules:
- Only suggest entries for events the calendar analysis classified as billable.
- Never suggest an entry that overlaps a recorded timesheet entry.
- Duration must match the event's start and end times.
- Travel time is billable and frequently missing. Check for it specifically.

After recording every suggestion, summarize what you suggested and why.`

// SuggestionRecorder collects the suggestions an agent run produces.
// Each recorded suggestion gets a unique ID that follows it through
// approval or rejection into the audit trail.
type SuggestionRecorder struct {
	mu          sync.Mutex
	suggestions []timesheet.Suggestion
	now         func() time.Time
}

// NewSuggestionRecorder creates an empty recorder.
func NewSuggestionRecorder() *SuggestionRecorder {
	return &SuggestionRecorder{now: time.Now}
}

// Record assigns an ID and timestamp to s and stores it.
func (r *SuggestionRecorder) Record(s timesheet.Suggestion) timesheet.Suggestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.ID = uuid.NewString()
	s.SuggestedAt = r.now()
	r.suggestions = append(r.suggestions, s)
	return s
}

// Suggestions returns a copy of everything recorded so far.
func (r *SuggestionRecorder) Suggestions() []timesheet.Suggestion {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]timesheet.Suggestion, len(r.suggestions))
	copy(out, r.suggestions)
	return out
}

// NewSuggestionAgent creates the suggestion synthesis agent. Suggestions
// land in recorder, not in any store; they are proposals awaiting review.
func NewSuggestionAgent(provider llm.Provider, model string, recorder *SuggestionRecorder) *agent.Agent {
	tool := agent.Tool{
		Definition: llm.ToolDefinition{
			Name:        "suggest_timesheet_entry",
			Description: "Record a suggested timesheet entry for later review.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"user_email": {"type": "string", "description": "The email address of the user"},
					"date": {"type": "string", "description": "Entry date, YYYY-MM-DD"},
					"start_time": {"type": "string", "description": "Start time, HH:MM:SS"},
					"end_time": {"type": "string", "description": "End time, HH:MM:SS"},
					"duration_hours": {"type": "number", "description": "Duration in hours"},
					"task": {"type": "string", "description": "Short task description"},
					"project": {"type": "string", "description": "Project name"},
					"billable": {"type": "boolean", "description": "Whether the time is billable"},
					"rationale": {"type": "string", "description": "Why this entry is being suggested"}
				},
				"required": ["user_email", "date", "start_time", "end_time", "duration_hours", "task", "project"]
			}`),
		},
		Handler: func(_ context.Context, args json.RawMessage) (string, error) {
			var in struct {
				UserEmail     string  `json:"user_email"`
				Date          string  `json:"date"`
				StartTime     string  `json:"start_time"`
				EndTime       string  `json:"end_time"`
				DurationHours float64 `json:"duration_hours"`
				Task          string  `json:"task"`
				Project       string  `json:"project"`
				Billable      bool    `json:"billable"`
				Rationale     string  `json:"rationale"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", fmt.Errorf("parsing arguments: %w", err)
			}
			recorded := recorder.Record(timesheet.Suggestion{
				User:          in.UserEmail,
				Date:          in.Date,
				Start:         in.StartTime,
				End:           in.EndTime,
				DurationHours: in.DurationHours,
				Task:          in.Task,
				Project:       in.Project,
				Billable:      in.Billable,
				Rationale:     in.Rationale,
			})
			out, err := json.Marshal(map[string]string{
				"status":        "recorded",
				"suggestion_id": recorded.ID,
			})
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
	}

	return agent.New("Timesheet Entry Suggester", suggestionInstructions, provider, model, tool)
}
