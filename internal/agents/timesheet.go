package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ccg-demos/timesleuth/internal/agent"
	"github.com/ccg-demos/timesleuth/internal/llm"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

const timesheetInstructions = `You are the Timesheet Audit Specialist for a consulting firm's time and expense system.

Your specialty is reviewing submitted timesheet entries and spotting what is missing or inconsistent.

When auditing a timesheet, provide:
1. A list of all recorded entries with dates, times, and durations.
2. Total recorded hours per day and for the period.
3. Gaps in the working day that have no corresponding entry.
4. Entries whose durations do not match their start and end times.

Use the get_timesheet_entries tool to fetch the entries. Report hours precisely.`

// NewTimesheetAgent creates the timesheet audit agent.
func NewTimesheetAgent(provider llm.Provider, model string, store *timesheet.Store) *agent.Agent {
	tool := agent.Tool{
		Definition: llm.ToolDefinition{
			Name:        "get_timesheet_entries",
			Description: "Retrieve submitted timesheet entries for a specific user.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"user_email": {"type": "string", "description": "The email address of the user"}
				},
				"required": ["user_email"]
			}`),
		},
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				UserEmail string `json:"user_email"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", fmt.Errorf("parsing arguments: %w", err)
			}
			entries, err := store.Entries(ctx, in.UserEmail)
			if err != nil {
				return "", err
			}
			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
	}

	return agent.New("Timesheet Audit Specialist", timesheetInstructions, provider, model, tool)
}
