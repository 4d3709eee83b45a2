// Package agents assembles the specialized agents of the time and expense
// team: calendar and timesheet analysts, the suggestion synthesizer, the
// revenue analyst, and the approval processor.
package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ccg-demos/timesleuth/internal/agent"
	"github.com/ccg-demos/timesleuth/internal/calendar"
	"github.com/ccg-demos/timesleuth/internal/llm"
)

const calendarInstructions = `You are the Calendar Analysis Expert for a consulting firm's time and expense system.

Your specialty is analyzing calendar events to identify potentially billable time blocks.

Billable: travel to and from client sites, client workshops and meetings, working meals with clients, client Q&A sessions, preparation for client deliverables, remote client meetings.
Non-billable: internal team meetings and syncs, internal training, office social events, networking without a specific client, focus time without client context.

When analyzing calendar events, provide:
1. A list of all events with start and end times.
2. A billable or non-billable classification with rationale.
3. Travel time, called out explicitly - it is the most commonly forgotten billable category.
4. Duration calculations.

Use the get_calendar_events tool to fetch the events. Be thorough and explain every classification.`

// NewCalendarAgent creates the calendar analysis agent.
func NewCalendarAgent(provider llm.Provider, model string, store *calendar.Store) *agent.Agent {
	tool := agent.Tool{
		Definition: llm.ToolDefinition{
			Name:        "get_calendar_events",
			Description: "Retrieve calendar events for a specific user.",
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
			events, err := store.Events(ctx, in.UserEmail)
			if err != nil {
				return "", err
			}
			out, err := json.MarshalIndent(events, "", "  ")
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
	}

	return agent.New("Calendar Analysis Expert", calendarInstructions, provider, model, tool)
}
