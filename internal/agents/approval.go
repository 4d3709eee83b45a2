package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ccg-demos/timesleuth/internal/agent"
	"github.com/ccg-demos/timesleuth/internal/approval"
	"github.com/ccg-demos/timesleuth/internal/llm"
)

const approvalInstructions = `You are the Approval Processor for a consulting firm's time and expense system.

You receive a human decision about a suggested timesheet entry and carry it out exactly.

If the decision is an approval, call add_timesheet_entry with the suggestion's details and the approver's name. If the decision is a rejection, call reject_suggestion with the reason given. Never invent or alter entry details; use exactly what the decision contains. Pass along the suggestion_id when one is provided.

You can also answer questions about past decisions using get_audit_log.

After the tool call, confirm what was done in one sentence.`

// NewApprovalAgent creates the approval processing agent. All of its
// tools write through the gateway, so every decision is validated and
// audited the same way regardless of who asked.
func NewApprovalAgent(provider llm.Provider, model string, gateway *approval.Gateway) *agent.Agent {
	addTool := agent.Tool{
		Definition: llm.ToolDefinition{
			Name:        "add_timesheet_entry",
			Description: "Add an approved entry to the user's timesheet.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"user_email": {"type": "string", "description": "The email address of the user"},
					"date": {"type": "string", "description": "Entry date, YYYY-MM-DD"},
					"start_time": {"type": "string", "description": "Start time, HH:MM:SS"},
					"end_time": {"type": "string", "description": "End time, HH:MM:SS"},
					"duration_hours": {"type": "number", "description": "Duration in hours"},
					"task": {"type": "string", "description": "Task description"},
					"project": {"type": "string", "description": "Project name"},
					"billable": {"type": "boolean", "description": "Whether the time is billable"},
					"approved_by": {"type": "string", "description": "Name of the approver"},
					"suggestion_id": {"type": "string", "description": "ID of the approved suggestion"}
				},
				"required": ["user_email", "date", "start_time", "end_time", "duration_hours", "task", "project"]
			}`),
		},
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				UserEmail     string  `json:"user_email"`
				Date          string  `json:"date"`
				StartTime     string  `json:"start_time"`
				EndTime       string  `json:"end_time"`
				DurationHours float64 `json:"duration_hours"`
				Task          string  `json:"task"`
				Project       string  `json:"project"`
				Billable      bool    `json:"billable"`
				ApprovedBy    string  `json:"approved_by"`
				SuggestionID  string  `json:"suggestion_id"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", fmt.Errorf("parsing arguments: %w", err)
			}
			conf, err := gateway.AddTimesheetEntry(ctx, approval.EntryRequest{
				User:          in.UserEmail,
				Date:          in.Date,
				Start:         in.StartTime,
				End:           in.EndTime,
				DurationHours: in.DurationHours,
				Task:          in.Task,
				Project:       in.Project,
				Billable:      in.Billable,
				ApprovedBy:    in.ApprovedBy,
				SuggestionID:  in.SuggestionID,
			})
			if err != nil {
				return "", err
			}
			out, err := json.MarshalIndent(conf, "", "  ")
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
	}

	rejectTool := agent.Tool{
		Definition: llm.ToolDefinition{
			Name:        "reject_suggestion",
			Description: "Log the rejection of a suggested timesheet entry.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"user_email": {"type": "string", "description": "The email address of the user"},
					"date": {"type": "string", "description": "Suggestion date, YYYY-MM-DD"},
					"task": {"type": "string", "description": "Task description of the rejected suggestion"},
					"reason": {"type": "string", "description": "Why the suggestion was rejected"},
					"rejected_by": {"type": "string", "description": "Name of the person rejecting"},
					"suggestion_id": {"type": "string", "description": "ID of the rejected suggestion"}
				},
				"required": ["user_email", "date", "task", "reason"]
			}`),
		},
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				UserEmail    string `json:"user_email"`
				Date         string `json:"date"`
				Task         string `json:"task"`
				Reason       string `json:"reason"`
				RejectedBy   string `json:"rejected_by"`
				SuggestionID string `json:"suggestion_id"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", fmt.Errorf("parsing arguments: %w", err)
			}
			conf, err := gateway.RejectSuggestion(ctx, approval.RejectionRequest{
				User:         in.UserEmail,
				Date:         in.Date,
				Task:         in.Task,
				Reason:       in.Reason,
				RejectedBy:   in.RejectedBy,
				SuggestionID: in.SuggestionID,
			})
			if err != nil {
				return "", err
			}
			out, err := json.MarshalIndent(conf, "", "  ")
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
	}

	auditTool := agent.Tool{
		Definition: llm.ToolDefinition{
			Name:        "get_audit_log",
			Description: "Retrieve the most recent audit log entries.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"limit": {"type": "integer", "description": "Maximum number of entries to return"}
				}
			}`),
		},
		Handler: func(ctx context.Context, args json.RawMessage) (string, error) {
			var in struct {
				Limit int `json:"limit"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", fmt.Errorf("parsing arguments: %w", err)
			}
			log, err := gateway.AuditLog(ctx, in.Limit)
			if err != nil {
				return "", err
			}
			out, err := json.MarshalIndent(log, "", "  ")
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
	}

	return agent.New("Approval Processor", approvalInstructions, provider, model, addTool, rejectTool, auditTool)
}
