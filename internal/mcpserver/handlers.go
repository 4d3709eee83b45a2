package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ccg-demos/timesleuth/internal/approval"
	"github.com/ccg-demos/timesleuth/internal/audit"
)

// handleGetCalendarEvents returns the calendar events for a user.
func (s *Server) handleGetCalendarEvents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := request.RequireString("user_email")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: user_email"), nil
	}

	events, err := s.calendars.Events(ctx, user)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading calendar: %v", err)), nil
	}

	return jsonResult(events)
}

// handleGetTimesheetEntries returns the submitted timesheet for a user.
func (s *Server) handleGetTimesheetEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := request.RequireString("user_email")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: user_email"), nil
	}

	doc, err := s.timesheets.Entries(ctx, user)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading timesheet: %v", err)), nil
	}

	return jsonResult(doc)
}

// handleAddTimesheetEntry commits an approved entry through the write gateway.
func (s *Server) handleAddTimesheetEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := request.RequireString("user_email")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: user_email"), nil
	}
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: date"), nil
	}
	start, err := request.RequireString("start_time")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: start_time"), nil
	}
	end, err := request.RequireString("end_time")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: end_time"), nil
	}
	duration, err := request.RequireFloat("duration_hours")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: duration_hours"), nil
	}
	task, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: task"), nil
	}
	project, err := request.RequireString("project")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: project"), nil
	}

	conf, err := s.gateway.AddTimesheetEntry(ctx, approval.EntryRequest{
		User:          user,
		Date:          date,
		Start:         start,
		End:           end,
		DurationHours: duration,
		Task:          task,
		Project:       project,
		Billable:      request.GetBool("billable", false),
		ApprovedBy:    request.GetString("approved_by", ""),
		SuggestionID:  request.GetString("suggestion_id", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("adding entry: %v", err)), nil
	}

	return jsonResult(conf)
}

// handleRejectSuggestion logs a rejection through the write gateway.
func (s *Server) handleRejectSuggestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := request.RequireString("user_email")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: user_email"), nil
	}
	date, err := request.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: date"), nil
	}
	task, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: task"), nil
	}
	reason, err := request.RequireString("reason")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: reason"), nil
	}

	conf, err := s.gateway.RejectSuggestion(ctx, approval.RejectionRequest{
		User:         user,
		Date:         date,
		Task:         task,
		Reason:       reason,
		RejectedBy:   request.GetString("rejected_by", ""),
		SuggestionID: request.GetString("suggestion_id", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("logging rejection: %v", err)), nil
	}

	return jsonResult(conf)
}

// handleGetAuditLog returns the most recent audit entries.
func (s *Server) handleGetAuditLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", audit.DefaultLimit)
	if limit <= 0 {
		limit = audit.DefaultLimit
	}

	log, err := s.gateway.AuditLog(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading audit log: %v", err)), nil
	}

	return jsonResult(log)
}

// jsonResult renders v as an indented JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
