package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// getCalendarEventsTool defines the get_calendar_events MCP tool.
var getCalendarEventsTool = mcp.NewTool("get_calendar_events",
	mcp.WithDescription("Retrieve calendar events for a specific user."),
	mcp.WithString("user_email",
		mcp.Required(),
		mcp.Description("Email address of the user"),
	),
)

// getTimesheetEntriesTool defines the get_timesheet_entries MCP tool.
var getTimesheetEntriesTool = mcp.NewTool("get_timesheet_entries",
	mcp.WithDescription("Retrieve submitted timesheet entries for a specific user."),
	mcp.WithString("user_email",
		mcp.Required(),
		mcp.Description("Email address of the user"),
	),
)

// addTimesheetEntryTool defines the add_timesheet_entry MCP tool.
var addTimesheetEntryTool = mcp.NewTool("add_timesheet_entry",
	mcp.WithDescription("Add an approved entry to the user's timesheet. The entry and its audit record are written together."),
	mcp.WithString("user_email",
		mcp.Required(),
		mcp.Description("Email address of the user"),
	),
	mcp.WithString("date",
		mcp.Required(),
		mcp.Description("Entry date, YYYY-MM-DD"),
	),
	mcp.WithString("start_time",
		mcp.Required(),
		mcp.Description("Start time, HH:MM:SS"),
	),
	mcp.WithString("end_time",
		mcp.Required(),
		mcp.Description("End time, HH:MM:SS"),
	),
	mcp.WithNumber("duration_hours",
		mcp.Required(),
		mcp.Description("Duration in hours"),
	),
	mcp.WithString("task",
		mcp.Required(),
		mcp.Description("Task description"),
	),
	mcp.WithString("project",
		mcp.Required(),
		mcp.Description("Project name"),
	),
	mcp.WithBoolean("billable",
		mcp.Description("Whether the time is billable"),
	),
	mcp.WithString("approved_by",
		mcp.Description("Name of the approver (default system)"),
	),
	mcp.WithString("suggestion_id",
		mcp.Description("ID of the approved suggestion"),
	),
)

// rejectSuggestionTool defines the reject_suggestion MCP tool.
var rejectSuggestionTool = mcp.NewTool("reject_suggestion",
	mcp.WithDescription("Log the rejection of a suggested timesheet entry. The timesheet itself is not modified."),
	mcp.WithString("user_email",
		mcp.Required(),
		mcp.Description("Email address of the user"),
	),
	mcp.WithString("date",
		mcp.Required(),
		mcp.Description("Suggestion date, YYYY-MM-DD"),
	),
	mcp.WithString("task",
		mcp.Required(),
		mcp.Description("Task description of the rejected suggestion"),
	),
	mcp.WithString("reason",
		mcp.Required(),
		mcp.Description("Why the suggestion was rejected"),
	),
	mcp.WithString("rejected_by",
		mcp.Description("Name of the person rejecting (default system)"),
	),
	mcp.WithString("suggestion_id",
		mcp.Description("ID of the rejected suggestion"),
	),
)

// getAuditLogTool defines the get_audit_log MCP tool.
var getAuditLogTool = mcp.NewTool("get_audit_log",
	mcp.WithDescription("Retrieve the most recent audit log entries with totals."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default 100)"),
	),
)
