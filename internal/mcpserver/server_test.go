package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ccg-demos/timesleuth/internal/approval"
	"github.com/ccg-demos/timesleuth/internal/audit"
	"github.com/ccg-demos/timesleuth/internal/calendar"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

func newTestMCPServer(t *testing.T) (*Server, *timesheet.Store, *audit.Store) {
	t.Helper()
	dir := t.TempDir()

	calendarDoc := `[
		{"subject": "Flight to Vancouver", "start": "2025-11-13T09:00:00", "end": "2025-11-13T11:00:00", "attendees": ["sarah@ccg.com"]}
	]`
	if err := os.WriteFile(filepath.Join(dir, "calendar.json"), []byte(calendarDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	ts := timesheet.NewStore(filepath.Join(dir, "timesheet.json"))
	cal := calendar.NewStore(filepath.Join(dir, "calendar.json"))
	audits := audit.NewStore(filepath.Join(dir, "audit_log.json"))
	gw := approval.NewGateway(ts, audits)

	return NewServer(ts, cal, gw), ts, audits
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestToolDefinitions(t *testing.T) {
	// Verify tool names and descriptions.
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"get_calendar_events", getCalendarEventsTool, "get_calendar_events"},
		{"get_timesheet_entries", getTimesheetEntriesTool, "get_timesheet_entries"},
		{"add_timesheet_entry", addTimesheetEntryTool, "add_timesheet_entry"},
		{"reject_suggestion", rejectSuggestionTool, "reject_suggestion"},
		{"get_audit_log", getAuditLogTool, "get_audit_log"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv, _, _ := newTestMCPServer(t)

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
}

func TestHandleGetCalendarEvents(t *testing.T) {
	srv, _, _ := newTestMCPServer(t)
	ctx := context.Background()

	t.Run("events for user", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"user_email": "sarah@ccg.com",
		}

		result, err := srv.handleGetCalendarEvents(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if !strings.Contains(textContent(t, result), "Flight to Vancouver") {
			t.Error("result missing the user's event")
		}
	})

	t.Run("missing user_email", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGetCalendarEvents(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing user_email")
		}
	})
}

func TestHandleAddTimesheetEntry(t *testing.T) {
	srv, ts, audits := newTestMCPServer(t)
	ctx := context.Background()

	t.Run("valid entry", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"user_email":     "sarah@ccg.com",
			"date":           "2025-11-13",
			"start_time":     "09:00:00",
			"end_time":       "11:00:00",
			"duration_hours": 2.0,
			"task":           "Flight to Vancouver",
			"project":        "VanTech Implementation",
			"billable":       true,
			"approved_by":    "sarah",
			"suggestion_id":  "sug-1",
		}

		result, err := srv.handleAddTimesheetEntry(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}

		doc, err := ts.Entries(ctx, "sarah@ccg.com")
		if err != nil {
			t.Fatal(err)
		}
		if len(doc.Entries) != 1 || doc.Entries[0].Task != "Flight to Vancouver" {
			t.Errorf("entries = %+v", doc.Entries)
		}

		log, err := audits.ReadRecent(ctx, 10)
		if err != nil {
			t.Fatal(err)
		}
		if log.TotalEntries != 1 || log.Entries[0].SuggestionID != "sug-1" {
			t.Errorf("audit log = %+v", log)
		}
	})

	t.Run("missing duration", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"user_email": "sarah@ccg.com",
			"date":       "2025-11-13",
			"start_time": "09:00:00",
			"end_time":   "11:00:00",
			"task":       "Flight to Vancouver",
			"project":    "VanTech Implementation",
		}

		result, err := srv.handleAddTimesheetEntry(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing duration_hours")
		}
	})

	t.Run("invalid times rejected", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"user_email":     "sarah@ccg.com",
			"date":           "2025-11-13",
			"start_time":     "11:00:00",
			"end_time":       "09:00:00",
			"duration_hours": 2.0,
			"task":           "Flight to Vancouver",
			"project":        "VanTech Implementation",
		}

		result, err := srv.handleAddTimesheetEntry(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for end before start")
		}
	})
}

func TestHandleRejectSuggestion(t *testing.T) {
	srv, ts, audits := newTestMCPServer(t)
	ctx := context.Background()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{
		"user_email":  "sarah@ccg.com",
		"date":        "2025-11-15",
		"task":        "Internal Team Sync",
		"reason":      "Not billable",
		"rejected_by": "sarah",
	}

	result, err := srv.handleRejectSuggestion(ctx, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %v", result.Content)
	}

	// The timesheet must be untouched; only the audit log grows.
	doc, err := ts.Entries(ctx, "sarah@ccg.com")
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Entries) != 0 {
		t.Errorf("rejection wrote timesheet entries: %+v", doc.Entries)
	}
	log, err := audits.ReadRecent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if log.TotalEntries != 1 || log.Entries[0].Action != audit.ActionRejectSuggestion {
		t.Errorf("audit log = %+v", log)
	}
}

func TestHandleGetAuditLog(t *testing.T) {
	srv, _, audits := newTestMCPServer(t)
	ctx := context.Background()

	t.Run("empty log", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGetAuditLog(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		if !strings.Contains(textContent(t, result), `"total_entries": 0`) {
			t.Errorf("result = %s", textContent(t, result))
		}
	})

	t.Run("limit applies", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			if err := audits.Append(ctx, audit.Entry{
				Action: audit.ActionRejectSuggestion,
				User:   "sarah@ccg.com",
				Reason: "Not billable",
			}); err != nil {
				t.Fatal(err)
			}
		}

		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"limit": 2,
		}

		result, err := srv.handleGetAuditLog(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := textContent(t, result)
		if !strings.Contains(text, `"total_entries": 3`) || !strings.Contains(text, `"returned_entries": 2`) {
			t.Errorf("result = %s", text)
		}
	})
}
