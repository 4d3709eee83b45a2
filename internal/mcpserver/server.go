// Package mcpserver exposes the timesheet stores and write gateway as MCP
// tools over stdio so external agent hosts can drive the same workflow.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ccg-demos/timesleuth/internal/approval"
	"github.com/ccg-demos/timesleuth/internal/calendar"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the timesheet tools.
type Server struct {
	timesheets *timesheet.Store
	calendars  *calendar.Store
	gateway    *approval.Gateway
	mcp        *server.MCPServer
}

// NewServer creates a new MCP server over the given stores and gateway.
func NewServer(timesheets *timesheet.Store, calendars *calendar.Store, gateway *approval.Gateway) *Server {
	s := &Server{
		timesheets: timesheets,
		calendars:  calendars,
		gateway:    gateway,
	}

	s.mcp = server.NewMCPServer(
		"timesleuth",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(getCalendarEventsTool, s.handleGetCalendarEvents)
	s.mcp.AddTool(getTimesheetEntriesTool, s.handleGetTimesheetEntries)
	s.mcp.AddTool(addTimesheetEntryTool, s.handleAddTimesheetEntry)
	s.mcp.AddTool(rejectSuggestionTool, s.handleRejectSuggestion)
	s.mcp.AddTool(getAuditLogTool, s.handleGetAuditLog)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
