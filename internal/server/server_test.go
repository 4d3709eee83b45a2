package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ccg-demos/timesleuth/internal/agents"
	"github.com/ccg-demos/timesleuth/internal/approval"
	"github.com/ccg-demos/timesleuth/internal/audit"
	"github.com/ccg-demos/timesleuth/internal/calendar"
	"github.com/ccg-demos/timesleuth/internal/llm"
	"github.com/ccg-demos/timesleuth/internal/orchestrator"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

// scriptedProvider returns canned responses in order.
type scriptedProvider struct {
	mu        sync.Mutex
	responses []llm.CompletionResponse
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Complete(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.responses) == 0 {
		return &llm.CompletionResponse{Content: "done"}, nil
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return &resp, nil
}

func newTestServer(t *testing.T, orch *orchestrator.Orchestrator) (*Server, *timesheet.Store, *approval.Gateway) {
	t.Helper()
	dir := t.TempDir()
	ts := timesheet.NewStore(filepath.Join(dir, "timesheet.json"))
	cal := calendar.NewStore(filepath.Join(dir, "calendar.json"))
	audits := audit.NewStore(filepath.Join(dir, "audit_log.json"))
	gw := approval.NewGateway(ts, audits)
	return New(Config{Port: 0}, ts, cal, audits, gw, orch), ts, gw
}

func TestHealthCheck(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	dir := t.TempDir()
	ts := timesheet.NewStore(filepath.Join(dir, "timesheet.json"))
	cal := calendar.NewStore(filepath.Join(dir, "calendar.json"))
	audits := audit.NewStore(filepath.Join(dir, "audit_log.json"))
	srv := New(Config{Port: 0, AllowAll: true}, ts, cal, audits, approval.NewGateway(ts, audits), nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestFeatureRoutesAreRegistered(t *testing.T) {
	srv, _, gw := newTestServer(t, nil)

	// Write through the gateway, then read back through the API.
	if _, err := gw.AddTimesheetEntry(context.Background(), approval.EntryRequest{
		User: "sarah@ccg.com", Date: "2025-11-13",
		Start: "09:00:00", End: "11:00:00", DurationHours: 2.0,
		Task: "Flight to Vancouver", Project: "VanTech Implementation",
		Billable: true, ApprovedBy: "sarah",
	}); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("GET", "/api/timesheet?user=sarah@ccg.com", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/timesheet: %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Flight to Vancouver") {
		t.Errorf("timesheet response missing entry: %s", w.Body.String())
	}

	req = httptest.NewRequest("GET", "/api/audit?limit=10", nil)
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/audit: %d", w.Code)
	}
	var log audit.RecentLog
	if err := json.Unmarshal(w.Body.Bytes(), &log); err != nil {
		t.Fatal(err)
	}
	if log.TotalEntries != 1 {
		t.Errorf("total_entries = %d, want 1", log.TotalEntries)
	}
}

func TestAnalyzeWithoutOrchestratorReturns503(t *testing.T) {
	srv, _, _ := newTestServer(t, nil)

	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"user":"sarah@ccg.com"}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestAnalyzeRunsWorkflow(t *testing.T) {
	dir := t.TempDir()
	ts := timesheet.NewStore(filepath.Join(dir, "timesheet.json"))
	cal := calendar.NewStore(filepath.Join(dir, "calendar.json"))
	audits := audit.NewStore(filepath.Join(dir, "audit_log.json"))
	gw := approval.NewGateway(ts, audits)

	recorder := agents.NewSuggestionRecorder()
	calLLM := &scriptedProvider{responses: []llm.CompletionResponse{{Content: "calendar findings"}}}
	tsLLM := &scriptedProvider{responses: []llm.CompletionResponse{{Content: "timesheet findings"}}}
	sugLLM := &scriptedProvider{responses: []llm.CompletionResponse{{Content: "no gaps"}}}
	orch := orchestrator.New(
		agents.NewCalendarAgent(calLLM, "gpt-4o", cal),
		agents.NewTimesheetAgent(tsLLM, "gpt-4o", ts),
		agents.NewSuggestionAgent(sugLLM, "gpt-4o", recorder),
		agents.NewRevenueAgent(&scriptedProvider{}, "gpt-4o", 250, 50),
		agents.NewApprovalAgent(&scriptedProvider{}, "gpt-4o", gw),
		recorder,
		gw,
	)
	srv := New(Config{Port: 0}, ts, cal, audits, gw, orch)

	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"user":"sarah@ccg.com"}`))
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var analysis orchestrator.Analysis
	if err := json.Unmarshal(w.Body.Bytes(), &analysis); err != nil {
		t.Fatal(err)
	}
	if analysis.CalendarAnalysis != "calendar findings" || analysis.Summary != "no gaps" {
		t.Errorf("analysis = %+v", analysis)
	}
}
