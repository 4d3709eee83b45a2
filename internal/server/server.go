// Package server exposes the timesheet assistant over HTTP: document
// reads, gateway writes, and the analysis workflow.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ccg-demos/timesleuth/internal/approval"
	"github.com/ccg-demos/timesleuth/internal/audit"
	"github.com/ccg-demos/timesleuth/internal/calendar"
	"github.com/ccg-demos/timesleuth/internal/orchestrator"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server serves the timesheet assistant API.
type Server struct {
	cfg        Config
	timesheets *timesheet.Store
	calendars  *calendar.Store
	audits     *audit.Store
	gateway    *approval.Gateway
	orch       *orchestrator.Orchestrator
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over the given stores and workflow. orch may be
// nil when no LLM provider is configured; the analysis endpoints then
// return 503 and the document and gateway endpoints keep working.
func New(cfg Config, timesheets *timesheet.Store, calendars *calendar.Store, audits *audit.Store, gateway *approval.Gateway, orch *orchestrator.Orchestrator) *Server {
	s := &Server{
		cfg:        cfg,
		timesheets: timesheets,
		calendars:  calendars,
		audits:     audits,
		gateway:    gateway,
		orch:       orch,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	timesheet.RegisterRoutes(r, s.timesheets)
	calendar.RegisterRoutes(r, s.calendars)
	audit.RegisterRoutes(r, s.audits)
	approval.RegisterRoutes(r, s.gateway)

	r.Post("/api/analyze", s.handleAnalyze)
	r.Post("/api/impact", s.handleImpact)

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.orch == nil {
		writeError(w, http.StatusServiceUnavailable, "no LLM provider configured")
		return
	}
	var req struct {
		User string `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.User == "" {
		writeError(w, http.StatusBadRequest, "body must be a JSON object with a user field")
		return
	}
	analysis, err := s.orch.AnalyzeMissingTime(r.Context(), req.User)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	if s.orch == nil {
		writeError(w, http.StatusServiceUnavailable, "no LLM provider configured")
		return
	}
	var req struct {
		User         string  `json:"user"`
		MissingHours float64 `json:"missing_hours"`
		BillableRate float64 `json:"billable_rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.User == "" {
		writeError(w, http.StatusBadRequest, "body must be a JSON object with user and missing_hours")
		return
	}
	summary, err := s.orch.CalculateImpact(r.Context(), req.User, req.MissingHours, req.BillableRate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("timesleuth server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
