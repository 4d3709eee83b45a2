package cmd

import (
	"fmt"

	"github.com/ccg-demos/timesleuth/internal/agents"
	"github.com/ccg-demos/timesleuth/internal/approval"
	"github.com/ccg-demos/timesleuth/internal/audit"
	"github.com/ccg-demos/timesleuth/internal/calendar"
	"github.com/ccg-demos/timesleuth/internal/config"
	"github.com/ccg-demos/timesleuth/internal/llm"
	"github.com/ccg-demos/timesleuth/internal/orchestrator"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

// stores bundles the document stores and write gateway built from config.
type stores struct {
	timesheets *timesheet.Store
	calendars  *calendar.Store
	audits     *audit.Store
	gateway    *approval.Gateway
}

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `timesleuth init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openStores builds the document stores and write gateway from config.
func openStores(cfg *config.Config) *stores {
	ts := timesheet.NewStore(cfg.TimesheetPath())
	audits := audit.NewStore(cfg.AuditPath())
	return &stores{
		timesheets: ts,
		calendars:  calendar.NewStore(cfg.CalendarPath()),
		audits:     audits,
		gateway:    approval.NewGateway(ts, audits),
	}
}

// createLLMProviderFromConfig creates an LLM provider based on config settings.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	return llm.NewProvider(string(cfg.Provider), cfg.Model, cfg.AzureEndpoint, cfg.AzureDeployment)
}

// buildOrchestrator assembles the agent team over the given stores.
func buildOrchestrator(cfg *config.Config, s *stores) (*orchestrator.Orchestrator, *agents.SuggestionRecorder, error) {
	provider, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating LLM provider: %w", err)
	}

	recorder := agents.NewSuggestionRecorder()
	orch := orchestrator.New(
		agents.NewCalendarAgent(provider, cfg.Model, s.calendars),
		agents.NewTimesheetAgent(provider, cfg.Model, s.timesheets),
		agents.NewSuggestionAgent(provider, cfg.Model, recorder),
		agents.NewRevenueAgent(provider, cfg.Model, cfg.BillableRate, cfg.FirmSize),
		agents.NewApprovalAgent(provider, cfg.Model, s.gateway),
		recorder,
		s.gateway,
	)
	return orch, recorder, nil
}

// resolveUser picks the user from the flag or falls back to config.
func resolveUser(flagUser string, cfg *config.Config) (string, error) {
	if flagUser != "" {
		return flagUser, nil
	}
	if cfg.User != "" {
		return cfg.User, nil
	}
	return "", fmt.Errorf("no user given: pass --user or set user in %s", cfgFile)
}
