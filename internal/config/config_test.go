package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider %q, got %q", ProviderOpenAI, cfg.Provider)
	}
	if cfg.Model != "gpt-4o" {
		t.Errorf("expected default model gpt-4o, got %q", cfg.Model)
	}
	if cfg.BillableRate != 250 {
		t.Errorf("expected default billable_rate 250, got %v", cfg.BillableRate)
	}
	if cfg.FirmSize != 50 {
		t.Errorf("expected default firm_size 50, got %d", cfg.FirmSize)
	}
	if cfg.Server.Port != 8484 {
		t.Errorf("expected default port 8484, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.timesleuth.yml")

	original := DefaultConfig()
	original.Provider = ProviderAzure
	original.Model = "gpt-4o"
	original.AzureEndpoint = "https://example.openai.azure.com"
	original.AzureDeployment = "gpt-4o"
	original.User = "sarah@ccg.com"
	original.BillableRate = 325.5
	original.RetentionDays = 90

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.AzureEndpoint != original.AzureEndpoint {
		t.Errorf("azure_endpoint: got %q, want %q", loaded.AzureEndpoint, original.AzureEndpoint)
	}
	if loaded.User != original.User {
		t.Errorf("user: got %q, want %q", loaded.User, original.User)
	}
	if loaded.BillableRate != original.BillableRate {
		t.Errorf("billable_rate: got %f, want %f", loaded.BillableRate, original.BillableRate)
	}
	if loaded.RetentionDays != original.RetentionDays {
		t.Errorf("retention_days: got %d, want %d", loaded.RetentionDays, original.RetentionDays)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected defaults, got provider %q", cfg.Provider)
	}
}

func TestEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatal(err)
	}

	os.Setenv("TIMESLEUTH_USER", "mike@ccg.com")
	os.Setenv("TIMESLEUTH_SERVER__PORT", "9000")
	defer os.Unsetenv("TIMESLEUTH_USER")
	defer os.Unsetenv("TIMESLEUTH_SERVER__PORT")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.User != "mike@ccg.com" {
		t.Errorf("user: got %q, want env override", cfg.User)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("port: got %d, want env override 9000", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"missing provider", func(c *Config) { c.Provider = "" }, true},
		{"unknown provider", func(c *Config) { c.Provider = "anthropic" }, true},
		{"missing model", func(c *Config) { c.Model = "" }, true},
		{"azure without endpoint", func(c *Config) { c.Provider = ProviderAzure }, true},
		{"negative rate", func(c *Config) { c.BillableRate = -1 }, true},
		{"negative retention", func(c *Config) { c.RetentionDays = -1 }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDocumentPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "/var/lib/timesleuth"

	if got := cfg.TimesheetPath(); got != filepath.Join("/var/lib/timesleuth", "timesheet.json") {
		t.Errorf("TimesheetPath() = %q", got)
	}
	if got := cfg.ArchivePath(); got != filepath.Join("/var/lib/timesleuth", "audit_archive.db") {
		t.Errorf("ArchivePath() = %q", got)
	}
}
