package config

import "path/filepath"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:      ProviderOpenAI,
		Model:         "gpt-4o",
		DataDir:       "data",
		TimesheetFile: "timesheet.json",
		CalendarFile:  "calendar.json",
		AuditFile:     "audit_log.json",
		ArchiveFile:   "audit_archive.db",
		BillableRate:  250,
		FirmSize:      50,
		RetentionDays: 0, // keep everything unless archiving is requested
		Server: ServerConfig{
			Port: 8484,
		},
	}
}

// TimesheetPath returns the timesheet document location under the data dir.
func (c *Config) TimesheetPath() string { return filepath.Join(c.DataDir, c.TimesheetFile) }

// CalendarPath returns the calendar document location under the data dir.
func (c *Config) CalendarPath() string { return filepath.Join(c.DataDir, c.CalendarFile) }

// AuditPath returns the audit log location under the data dir.
func (c *Config) AuditPath() string { return filepath.Join(c.DataDir, c.AuditFile) }

// ArchivePath returns the audit archive database location under the data dir.
func (c *Config) ArchivePath() string { return filepath.Join(c.DataDir, c.ArchiveFile) }

// SuggestionsPath returns the pending-suggestions document location under
// the data dir.
func (c *Config) SuggestionsPath() string { return filepath.Join(c.DataDir, "suggestions.json") }
