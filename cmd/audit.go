package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccg-demos/timesleuth/internal/audit"
	"github.com/ccg-demos/timesleuth/internal/db"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the most recent audit log entries",
	RunE:  runAudit,
}

var auditArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move audit entries older than the retention window to the archive database",
	RunE:  runAuditArchive,
}

func init() {
	auditCmd.Flags().Int("limit", audit.DefaultLimit, "maximum entries to show")
	auditArchiveCmd.Flags().Int("days", 0, "retention window in days (overrides config)")
	auditCmd.AddCommand(auditArchiveCmd)
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	s := openStores(cfg)
	log, err := s.audits.ReadRecent(ctx, limit)
	if err != nil {
		return err
	}

	fmt.Printf("%d audit entries (%d shown)\n", log.TotalEntries, log.ReturnedEntries)
	for _, e := range log.Entries {
		switch e.Action {
		case audit.ActionAddTimesheetEntry:
			if e.Entry == nil {
				fmt.Printf("  %s  %s  %s  approved by %s\n",
					e.Timestamp.Format(time.RFC3339), e.Action, e.User, e.ApprovedBy)
				continue
			}
			fmt.Printf("  %s  %s  %s  %.1fh %s approved by %s\n",
				e.Timestamp.Format(time.RFC3339), e.Action, e.User,
				e.Entry.DurationHours, e.Entry.Task, e.ApprovedBy)
		case audit.ActionRejectSuggestion:
			fmt.Printf("  %s  %s  %s  %s rejected by %s: %s\n",
				e.Timestamp.Format(time.RFC3339), e.Action, e.User,
				e.Task, e.RejectedBy, e.Reason)
		default:
			fmt.Printf("  %s  %s  %s\n", e.Timestamp.Format(time.RFC3339), e.Action, e.User)
		}
	}
	return nil
}

func runAuditArchive(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	days, _ := cmd.Flags().GetInt("days")
	if days <= 0 {
		days = cfg.RetentionDays
	}
	if days <= 0 {
		return fmt.Errorf("no retention window: pass --days or set retention_days in %s", cfgFile)
	}

	database, err := db.Open(cfg.ArchivePath())
	if err != nil {
		return fmt.Errorf("opening archive database: %w", err)
	}
	defer database.Close()

	s := openStores(cfg)
	archiver := audit.NewArchiver(s.audits, database)

	cutoff := time.Now().AddDate(0, 0, -days)
	moved, err := archiver.ArchiveBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	fmt.Printf("Archived %d audit entries older than %s to %s\n",
		moved, cutoff.Format("2006-01-02"), cfg.ArchivePath())
	return nil
}
