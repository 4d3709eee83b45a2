package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccg-demos/timesleuth/internal/progress"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Find unlogged billable time by comparing calendar and timesheet",
	Long: `Runs the agent workflow: the calendar and timesheet analysts work in
parallel, then the suggester proposes entries for billable time that has
no matching timesheet entry. Suggestions are printed for review; nothing
is written until they are approved with ` + "`timesleuth review`" + `.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("user", "", "user email (overrides config)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	flagUser, _ := cmd.Flags().GetString("user")
	user, err := resolveUser(flagUser, cfg)
	if err != nil {
		return err
	}

	s := openStores(cfg)
	orch, _, err := buildOrchestrator(cfg, s)
	if err != nil {
		return err
	}

	reporter := progress.NewReporter()
	reporter.Start(2)
	reporter.Update(1, "Analyzing calendar and timesheet")

	analysis, err := orch.AnalyzeMissingTime(ctx, user)
	if err != nil {
		reporter.Finish()
		return err
	}
	reporter.Update(2, "Synthesizing suggestions")
	reporter.Finish()

	fmt.Printf("\n=== Calendar analysis ===\n%s\n", analysis.CalendarAnalysis)
	fmt.Printf("\n=== Timesheet audit ===\n%s\n", analysis.TimesheetAnalysis)
	fmt.Printf("\n=== Summary ===\n%s\n", analysis.Summary)

	if len(analysis.Suggestions) == 0 {
		fmt.Println("\nNo missing time found.")
	} else {
		queue := timesheet.NewSuggestionQueue(cfg.SuggestionsPath())
		if err := queue.Add(ctx, analysis.Suggestions...); err != nil {
			return fmt.Errorf("saving suggestions: %w", err)
		}
		fmt.Printf("\n%d suggested entries:\n", len(analysis.Suggestions))
		for i, sug := range analysis.Suggestions {
			fmt.Printf("  %d. %s %s-%s  %.1fh  %s (%s)\n",
				i+1, sug.Date, sug.Start, sug.End, sug.DurationHours, sug.Task, sug.Project)
			if sug.Rationale != "" {
				fmt.Printf("     %s\n", sug.Rationale)
			}
		}
		fmt.Println("\nRun `timesleuth review` to approve or reject these suggestions.")
	}

	if verbose {
		for _, step := range orch.ExecutionSummary() {
			fmt.Fprintf(os.Stderr, "%s: %s, %d tool calls, %d/%d tokens\n",
				step.Agent, step.Duration.Round(time.Millisecond),
				step.ToolCalls, step.InputTokens, step.OutputTokens)
		}
		fmt.Fprintf(os.Stderr, "Total: %s\n", time.Since(start).Round(time.Millisecond))
	}
	return nil
}
