package cmd

import (
	"context"
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ccg-demos/timesleuth/internal/approval"
	"github.com/ccg-demos/timesleuth/internal/timesheet"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Approve or reject suggested timesheet entries",
	Long: `Walks through the suggestions produced by ` + "`timesleuth analyze`" + `.
Approved entries are committed to the timesheet through the write gateway
together with their audit records; rejections are logged with a reason.`,
	RunE: runReview,
}

func init() {
	reviewCmd.Flags().String("as", "", "name recorded as the approver or rejecter")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s := openStores(cfg)
	queue := timesheet.NewSuggestionQueue(cfg.SuggestionsPath())

	pending, err := queue.Pending(ctx)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		fmt.Println("No pending suggestions. Run `timesleuth analyze` first.")
		return nil
	}

	reviewer, _ := cmd.Flags().GetString("as")
	if reviewer == "" {
		namePrompt := promptui.Prompt{
			Label: "Your name (recorded on each decision)",
			Validate: func(v string) error {
				if v == "" {
					return fmt.Errorf("a name is required")
				}
				return nil
			},
		}
		if reviewer, err = namePrompt.Run(); err != nil {
			return fmt.Errorf("reviewer name: %w", err)
		}
	}

	var approved, rejected, skipped int
	for i, sug := range pending {
		fmt.Printf("\nSuggestion %d of %d\n", i+1, len(pending))
		fmt.Printf("  %s %s-%s  %.1fh  %s (%s)\n",
			sug.Date, sug.Start, sug.End, sug.DurationHours, sug.Task, sug.Project)
		if sug.Rationale != "" {
			fmt.Printf("  %s\n", sug.Rationale)
		}

		decisionPrompt := promptui.Select{
			Label: "Decision",
			Items: []string{"approve", "reject", "skip"},
		}
		_, decision, err := decisionPrompt.Run()
		if err != nil {
			return fmt.Errorf("decision: %w", err)
		}

		switch decision {
		case "approve":
			conf, err := s.gateway.AddTimesheetEntry(ctx, approval.EntryRequest{
				User:          sug.User,
				Date:          sug.Date,
				Start:         sug.Start,
				End:           sug.End,
				DurationHours: sug.DurationHours,
				Task:          sug.Task,
				Project:       sug.Project,
				Billable:      sug.Billable,
				ApprovedBy:    reviewer,
				SuggestionID:  sug.ID,
			})
			if err != nil {
				fmt.Printf("  Could not add entry: %v\n", err)
				skipped++
				continue
			}
			fmt.Printf("  %s\n", conf.Message)
			approved++

		case "reject":
			reasonPrompt := promptui.Prompt{
				Label: "Reason",
				Validate: func(v string) error {
					if v == "" {
						return fmt.Errorf("a reason is required")
					}
					return nil
				},
			}
			reason, err := reasonPrompt.Run()
			if err != nil {
				return fmt.Errorf("rejection reason: %w", err)
			}
			conf, err := s.gateway.RejectSuggestion(ctx, approval.RejectionRequest{
				User:         sug.User,
				Date:         sug.Date,
				Task:         sug.Task,
				Reason:       reason,
				RejectedBy:   reviewer,
				SuggestionID: sug.ID,
			})
			if err != nil {
				fmt.Printf("  Could not log rejection: %v\n", err)
				skipped++
				continue
			}
			fmt.Printf("  %s\n", conf.Message)
			rejected++

		default:
			skipped++
			continue
		}

		if err := queue.Remove(ctx, sug.ID); err != nil {
			return fmt.Errorf("updating suggestion queue: %w", err)
		}
	}

	fmt.Printf("\nDone: %d approved, %d rejected, %d skipped.\n", approved, rejected, skipped)
	return nil
}
