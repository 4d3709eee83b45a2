package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccg-demos/timesleuth/internal/revenue"
)

var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Quantify the revenue impact of missing billable hours",
	Long: `Translates unlogged billable hours into weekly, annual, and firm-wide
revenue figures. With an LLM provider configured the revenue agent writes
a short business case; otherwise the raw calculation is printed.`,
	RunE: runImpact,
}

func init() {
	impactCmd.Flags().String("user", "", "user email (overrides config)")
	impactCmd.Flags().Float64("hours", 0, "missing billable hours (required)")
	impactCmd.Flags().Float64("rate", 0, "billable rate in USD (overrides config)")
	impactCmd.Flags().Bool("json", false, "print the raw calculation as JSON")
	rootCmd.AddCommand(impactCmd)
}

func runImpact(cmd *cobra.Command, args []string) error {
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

	hours, _ := cmd.Flags().GetFloat64("hours")
	if hours <= 0 {
		return fmt.Errorf("--hours must be a positive number")
	}
	rate, _ := cmd.Flags().GetFloat64("rate")
	if rate <= 0 {
		rate = cfg.BillableRate
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if jsonOutput {
		impact := revenue.Calculate(user, hours, rate, cfg.FirmSize)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(impact)
	}

	s := openStores(cfg)
	orch, _, err := buildOrchestrator(cfg, s)
	if err != nil {
		// Without a provider the raw numbers are still useful.
		fmt.Fprintf(os.Stderr, "Warning: %v; printing raw calculation\n", err)
		printImpact(revenue.Calculate(user, hours, rate, cfg.FirmSize))
		return nil
	}

	summary, err := orch.CalculateImpact(ctx, user, hours, rate)
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func printImpact(i revenue.Impact) {
	fmt.Printf("Missing hours:         %.1f\n", i.MissingHours)
	fmt.Printf("Billable rate:         $%.2f/h\n", i.BillableRate)
	fmt.Printf("Weekly revenue lost:   $%.2f\n", i.WeeklyRevenueLost)
	fmt.Printf("Annual per consultant: $%.2f\n", i.AnnualImpactPerConsultant)
	fmt.Printf("Firm-wide annual:      $%.2f (%d consultants)\n", i.FirmAnnualImpact, i.FirmSize)
}
