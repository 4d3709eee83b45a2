package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ccg-demos/timesleuth/internal/agent"
	"github.com/ccg-demos/timesleuth/internal/llm"
	"github.com/ccg-demos/timesleuth/internal/revenue"
)

const revenueInstructions = `You are the Revenue Impact Analyst for a consulting firm's time and expense system.

You quantify what unlogged billable hours cost the firm. Given a number of missing hours, use the calculate_revenue_impact tool and then present the result as a short business case:
1. Weekly revenue lost for this consultant.
2. Annualized impact for this consultant.
3. Firm-wide annualized impact if the pattern holds across all consultants.

Present amounts in USD with thousands separators. Close with one sentence on why consistent time capture matters.`

// NewRevenueAgent creates the revenue impact agent. Zero rate or firm
// size in a tool call falls back to the configured defaults.
func NewRevenueAgent(provider llm.Provider, model string, defaultRate float64, defaultFirmSize int) *agent.Agent {
	tool := agent.Tool{
		Definition: llm.ToolDefinition{
			Name:        "calculate_revenue_impact",
			Description: "Calculate the revenue impact of missing billable hours.",
			Parameters: json.RawMessage(`{
				"type": "object",
				"properties": {
					"user_email": {"type": "string", "description": "The email address of the user"},
					"missing_hours": {"type": "number", "description": "Unlogged billable hours for the week"},
					"billable_rate": {"type": "number", "description": "Hourly billable rate in USD"},
					"firm_size": {"type": "integer", "description": "Number of consultants at the firm"}
				},
				"required": ["user_email", "missing_hours"]
			}`),
		},
		Handler: func(_ context.Context, args json.RawMessage) (string, error) {
			var in struct {
				UserEmail    string  `json:"user_email"`
				MissingHours float64 `json:"missing_hours"`
				BillableRate float64 `json:"billable_rate"`
				FirmSize     int     `json:"firm_size"`
			}
			if err := json.Unmarshal(args, &in); err != nil {
				return "", fmt.Errorf("parsing arguments: %w", err)
			}
			rate := in.BillableRate
			if rate <= 0 {
				rate = defaultRate
			}
			size := in.FirmSize
			if size <= 0 {
				size = defaultFirmSize
			}
			impact := revenue.Calculate(in.UserEmail, in.MissingHours, rate, size)
			out, err := json.MarshalIndent(impact, "", "  ")
			if err != nil {
				return "", err
			}
			return string(out), nil
		},
	}

	return agent.New("Revenue Impact Analyst", revenueInstructions, provider, model, tool)
}
