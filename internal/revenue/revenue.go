// Package revenue translates missing billable hours into financial impact.
package revenue

// Defaults used when the caller does not override them.
const (
	DefaultBillableRate = 250.0
	DefaultFirmSize     = 50
	weeksPerYear        = 52
)

// Impact is the result of a revenue impact calculation. Field names match
// the payload returned to agents and API clients.
type Impact struct {
	User                      string  `json:"user"`
	MissingHours              float64 `json:"missing_hours"`
	BillableRate              float64 `json:"billable_rate"`
	WeeklyRevenueLost         float64 `json:"weekly_revenue_lost"`
	AnnualImpactPerConsultant float64 `json:"annual_impact_per_consultant"`
	FirmSize                  int     `json:"firm_size"`
	FirmAnnualImpact          float64 `json:"firm_annual_impact"`
	Currency                  string  `json:"currency"`
}

// Calculate computes the weekly, annual, and firm-wide revenue impact of
// the given missing hours. Zero rate and firm size fall back to defaults.
func Calculate(user string, missingHours, billableRate float64, firmSize int) Impact {
	if billableRate <= 0 {
		billableRate = DefaultBillableRate
	}
	if firmSize <= 0 {
		firmSize = DefaultFirmSize
	}

	weekly := missingHours * billableRate
	annual := weekly * weeksPerYear

	return Impact{
		User:                      user,
		MissingHours:              missingHours,
		BillableRate:              billableRate,
		WeeklyRevenueLost:         weekly,
		AnnualImpactPerConsultant: annual,
		FirmSize:                  firmSize,
		FirmAnnualImpact:          annual * float64(firmSize),
		Currency:                  "USD",
	}
}
