package revenue

import "testing"

func TestCalculate(t *testing.T) {
	impact := Calculate("sarah@ccg.com", 20, 250, 50)

	if impact.WeeklyRevenueLost != 5000 {
		t.Errorf("weekly = %v, want 5000", impact.WeeklyRevenueLost)
	}
	if impact.AnnualImpactPerConsultant != 260000 {
		t.Errorf("annual = %v, want 260000", impact.AnnualImpactPerConsultant)
	}
	if impact.FirmAnnualImpact != 13000000 {
		t.Errorf("firm = %v, want 13000000", impact.FirmAnnualImpact)
	}
	if impact.Currency != "USD" {
		t.Errorf("currency = %q, want USD", impact.Currency)
	}
}

func TestCalculateDefaults(t *testing.T) {
	impact := Calculate("sarah@ccg.com", 8, 0, 0)

	if impact.BillableRate != DefaultBillableRate {
		t.Errorf("rate = %v, want default %v", impact.BillableRate, DefaultBillableRate)
	}
	if impact.FirmSize != DefaultFirmSize {
		t.Errorf("firm size = %d, want default %d", impact.FirmSize, DefaultFirmSize)
	}
}
