package records

import "testing"

func TestBillBuild(t *testing.T) {
	b := testBuilder()
	bill := b.Bill(map[string]any{
		"name": "Hospital Bill",
		"details": []any{
			map[string]any{"name": "Room Charges", "cost": "₹5000"},
			map[string]any{"name": "", "cost": ""},
			"not an object",
		},
		"total": "₹5000",
	})

	if bill.Name != "Hospital Bill" || bill.Total != "₹5000" {
		t.Errorf("envelope = %q / %q", bill.Name, bill.Total)
	}
	if len(bill.Details) != 2 {
		t.Fatalf("details = %d, want 2", len(bill.Details))
	}
	if bill.Details[0].Cost != "₹5000" {
		t.Errorf("cost formatting must be preserved, got %q", bill.Details[0].Cost)
	}
	if bill.Details[1].Name != "Unknown" || bill.Details[1].Cost != "0" {
		t.Errorf("blank item must default, got %+v", bill.Details[1])
	}
}

func TestBillDefaults(t *testing.T) {
	b := testBuilder()
	bill := b.Bill(map[string]any{})
	if bill.Name != "Medical Bill" || bill.Total != "0" {
		t.Errorf("defaults = %q / %q", bill.Name, bill.Total)
	}
}

func TestReportBuild(t *testing.T) {
	b := testBuilder()
	report := b.Report(map[string]any{
		"name":   "Complete Blood Count",
		"reason": "Monitoring anemia during iron therapy",
		"biomarkers": []any{
			map[string]any{"name": "Hemoglobin", "range": "12-16 g/dL", "value": "10.9 g/dL"},
			map[string]any{"range": "70-100 mg/dL", "value": "95 mg/dL"},
		},
	})
	if report.Name != "Complete Blood Count" {
		t.Errorf("name = %q", report.Name)
	}
	if len(report.Biomarkers) != 1 {
		t.Fatalf("nameless biomarkers must be dropped, got %d", len(report.Biomarkers))
	}
}

func TestReportDefaults(t *testing.T) {
	b := testBuilder()
	report := b.Report(map[string]any{})
	if report.Name != "Medical Report" || report.Reason != "Routine monitoring" {
		t.Errorf("defaults = %q / %q", report.Name, report.Reason)
	}
}
