package records

import (
	"testing"
	"time"

	"github.com/vibhandikyash/MediCare-BE/constants"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
)

func testBuilder() *Builder {
	return NewBuilder(nil, entity.NewDate(2024, time.March, 1))
}

func TestMedicationFieldDefaults(t *testing.T) {
	b := testBuilder()
	med := b.Medication(map[string]any{})

	if med.Name != "Unknown" {
		t.Errorf("name = %q, want Unknown", med.Name)
	}
	if med.Dosage != "Not specified" {
		t.Errorf("dosage = %q, want Not specified", med.Dosage)
	}
	if med.Frequency != constants.Daily {
		t.Errorf("frequency = %q, want daily", med.Frequency)
	}
	if med.Status != constants.MedicationActive {
		t.Errorf("status = %q, want active", med.Status)
	}
	if med.StartDate != nil || med.EndDate != nil {
		t.Error("missing dates must stay nil")
	}
	if len(med.Timing) != 1 || med.Timing[0] != "10:00AM" {
		t.Errorf("timing = %v, want single 10:00AM default", med.Timing)
	}
	if len(med.Reminders) == 0 {
		t.Error("daily medication must get reminders from the default window")
	}
}

func TestMedicationMalformedFieldsDegrade(t *testing.T) {
	b := testBuilder()
	med := b.Medication(map[string]any{
		"name":       "  Aspirin ",
		"dosage":     "500mg",
		"start_date": "yesterday",
		"end_date":   "2024/03/15",
		"frequency":  "whenever",
		"status":     "paused",
		"days":       []any{"monday", "noday", 7.0, "friday"},
		"timing":     []any{"8:00AM", "", 42.0, " 6:00PM "},
	})

	if med.Name != "Aspirin" {
		t.Errorf("name = %q", med.Name)
	}
	if med.StartDate != nil || med.EndDate != nil {
		t.Error("unparseable dates must become nil, not errors")
	}
	if med.Frequency != constants.Daily {
		t.Errorf("unknown frequency must default to daily, got %q", med.Frequency)
	}
	if med.Status != constants.MedicationActive {
		t.Errorf("unknown status must default to active, got %q", med.Status)
	}
	wantDays := []constants.Weekday{constants.Monday, constants.Friday}
	if len(med.Days) != len(wantDays) || med.Days[0] != wantDays[0] || med.Days[1] != wantDays[1] {
		t.Errorf("days = %v, want %v (bad entries dropped silently)", med.Days, wantDays)
	}
	wantTiming := []string{"8:00AM", "6:00PM"}
	if len(med.Timing) != 2 || med.Timing[0] != wantTiming[0] || med.Timing[1] != wantTiming[1] {
		t.Errorf("timing = %v, want %v", med.Timing, wantTiming)
	}
}

func TestMedicationRemindersEmptyIffAsNeeded(t *testing.T) {
	b := testBuilder()

	asNeeded := b.Medication(map[string]any{
		"name":      "Paracetamol",
		"frequency": "as_needed",
		"timing":    []any{"10:00AM"},
	})
	if len(asNeeded.Reminders) != 0 {
		t.Fatalf("as_needed must have no reminders, got %d", len(asNeeded.Reminders))
	}

	for _, freq := range []string{"daily", "alternate_days", "twice_a_week", "weekly", "custom"} {
		med := b.Medication(map[string]any{
			"name":       "Metformin",
			"frequency":  freq,
			"start_date": "2024-03-04",
			"end_date":   "2024-03-31",
		})
		if len(med.Reminders) == 0 {
			t.Errorf("frequency %q must produce reminders", freq)
		}
	}
}

func TestMedicationRemindersStayInsideWindow(t *testing.T) {
	b := testBuilder()
	med := b.Medication(map[string]any{
		"name":       "Atorvastatin",
		"frequency":  "daily",
		"start_date": "2024-03-04",
		"end_date":   "2024-03-10",
	})
	start := entity.NewDate(2024, time.March, 4)
	end := entity.NewDate(2024, time.March, 10)
	for _, r := range med.Reminders {
		if r.Date.Before(start.Time) || r.Date.After(end.Time) {
			t.Fatalf("reminder %s outside [%s, %s]", r.Date, start, end)
		}
	}
}

func TestMedicationTwiceDailyHeuristic(t *testing.T) {
	b := testBuilder()
	cases := []struct {
		name  string
		entry map[string]any
		doses int
	}{
		{"dosage mentions twice daily", map[string]any{"name": "Amoxicillin", "dosage": "250mg twice daily"}, 2},
		{"bid abbreviation", map[string]any{"name": "Ibuprofen", "dosage": "400mg BID"}, 2},
		{"plain once daily", map[string]any{"name": "Lisinopril", "dosage": "10mg"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			med := b.Medication(tc.entry)
			if len(med.Timing) != tc.doses {
				t.Fatalf("timing = %v, want %d doses", med.Timing, tc.doses)
			}
		})
	}
}
