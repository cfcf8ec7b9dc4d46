package records

import (
	"testing"

	"github.com/vibhandikyash/MediCare-BE/constants"
)

func TestFollowupSkippedWithoutDate(t *testing.T) {
	b := testBuilder()
	cases := []struct {
		name  string
		entry map[string]any
	}{
		{"no date at all", map[string]any{"reason": "checkup"}},
		{"empty date", map[string]any{"followup_date": ""}},
		{"unparseable date", map[string]any{"followup_date": "next tuesday"}},
		{"wrong type", map[string]any{"followup_date": 20240401.0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := b.Followup(tc.entry); ok {
				t.Fatal("followup without a parseable date must be skipped, never defaulted")
			}
		})
	}
}

func TestFollowupDefaults(t *testing.T) {
	b := testBuilder()
	f, ok := b.Followup(map[string]any{"followup_date": "2024-04-01"})
	if !ok {
		t.Fatal("expected followup")
	}
	if f.FollowupDate.String() != "2024-04-01" {
		t.Errorf("date = %s", f.FollowupDate)
	}
	if f.Status != constants.FollowupNotConfirmed {
		t.Errorf("status = %q, want not_confirmed", f.Status)
	}
	if f.Reminder1Sent || f.Reminder2Sent {
		t.Error("sent flags must init false")
	}
}

func TestFollowupStatusFallback(t *testing.T) {
	b := testBuilder()
	f, ok := b.Followup(map[string]any{
		"followup_date": "2024-04-01",
		"status":        "maybe",
		"reason":        "post-op review",
		"notes":         "bring previous reports",
	})
	if !ok {
		t.Fatal("expected followup")
	}
	if f.Status != constants.FollowupNotConfirmed {
		t.Errorf("unparseable status must fall back to not_confirmed, got %q", f.Status)
	}
	if f.Reason != "post-op review" || f.Notes != "bring previous reports" {
		t.Errorf("optional fields lost: %+v", f)
	}
}

func TestFollowupConfirmedStatusKept(t *testing.T) {
	b := testBuilder()
	f, ok := b.Followup(map[string]any{
		"followup_date": "2024-04-01",
		"status":        "confirmed",
	})
	if !ok {
		t.Fatal("expected followup")
	}
	if f.Status != constants.FollowupConfirmed {
		t.Errorf("status = %q, want confirmed", f.Status)
	}
}
