package schedule

import (
	"testing"
	"time"
)

var march1 = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestNormalizeTime(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"evening 12h", "6:00PM", "2024-03-01T18:00:00Z"},
		{"morning 12h", "10:00AM", "2024-03-01T10:00:00Z"},
		{"midnight", "12:00AM", "2024-03-01T00:00:00Z"},
		{"noon", "12:00PM", "2024-03-01T12:00:00Z"},
		{"spaced meridiem", "6:30 pm", "2024-03-01T18:30:00Z"},
		{"24h", "18:45", "2024-03-01T18:45:00Z"},
		{"24h with seconds", "07:05:09", "2024-03-01T07:05:09Z"},
		{"bare hour", "9", "2024-03-01T09:00:00Z"},
		{"empty falls back", "", "2024-03-01T10:00:00Z"},
		{"garbage falls back", "after breakfast", "2024-03-01T10:00:00Z"},
		{"out of range falls back", "25:00", "2024-03-01T10:00:00Z"},
		{"bad minutes fall back", "10:99AM", "2024-03-01T10:00:00Z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeTime(tc.in, march1); got != tc.want {
				t.Fatalf("NormalizeTime(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeTimeUsesGivenDate(t *testing.T) {
	on := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	if got := NormalizeTime("8:15AM", on); got != "2025-12-31T08:15:00Z" {
		t.Fatalf("got %q", got)
	}
}
