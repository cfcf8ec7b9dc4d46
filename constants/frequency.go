package constants

import "strings"

// Frequency is the cadence policy for a medication schedule.
type Frequency string

const (
	Daily         Frequency = "daily"
	AlternateDays Frequency = "alternate_days"
	TwiceAWeek    Frequency = "twice_a_week"
	Weekly        Frequency = "weekly"
	AsNeeded      Frequency = "as_needed"
	Custom        Frequency = "custom"
)

var allFrequencies = []Frequency{
	Daily,
	AlternateDays,
	TwiceAWeek,
	Weekly,
	AsNeeded,
	Custom,
}

// CanonicalizeFrequency resolves a model-provided frequency label to the enum.
// Unknown labels report ok=false and fall back to Daily, which is the builder
// default for medications.
func CanonicalizeFrequency(input string) (Frequency, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return Daily, false
	}

	// synonyms seen in discharge summaries
	synonyms := map[string]Frequency{
		"every day":       Daily,
		"everyday":        Daily,
		"once daily":      Daily,
		"od":              Daily,
		"every other day": AlternateDays,
		"alternate days":  AlternateDays,
		"twice weekly":    TwiceAWeek,
		"once a week":     Weekly,
		"once weekly":     Weekly,
		"prn":             AsNeeded,
		"sos":             AsNeeded,
		"as needed":       AsNeeded,
	}
	if f, ok := synonyms[normalized]; ok {
		return f, true
	}

	for _, f := range allFrequencies {
		if normalized == string(f) {
			return f, true
		}
	}
	return Daily, false
}
