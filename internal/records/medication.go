package records

import (
	"strings"

	"github.com/vibhandikyash/MediCare-BE/constants"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
	"github.com/vibhandikyash/MediCare-BE/internal/schedule"
)

// Fallbacks for medication fields the model omitted or garbled. The entry is
// still clinically useful without them, so nothing here is a hard failure.
const (
	unknownName   = "Unknown"
	unknownDosage = "Not specified"
	morningDose   = "10:00AM"
	eveningDose   = "6:00PM"
)

var twiceDailyPatterns = []string{
	"twice daily", "two times daily", "2 times daily",
	"twice a day", "two times a day", "2 times a day",
	"bid", "b.i.d.", "twice per day",
}

// Medication builds one validated medication record from a parsed entry and
// attaches its expanded reminder calendar. Malformed fields degrade to
// defaults; each substitution is logged, never raised.
func (b *Builder) Medication(entry map[string]any) entity.Medication {
	name := asString(entry, "name")
	if name == "" {
		name = unknownName
		b.Logger.Warn("records.medication.defaulted", "field", "name")
	}
	dosage := asString(entry, "dosage")
	if dosage == "" {
		dosage = unknownDosage
		b.Logger.Warn("records.medication.defaulted", "field", "dosage", "name", name)
	}

	rawFreq := asString(entry, "frequency")
	frequency, ok := constants.CanonicalizeFrequency(rawFreq)
	if !ok && rawFreq != "" {
		b.Logger.Warn("records.medication.defaulted", "field", "frequency", "value", rawFreq, "name", name)
	}

	status, ok := constants.CanonicalizeMedicationStatus(asString(entry, "status"))
	if !ok && asString(entry, "status") != "" {
		b.Logger.Warn("records.medication.defaulted", "field", "status", "name", name)
	}

	timing := parseTiming(entry)
	if len(timing) == 0 {
		timing = defaultTiming(name, dosage, rawFreq)
	}

	days := parseDays(entry, b, name)

	startDate := asDate(entry, "start_date")
	endDate := asDate(entry, "end_date")

	med := entity.Medication{
		Name:      name,
		Dosage:    dosage,
		StartDate: startDate,
		EndDate:   endDate,
		Timing:    timing,
		Days:      days,
		Frequency: frequency,
		Status:    status,
	}
	med.Reminders = schedule.Expand(schedule.Request{
		Days:      days,
		Timing:    timing,
		Frequency: frequency,
		StartDate: startDate,
		EndDate:   endDate,
		Today:     b.Today,
	})
	return med
}

func parseTiming(entry map[string]any) []string {
	out := []string{}
	for _, v := range asList(entry, "timing") {
		if s, ok := v.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// defaultTiming applies the twice-daily heuristic: discharge summaries often
// encode cadence in free text ("500mg twice daily") instead of the timing
// array, so scan the combined text before falling back to a single dose.
func defaultTiming(name, dosage, frequency string) []string {
	combined := strings.ToLower(name + " " + dosage + " " + frequency)
	for _, pattern := range twiceDailyPatterns {
		if strings.Contains(combined, pattern) {
			return []string{morningDose, eveningDose}
		}
	}
	return []string{morningDose}
}

// parseDays drops unrecognized day names rather than aborting the list.
func parseDays(entry map[string]any, b *Builder, name string) []constants.Weekday {
	out := []constants.Weekday{}
	for _, v := range asList(entry, "days") {
		s, ok := v.(string)
		if !ok {
			continue
		}
		day, ok := constants.ParseWeekday(s)
		if !ok {
			b.Logger.Warn("records.medication.day_dropped", "value", s, "name", name)
			continue
		}
		out = append(out, day)
	}
	return out
}
