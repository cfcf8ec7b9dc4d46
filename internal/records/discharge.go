package records

import "github.com/vibhandikyash/MediCare-BE/internal/entity"

// Discharge assembles the full discharge summary from one parsed document:
// medications (with reminder calendars), followups, and the envelope fields.
// Provenance (source, parsed_at, document URL) is stamped by the pipeline.
func (b *Builder) Discharge(doc map[string]any) entity.DischargeSummary {
	summary := entity.DischargeSummary{
		Medications:     []entity.Medication{},
		Followups:       []entity.Followup{},
		PatientName:     asString(doc, "patient_name"),
		Diagnosis:       asString(doc, "diagnosis"),
		AdditionalNotes: asString(doc, "additional_notes"),
		DischargeDate:   asDate(doc, "discharge_date"),
	}

	for _, v := range asList(doc, "medications") {
		entry, ok := v.(map[string]any)
		if !ok {
			b.Logger.Warn("records.discharge.medication_dropped", "reason", "entry is not an object")
			continue
		}
		summary.Medications = append(summary.Medications, b.Medication(entry))
	}

	followupEntries := asList(doc, "appointment_followup")
	if followupEntries == nil {
		followupEntries = asList(doc, "followups")
	}
	for _, v := range followupEntries {
		entry, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if f, ok := b.Followup(entry); ok {
			summary.Followups = append(summary.Followups, f)
		}
	}

	return summary
}
