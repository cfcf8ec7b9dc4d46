package llm

import (
	"strings"

	"github.com/vibhandikyash/MediCare-BE/internal/entity"
)

// DischargePrompt returns the parsing prompt for discharge summaries. The
// timing defaults named here line up with the builder-side twice-daily
// heuristic, so under-specified cadence degrades the same way on both ends.
func DischargePrompt() string {
	return strings.Join([]string{
		"You are a medical document parser specialized in extracting medication information from discharge summaries.",
		"Parse the provided discharge summary and extract ALL medication information in a structured format.",
		"For each medication extract: name, dosage (amount and unit), start_date (YYYY-MM-DD or null),",
		"end_date (YYYY-MM-DD or null), timing (array of times such as \"10:00AM\", \"6:00PM\";",
		"use [\"10:00AM\", \"6:00PM\"] for twice daily and [\"10:00AM\"] when no time is specified),",
		"days (array of lowercase weekday names, empty if daily or unspecified),",
		"frequency (one of: daily, alternate_days, twice_a_week, weekly, as_needed, custom),",
		"and status (one of: active, stopped, completed).",
		"Also extract patient_name, discharge_date (YYYY-MM-DD), diagnosis, additional_notes,",
		"and appointment_followup (array of {followup_date: YYYY-MM-DD, reason, notes}).",
		"Return ONLY a valid JSON object with keys: medications, patient_name, discharge_date,",
		"diagnosis, additional_notes, appointment_followup.",
		"Do not include explanations, markdown formatting, or additional text.",
	}, " ")
}

// BillPrompt returns the parsing prompt for medical bills.
func BillPrompt() string {
	return strings.Join([]string{
		"You are a medical bill parser specialized in extracting structured information from medical bills and invoices.",
		"Extract the bill name (e.g. \"Hospital Bill\", \"Pharmacy Bill\"), every bill item with its cost,",
		"and the total amount. Preserve cost formatting exactly as shown, including currency symbols and decimals.",
		"Extract ALL items, including subtotals and tax lines when listed.",
		"Return ONLY a valid JSON object: {\"name\": string, \"details\": [{\"name\": string, \"cost\": string}], \"total\": string}.",
		"Do not include explanations, markdown formatting, or additional text.",
	}, " ")
}

// ReportPrompt returns the parsing prompt for lab reports. The patient's
// medication list and diagnosis are included so the model can infer why each
// test was ordered.
func ReportPrompt(medications []entity.Medication, diagnosis string) string {
	var b strings.Builder
	b.WriteString("You are a medical report parser specialized in extracting biomarker information from lab reports. ")
	b.WriteString("Extract the report name, the reason this test was likely ordered, and every biomarker ")
	b.WriteString("with its measured value and normal range. ")

	if diagnosis != "" {
		b.WriteString("Patient diagnosis: ")
		b.WriteString(diagnosis)
		b.WriteString(". ")
	}
	if len(medications) > 0 {
		b.WriteString("Current medications: ")
		names := make([]string, 0, len(medications))
		for _, m := range medications {
			names = append(names, m.Name+" "+m.Dosage)
		}
		b.WriteString(strings.Join(names, "; "))
		b.WriteString(". ")
	}

	b.WriteString(`Return ONLY a valid JSON object: {"name": string, "reason": string, `)
	b.WriteString(`"biomarkers": [{"name": string, "range": string, "value": string}]}. `)
	b.WriteString("Do not include explanations, markdown formatting, or additional text.")
	return b.String()
}
