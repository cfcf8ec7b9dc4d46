package entity

import "time"

// DischargeSummary is the structured result of parsing one discharge summary
// document. This is the primary clinical payload: a failure here aborts the
// whole patient-creation flow, unlike bill/report batch items.
type DischargeSummary struct {
	Medications     []Medication `json:"medications"`
	Followups       []Followup   `json:"appointment_followup"`
	PatientName     string       `json:"patient_name,omitempty"`
	DischargeDate   *Date        `json:"discharge_date,omitempty"`
	Diagnosis       string       `json:"diagnosis,omitempty"`
	AdditionalNotes string       `json:"additional_notes,omitempty"`

	// provenance
	Source      string    `json:"source"`
	ParsedAt    time.Time `json:"parsed_at"`
	DocumentURL string    `json:"document_url,omitempty"`
}
