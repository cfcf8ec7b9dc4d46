package entity

import "github.com/vibhandikyash/MediCare-BE/constants"

// Reminder is one scheduled dose notification: a concrete date plus a
// canonical timestamp string (YYYY-MM-DDTHH:MM:SSZ). Owned by its medication.
type Reminder struct {
	Weekday        constants.Weekday `json:"weekday"`
	Date           Date              `json:"date"`
	Time           string            `json:"time"`
	IsNotified     bool              `json:"is_notified"`
	IsAcknowledged bool              `json:"is_acknowledged"`
}

// Medication is a normalized medication entry from a discharge summary with
// its expanded reminder calendar attached.
type Medication struct {
	Name      string                     `json:"name"`
	Dosage    string                     `json:"dosage"`
	StartDate *Date                      `json:"start_date,omitempty"`
	EndDate   *Date                      `json:"end_date,omitempty"`
	Timing    []string                   `json:"timing"`
	Days      []constants.Weekday        `json:"days"`
	Frequency constants.Frequency        `json:"frequency"`
	Status    constants.MedicationStatus `json:"status"`
	Reminders []Reminder                 `json:"reminders"`
}
