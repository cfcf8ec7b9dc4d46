package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the assembled patient record: intake details plus everything the
// document pipeline produced. medication_details, bill_details, reports and
// appointment_followup persist as JSONB.
type Patient struct {
	ID                uuid.UUID        `json:"id"`
	PatientName       string           `json:"patient_name"`
	PatientContact    string           `json:"patient_contact"`
	PatientEmail      string           `json:"patient_email"`
	EmergencyName     string           `json:"emergency_name"`
	EmergencyContact  string           `json:"emergency_contact"`
	EmergencyEmail    string           `json:"emergency_email"`
	Age               int              `json:"age"`
	Gender            string           `json:"gender"`
	MedicalCondition  string           `json:"medical_condition"`
	AssignedDoctor    string           `json:"assigned_doctor"`
	AdmissionDate     Date             `json:"admission_date"`
	DischargeDate     *Date            `json:"discharge_date,omitempty"`
	MedicationDetails DischargeSummary `json:"medication_details"`
	BillDetails       []Bill           `json:"bill_details"`
	Reports           []Report         `json:"reports"`
	Followups         []Followup       `json:"appointment_followup"`
	DoctorNotes       string           `json:"doctor_notes"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
