package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vibhandikyash/MediCare-BE/internal/common"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
)

// PatientRepository persists assembled patient records. The document-derived
// aggregates (medication details, bills, reports, followups) are stored as
// JSON documents, not flattened into relational columns.
type PatientRepository interface {
	Create(ctx context.Context, p *entity.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	List(ctx context.Context) ([]*entity.Patient, error)
	UpdateFollowups(ctx context.Context, id uuid.UUID, followups []entity.Followup) error
}

const patientSchema = `
CREATE TABLE IF NOT EXISTS patients (
	id UUID PRIMARY KEY,
	patient_name TEXT NOT NULL,
	patient_contact TEXT NOT NULL DEFAULT '',
	patient_email TEXT NOT NULL DEFAULT '',
	emergency_name TEXT NOT NULL DEFAULT '',
	emergency_contact TEXT NOT NULL DEFAULT '',
	emergency_email TEXT NOT NULL DEFAULT '',
	age INT NOT NULL DEFAULT 0,
	gender TEXT NOT NULL DEFAULT '',
	medical_condition TEXT NOT NULL DEFAULT '',
	assigned_doctor TEXT NOT NULL DEFAULT '',
	admission_date DATE NOT NULL,
	discharge_date DATE,
	medication_details JSONB NOT NULL DEFAULT '{}',
	bill_details JSONB NOT NULL DEFAULT '[]',
	reports JSONB NOT NULL DEFAULT '[]',
	appointment_followup JSONB NOT NULL DEFAULT '[]',
	doctor_notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

type patientRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPatientRepository(pool *pgxpool.Pool, logger *slog.Logger) PatientRepository {
	return &patientRepository{pool: pool, logger: logger}
}

// Migrate creates the patients table if it does not exist.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, patientSchema)
	return err
}

func (r *patientRepository) Create(ctx context.Context, p *entity.Patient) error {
	meds, bills, reports, followups, err := marshalAggregates(p)
	if err != nil {
		return err
	}

	var discharge *time.Time
	if p.DischargeDate != nil {
		t := p.DischargeDate.Time
		discharge = &t
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO patients (
			id, patient_name, patient_contact, patient_email,
			emergency_name, emergency_contact, emergency_email,
			age, gender, medical_condition, assigned_doctor,
			admission_date, discharge_date,
			medication_details, bill_details, reports, appointment_followup,
			doctor_notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
		p.ID, p.PatientName, p.PatientContact, p.PatientEmail,
		p.EmergencyName, p.EmergencyContact, p.EmergencyEmail,
		p.Age, p.Gender, p.MedicalCondition, p.AssignedDoctor,
		p.AdmissionDate.Time, discharge,
		meds, bills, reports, followups,
		p.DoctorNotes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("failed to create patient", "patient_id", p.ID, "error", err)
		return common.WrapError(err, "create patient")
	}
	return nil
}

func (r *patientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, patient_name, patient_contact, patient_email,
			emergency_name, emergency_contact, emergency_email,
			age, gender, medical_condition, assigned_doctor,
			admission_date, discharge_date,
			medication_details, bill_details, reports, appointment_followup,
			doctor_notes, created_at, updated_at
		FROM patients WHERE id = $1`, id)

	p, err := scanPatient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NotFoundError("patient not found")
		}
		r.logger.Error("failed to get patient", "patient_id", id, "error", err)
		return nil, common.WrapError(err, "get patient")
	}
	return p, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*entity.Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, patient_name, patient_contact, patient_email,
			emergency_name, emergency_contact, emergency_email,
			age, gender, medical_condition, assigned_doctor,
			admission_date, discharge_date,
			medication_details, bill_details, reports, appointment_followup,
			doctor_notes, created_at, updated_at
		FROM patients ORDER BY created_at DESC`)
	if err != nil {
		r.logger.Error("failed to list patients", "error", err)
		return nil, common.WrapError(err, "list patients")
	}
	defer rows.Close()

	var patients []*entity.Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, common.WrapError(err, "scan patient")
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (r *patientRepository) UpdateFollowups(ctx context.Context, id uuid.UUID, followups []entity.Followup) error {
	raw, err := json.Marshal(followups)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE patients SET appointment_followup = $2, updated_at = $3 WHERE id = $1`,
		id, raw, time.Now().UTC())
	if err != nil {
		r.logger.Error("failed to update followups", "patient_id", id, "error", err)
		return common.WrapError(err, "update followups")
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundError("patient not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func marshalAggregates(p *entity.Patient) (meds, bills, reports, followups []byte, err error) {
	if meds, err = json.Marshal(p.MedicationDetails); err != nil {
		return
	}
	if bills, err = json.Marshal(p.BillDetails); err != nil {
		return
	}
	if reports, err = json.Marshal(p.Reports); err != nil {
		return
	}
	followups, err = json.Marshal(p.Followups)
	return
}

func scanPatient(row rowScanner) (*entity.Patient, error) {
	var (
		p         entity.Patient
		admission time.Time
		discharge *time.Time
		meds      []byte
		bills     []byte
		reports   []byte
		followups []byte
	)
	err := row.Scan(
		&p.ID, &p.PatientName, &p.PatientContact, &p.PatientEmail,
		&p.EmergencyName, &p.EmergencyContact, &p.EmergencyEmail,
		&p.Age, &p.Gender, &p.MedicalCondition, &p.AssignedDoctor,
		&admission, &discharge,
		&meds, &bills, &reports, &followups,
		&p.DoctorNotes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.AdmissionDate = entity.DateOf(admission)
	if discharge != nil {
		d := entity.DateOf(*discharge)
		p.DischargeDate = &d
	}
	if err := json.Unmarshal(meds, &p.MedicationDetails); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(bills, &p.BillDetails); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(reports, &p.Reports); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(followups, &p.Followups); err != nil {
		return nil, err
	}
	return &p, nil
}
