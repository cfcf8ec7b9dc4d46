package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vibhandikyash/MediCare-BE/internal/common"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
)

// SQLite-backed PatientRepository for local development and the offline CLI.
// Same contract as the Postgres store; dates persist as ISO strings and the
// document aggregates as JSON text.

const sqlitePatientSchema = `
CREATE TABLE IF NOT EXISTS patients (
	id TEXT PRIMARY KEY,
	patient_name TEXT NOT NULL,
	patient_contact TEXT NOT NULL DEFAULT '',
	patient_email TEXT NOT NULL DEFAULT '',
	emergency_name TEXT NOT NULL DEFAULT '',
	emergency_contact TEXT NOT NULL DEFAULT '',
	emergency_email TEXT NOT NULL DEFAULT '',
	age INTEGER NOT NULL DEFAULT 0,
	gender TEXT NOT NULL DEFAULT '',
	medical_condition TEXT NOT NULL DEFAULT '',
	assigned_doctor TEXT NOT NULL DEFAULT '',
	admission_date TEXT NOT NULL,
	discharge_date TEXT,
	medication_details TEXT NOT NULL DEFAULT '{}',
	bill_details TEXT NOT NULL DEFAULT '[]',
	reports TEXT NOT NULL DEFAULT '[]',
	appointment_followup TEXT NOT NULL DEFAULT '[]',
	doctor_notes TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

type sqlitePatientRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (or creates) a SQLite patient store at path. Use
// ":memory:" for an ephemeral store.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("failed to open sqlite store", "path", path, "error", err)
		return nil, err
	}
	if _, err := db.ExecContext(ctx, sqlitePatientSchema); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func NewSQLitePatientRepository(db *sql.DB, logger *slog.Logger) PatientRepository {
	return &sqlitePatientRepository{db: db, logger: logger}
}

func (r *sqlitePatientRepository) Create(ctx context.Context, p *entity.Patient) error {
	meds, bills, reports, followups, err := marshalAggregates(p)
	if err != nil {
		return err
	}

	var discharge *string
	if p.DischargeDate != nil {
		s := p.DischargeDate.String()
		discharge = &s
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO patients (
			id, patient_name, patient_contact, patient_email,
			emergency_name, emergency_contact, emergency_email,
			age, gender, medical_condition, assigned_doctor,
			admission_date, discharge_date,
			medication_details, bill_details, reports, appointment_followup,
			doctor_notes, created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID.String(), p.PatientName, p.PatientContact, p.PatientEmail,
		p.EmergencyName, p.EmergencyContact, p.EmergencyEmail,
		p.Age, p.Gender, p.MedicalCondition, p.AssignedDoctor,
		p.AdmissionDate.String(), discharge,
		string(meds), string(bills), string(reports), string(followups),
		p.DoctorNotes, p.CreatedAt.UTC().Format(time.RFC3339), p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("failed to create patient", "patient_id", p.ID, "error", err)
		return common.WrapError(err, "create patient")
	}
	return nil
}

func (r *sqlitePatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, patient_name, patient_contact, patient_email,
			emergency_name, emergency_contact, emergency_email,
			age, gender, medical_condition, assigned_doctor,
			admission_date, discharge_date,
			medication_details, bill_details, reports, appointment_followup,
			doctor_notes, created_at, updated_at
		FROM patients WHERE id = ?`, id.String())

	p, err := scanSQLitePatient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NotFoundError("patient not found")
		}
		r.logger.Error("failed to get patient", "patient_id", id, "error", err)
		return nil, common.WrapError(err, "get patient")
	}
	return p, nil
}

func (r *sqlitePatientRepository) List(ctx context.Context) ([]*entity.Patient, error) {
	rows, err := r.db.QueryContext(ctx, `
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
		p, err := scanSQLitePatient(rows)
		if err != nil {
			return nil, common.WrapError(err, "scan patient")
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}

func (r *sqlitePatientRepository) UpdateFollowups(ctx context.Context, id uuid.UUID, followups []entity.Followup) error {
	raw, err := json.Marshal(followups)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE patients SET appointment_followup = ?, updated_at = ? WHERE id = ?`,
		string(raw), time.Now().UTC().Format(time.RFC3339), id.String())
	if err != nil {
		r.logger.Error("failed to update followups", "patient_id", id, "error", err)
		return common.WrapError(err, "update followups")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.NotFoundError("patient not found")
	}
	return nil
}

func scanSQLitePatient(row rowScanner) (*entity.Patient, error) {
	var (
		p         entity.Patient
		id        string
		admission string
		discharge *string
		meds      string
		bills     string
		reports   string
		followups string
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&id, &p.PatientName, &p.PatientContact, &p.PatientEmail,
		&p.EmergencyName, &p.EmergencyContact, &p.EmergencyEmail,
		&p.Age, &p.Gender, &p.MedicalCondition, &p.AssignedDoctor,
		&admission, &discharge,
		&meds, &bills, &reports, &followups,
		&p.DoctorNotes, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.ID, err = uuid.Parse(id); err != nil {
		return nil, err
	}
	if p.AdmissionDate, err = entity.ParseDate(admission); err != nil {
		return nil, err
	}
	if discharge != nil && *discharge != "" {
		d, err := entity.ParseDate(*discharge)
		if err != nil {
			return nil, err
		}
		p.DischargeDate = &d
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(meds), &p.MedicationDetails); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(bills), &p.BillDetails); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(reports), &p.Reports); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(followups), &p.Followups); err != nil {
		return nil, err
	}
	return &p, nil
}
