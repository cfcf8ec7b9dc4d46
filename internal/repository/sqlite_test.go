package repository

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vibhandikyash/MediCare-BE/internal/common"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
)

func newTestRepo(t *testing.T) PatientRepository {
	t.Helper()
	db, err := OpenSQLite(context.Background(), ":memory:", slog.Default())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLitePatientRepository(db, slog.Default())
}

func samplePatient(t *testing.T) *entity.Patient {
	t.Helper()
	admission, _ := entity.ParseDate("2026-02-20")
	discharge, _ := entity.ParseDate("2026-03-01")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &entity.Patient{
		ID:               uuid.New(),
		PatientName:      "Jane Doe",
		PatientContact:   "9876543210",
		Age:              54,
		Gender:           "female",
		MedicalCondition: "Type 2 diabetes",
		AdmissionDate:    admission,
		DischargeDate:    &discharge,
		MedicationDetails: entity.DischargeSummary{
			Diagnosis: "Type 2 diabetes",
			Medications: []entity.Medication{
				{Name: "Metformin", Dosage: "500mg", Status: "active"},
			},
		},
		BillDetails: []entity.Bill{
			{Name: "Hospital Bill", Total: "1200", Details: []entity.BillItem{{Name: "Room", Cost: "1200"}}},
		},
		Followups: []entity.Followup{
			{FollowupDate: discharge, Reason: "HbA1c recheck", Status: "not_confirmed"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSQLitePatientRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := samplePatient(t)

	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	if got.PatientName != p.PatientName || got.Age != p.Age {
		t.Errorf("intake fields lost: %+v", got)
	}
	if got.AdmissionDate.String() != "2026-02-20" {
		t.Errorf("admission date = %s", got.AdmissionDate)
	}
	if got.DischargeDate == nil || got.DischargeDate.String() != "2026-03-01" {
		t.Errorf("discharge date = %v", got.DischargeDate)
	}
	if len(got.MedicationDetails.Medications) != 1 || got.MedicationDetails.Medications[0].Name != "Metformin" {
		t.Errorf("medication details lost: %+v", got.MedicationDetails)
	}
	if len(got.BillDetails) != 1 || got.BillDetails[0].Total != "1200" {
		t.Errorf("bill details lost: %+v", got.BillDetails)
	}
	if len(got.Followups) != 1 || got.Followups[0].Reason != "HbA1c recheck" {
		t.Errorf("followups lost: %+v", got.Followups)
	}
}

func TestSQLiteGetMissingPatient(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetByID(context.Background(), uuid.New())
	if err == nil || !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteUpdateFollowups(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	p := samplePatient(t)
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}

	date, _ := entity.ParseDate("2026-03-15")
	updated := []entity.Followup{
		{FollowupDate: date, Reason: "HbA1c recheck", Reminder1Sent: true, Status: "confirmed"},
	}
	if err := repo.UpdateFollowups(ctx, p.ID, updated); err != nil {
		t.Fatalf("UpdateFollowups: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(got.Followups) != 1 || !got.Followups[0].Reminder1Sent || got.Followups[0].Status != "confirmed" {
		t.Errorf("followups = %+v", got.Followups)
	}

	if err := repo.UpdateFollowups(ctx, uuid.New(), updated); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("updating missing patient: err = %v, want ErrNotFound", err)
	}
}

func TestSQLiteListOrdersByCreation(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := samplePatient(t)
	first.PatientName = "First"
	first.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	second := samplePatient(t)
	second.ID = uuid.New()
	second.PatientName = "Second"
	second.CreatedAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	for _, p := range []*entity.Patient{first, second} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].PatientName != "Second" {
		t.Fatalf("list order wrong: %v", []string{got[0].PatientName, got[1].PatientName})
	}
}
