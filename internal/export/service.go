package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/vibhandikyash/MediCare-BE/internal/repository"
)

// Service is a tiny façade over the patient repository that produces XLSX
// bytes for exports: the reminder calendar and the itemized bills.
type Service struct {
	patients repository.PatientRepository
	logger   *slog.Logger
}

func NewService(patients repository.PatientRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{patients: patients, logger: logger}
}

// ExportPatientXLSX returns an XLSX workbook (as bytes) with one sheet for
// the patient's medication reminder calendar and one for their bill items.
func (s *Service) ExportPatientXLSX(ctx context.Context, patientID uuid.UUID) ([]byte, error) {
	start := time.Now()

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("query patient: %w", err)
	}

	f := excelize.NewFile()

	const remindersSheet = "Reminders"
	if err := ensureSheet(f, remindersSheet); err != nil {
		return nil, err
	}
	writeHeaders(f, remindersSheet, []string{
		"Medication",
		"Dosage",
		"Day",
		"Date",
		"Time",
		"Status",
	})
	row := 2
	reminders := 0
	for _, med := range p.MedicationDetails.Medications {
		for _, rem := range med.Reminders {
			write := cellWriter(f, remindersSheet, row)
			write(1, med.Name)
			write(2, med.Dosage)
			write(3, rem.Weekday.String())
			write(4, rem.Date.String())
			write(5, rem.Time)
			write(6, string(med.Status))
			row++
			reminders++
		}
	}
	_ = f.SetColWidth(remindersSheet, "A", "A", 24)
	_ = f.SetColWidth(remindersSheet, "B", "B", 16)
	_ = f.SetColWidth(remindersSheet, "C", "E", 22)
	_ = f.SetColWidth(remindersSheet, "F", "F", 12)

	const billsSheet = "Bills"
	if err := ensureSheet(f, billsSheet); err != nil {
		return nil, err
	}
	writeHeaders(f, billsSheet, []string{
		"Bill",
		"Item/Service",
		"Cost",
		"Bill Total",
	})
	row = 2
	for _, bill := range p.BillDetails {
		for _, item := range bill.Details {
			write := cellWriter(f, billsSheet, row)
			write(1, bill.Name)
			write(2, item.Name)
			write(3, item.Cost)
			write(4, bill.Total)
			row++
		}
	}
	_ = f.SetColWidth(billsSheet, "A", "B", 28)
	_ = f.SetColWidth(billsSheet, "C", "D", 14)

	// drop the default sheet so Reminders opens first
	if idx, _ := f.GetSheetIndex(remindersSheet); idx != -1 {
		f.SetActiveSheet(idx)
	}
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"patient_id", patientID.String(),
		"reminders", reminders,
		"bills", len(p.BillDetails),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func ensureSheet(f *excelize.File, sheet string) error {
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	return nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
}

func cellWriter(f *excelize.File, sheet string, row int) func(col int, v any) {
	return func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
	}
}
