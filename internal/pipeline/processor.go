package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vibhandikyash/MediCare-BE/internal/entity"
)

// Intake carries the patient details submitted alongside the documents.
type Intake struct {
	PatientName      string
	PatientContact   string
	PatientEmail     string
	EmergencyName    string
	EmergencyContact string
	EmergencyEmail   string
	Age              int
	Gender           string
	MedicalCondition string
	AssignedDoctor   string
	AdmissionDate    entity.Date
	DoctorNotes      string
}

// Request is one full patient-creation submission: the intake form, the
// mandatory discharge summary, and optional bill and report batches.
type Request struct {
	Intake    Intake
	Discharge Document
	Bills     []Document
	Reports   []Document
}

// Processor runs the whole submission. The discharge stage gates everything:
// without its medication list and diagnosis the report prompt has no context
// and the patient record has no clinical core.
type Processor struct {
	Logger    *slog.Logger
	Discharge *DischargeStage
	Batch     *BatchProcessor
	Now       func() time.Time
}

func NewProcessor(logger *slog.Logger, discharge *DischargeStage, batch *BatchProcessor) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Discharge: discharge, Batch: batch, Now: time.Now}
}

// Run processes a submission into an assembled patient record plus a batch
// summary. It fails only when the discharge summary cannot be parsed; bill
// and report failures are folded into the summary instead.
func (p *Processor) Run(ctx context.Context, req Request) (entity.Patient, Summary, error) {
	start := p.Now()

	summary, err := p.Discharge.Run(ctx, req.Discharge, req.Intake.PatientName)
	if err != nil {
		return entity.Patient{}, Summary{}, fmt.Errorf("discharge summary processing failed: %w", err)
	}

	billResults := p.Batch.ProcessBills(ctx, req.Bills, req.Intake.PatientName)
	reportResults := p.Batch.ProcessReports(ctx, req.Reports, req.Intake.PatientName, summary.Medications, summary.Diagnosis)

	batchSummary := Summary{
		BillsTotal:   len(billResults),
		ReportsTotal: len(reportResults),
	}
	bills := make([]entity.Bill, 0, len(billResults))
	for _, r := range billResults {
		if r.Succeeded() && r.Bill != nil {
			bills = append(bills, *r.Bill)
			batchSummary.BillsSucceeded++
			continue
		}
		batchSummary.Failures = append(batchSummary.Failures, fmt.Sprintf("bill %s: %s (%s)", r.Source, r.Status, r.Reason))
	}
	reports := make([]entity.Report, 0, len(reportResults))
	for _, r := range reportResults {
		if r.Succeeded() && r.Report != nil {
			reports = append(reports, *r.Report)
			batchSummary.ReportsSucceeded++
			continue
		}
		batchSummary.Failures = append(batchSummary.Failures, fmt.Sprintf("report %s: %s (%s)", r.Source, r.Status, r.Reason))
	}

	now := p.Now().UTC()
	patient := entity.Patient{
		ID:                uuid.New(),
		PatientName:       req.Intake.PatientName,
		PatientContact:    req.Intake.PatientContact,
		PatientEmail:      req.Intake.PatientEmail,
		EmergencyName:     req.Intake.EmergencyName,
		EmergencyContact:  req.Intake.EmergencyContact,
		EmergencyEmail:    req.Intake.EmergencyEmail,
		Age:               req.Intake.Age,
		Gender:            req.Intake.Gender,
		MedicalCondition:  req.Intake.MedicalCondition,
		AssignedDoctor:    req.Intake.AssignedDoctor,
		AdmissionDate:     req.Intake.AdmissionDate,
		DischargeDate:     summary.DischargeDate,
		MedicationDetails: summary,
		BillDetails:       bills,
		Reports:           reports,
		Followups:         summary.Followups,
		DoctorNotes:       req.Intake.DoctorNotes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	p.Logger.Info("pipeline.run.ok",
		"patient", req.Intake.PatientName,
		"bills_ok", batchSummary.BillsSucceeded,
		"bills_total", batchSummary.BillsTotal,
		"reports_ok", batchSummary.ReportsSucceeded,
		"reports_total", batchSummary.ReportsTotal,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return patient, batchSummary, nil
}
