package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vibhandikyash/MediCare-BE/constants"
	"github.com/vibhandikyash/MediCare-BE/internal/docjson"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
	"github.com/vibhandikyash/MediCare-BE/internal/llm"
	"github.com/vibhandikyash/MediCare-BE/internal/pdf"
	"github.com/vibhandikyash/MediCare-BE/internal/records"
	"github.com/vibhandikyash/MediCare-BE/internal/storage"
)

// DischargeStage parses the discharge summary, the primary clinical
// payload. Unlike batch items, any failure here aborts the whole
// patient-creation flow with a specific, actionable error.
type DischargeStage struct {
	Logger *slog.Logger
	Raster pdf.Rasterizer
	Store  storage.System
	Vision llm.VisionClient
	Model  string
	Now    func() time.Time
}

func NewDischargeStage(logger *slog.Logger, raster pdf.Rasterizer, store storage.System, vision llm.VisionClient, model string) *DischargeStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &DischargeStage{
		Logger: logger,
		Raster: raster,
		Store:  store,
		Vision: vision,
		Model:  model,
		Now:    time.Now,
	}
}

// Run processes one discharge summary PDF end to end and returns the
// structured summary with provenance stamped.
func (s *DischargeStage) Run(ctx context.Context, doc Document, patientName string) (entity.DischargeSummary, error) {
	start := s.Now()

	if !constants.IsPDF(doc.Data) {
		return entity.DischargeSummary{}, fmt.Errorf("discharge summary %q is not a PDF document", doc.Name)
	}

	folder := "medicare/patients/" + patientName + "/discharge_summaries"
	url, err := s.Store.Upload(ctx, folder, doc.Name, doc.Data, "application/pdf")
	if err != nil {
		return entity.DischargeSummary{}, fmt.Errorf("store discharge summary: %w", err)
	}

	pages, err := s.Raster.Rasterize(ctx, doc.Data)
	if err != nil {
		return entity.DischargeSummary{}, fmt.Errorf("rasterize discharge summary: %w", err)
	}

	text, err := s.Vision.Complete(ctx, llm.VisionRequest{
		Prompt: llm.DischargePrompt(),
		Pages:  pages,
		Model:  s.Model,
	})
	if err != nil {
		return entity.DischargeSummary{}, fmt.Errorf("discharge summary inference: %w", err)
	}

	tree, err := docjson.Extract(text)
	if err != nil {
		// surfaced to the caller verbatim; the position hint makes model
		// misbehavior diagnosable without re-running the document
		return entity.DischargeSummary{}, fmt.Errorf("AI returned invalid JSON that could not be parsed: %w", err)
	}
	if err := llm.ValidateDocument(llm.BuildDischargeSchema(), tree); err != nil {
		return entity.DischargeSummary{}, fmt.Errorf("discharge summary structure invalid: %w", err)
	}

	builder := records.NewBuilder(s.Logger, entity.DateOf(s.Now().UTC()))
	summary := builder.Discharge(tree)
	summary.Source = "discharge_summary"
	summary.ParsedAt = s.Now().UTC()
	summary.DocumentURL = url

	s.Logger.Info("pipeline.discharge.ok",
		"patient", patientName,
		"medications", len(summary.Medications),
		"followups", len(summary.Followups),
		"pages", len(pages),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return summary, nil
}
