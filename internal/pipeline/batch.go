package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vibhandikyash/MediCare-BE/constants"
	"github.com/vibhandikyash/MediCare-BE/internal/docjson"
	"github.com/vibhandikyash/MediCare-BE/internal/entity"
	"github.com/vibhandikyash/MediCare-BE/internal/llm"
	"github.com/vibhandikyash/MediCare-BE/internal/pdf"
	"github.com/vibhandikyash/MediCare-BE/internal/records"
	"github.com/vibhandikyash/MediCare-BE/internal/storage"
)

const defaultWorkers = 3

// BatchProcessor runs bill and report batches with per-item isolation: every
// input yields exactly one result, in input order, and no item failure
// escapes the batch boundary. Items fan out concurrently with bounded
// workers; each item writes only its own result slot.
type BatchProcessor struct {
	Logger  *slog.Logger
	Raster  pdf.Rasterizer
	Store   storage.System
	Vision  llm.VisionClient
	Model   string
	Workers int
	Now     func() time.Time
}

func NewBatchProcessor(logger *slog.Logger, raster pdf.Rasterizer, store storage.System, vision llm.VisionClient, model string, workers int) *BatchProcessor {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &BatchProcessor{
		Logger:  logger,
		Raster:  raster,
		Store:   store,
		Vision:  vision,
		Model:   model,
		Workers: workers,
		Now:     time.Now,
	}
}

// ProcessBills parses a batch of bill PDFs.
func (p *BatchProcessor) ProcessBills(ctx context.Context, docs []Document, patientName string) []BatchItemResult {
	folder := "medicare/patients/" + patientName + "/bills"
	schema := llm.BuildBillSchema()
	return p.run(ctx, docs, folder, llm.BillPrompt(), schema, func(b *records.Builder, tree map[string]any, url string, res *BatchItemResult) {
		bill := b.Bill(tree)
		bill.FileURL = url
		res.Bill = &bill
	})
}

// ProcessReports parses a batch of lab report PDFs. The medication list and
// diagnosis feed the prompt so the model can infer why each test was
// ordered.
func (p *BatchProcessor) ProcessReports(ctx context.Context, docs []Document, patientName string, medications []entity.Medication, diagnosis string) []BatchItemResult {
	folder := "medicare/patients/" + patientName + "/reports"
	schema := llm.BuildReportSchema()
	return p.run(ctx, docs, folder, llm.ReportPrompt(medications, diagnosis), schema, func(b *records.Builder, tree map[string]any, url string, res *BatchItemResult) {
		report := b.Report(tree)
		report.FileURL = url
		res.Report = &report
	})
}

type attachFunc func(b *records.Builder, tree map[string]any, url string, res *BatchItemResult)

func (p *BatchProcessor) run(ctx context.Context, docs []Document, folder, prompt string, schema map[string]any, attach attachFunc) []BatchItemResult {
	results := make([]BatchItemResult, len(docs))

	g := new(errgroup.Group)
	g.SetLimit(p.Workers)
	for i, doc := range docs {
		g.Go(func() error {
			results[i] = p.processOne(ctx, doc, folder, prompt, schema, attach)
			return nil
		})
	}
	// workers report outcomes through their result slot, never as errors
	_ = g.Wait()

	return results
}

// processOne drives one document through the per-item state machine:
// Pending → {Skipped|RasterizeFailed|StoreFailed|InferenceFailed|
// ExtractionFailed|ValidationFailed|Succeeded}. Every terminal state is
// reported, never thrown.
func (p *BatchProcessor) processOne(ctx context.Context, doc Document, folder, prompt string, schema map[string]any, attach attachFunc) (res BatchItemResult) {
	res = BatchItemResult{Source: doc.Name, Status: constants.DocPending}
	defer func() {
		if r := recover(); r != nil {
			res.Status = constants.DocExtractionFailed
			res.Reason = fmt.Sprintf("panic: %v", r)
			p.Logger.Error("pipeline.batch.panic", "source", doc.Name, "panic", r)
		}
	}()

	if !constants.IsPDF(doc.Data) {
		res.Status = constants.DocSkipped
		res.Reason = "not a PDF document"
		p.Logger.Warn("pipeline.batch.skipped", "source", doc.Name, "reason", res.Reason)
		return res
	}

	pages, err := p.Raster.Rasterize(ctx, doc.Data)
	if err != nil {
		return p.failed(res, constants.DocRasterizeFailed, "rasterize", doc.Name, err)
	}
	url, err := p.Store.Upload(ctx, folder, doc.Name, doc.Data, "application/pdf")
	if err != nil {
		return p.failed(res, constants.DocStoreFailed, "store", doc.Name, err)
	}

	text, err := p.Vision.Complete(ctx, llm.VisionRequest{Prompt: prompt, Pages: pages, Model: p.Model})
	if err != nil {
		return p.failed(res, constants.DocInferenceFailed, "inference", doc.Name, err)
	}

	tree, err := docjson.Extract(text)
	if err != nil {
		return p.failed(res, constants.DocExtractionFailed, "extract", doc.Name, err)
	}
	if err := llm.ValidateDocument(schema, tree); err != nil {
		return p.failed(res, constants.DocValidationFailed, "validate", doc.Name, err)
	}

	builder := records.NewBuilder(p.Logger, entity.DateOf(p.Now().UTC()))
	attach(builder, tree, url, &res)
	res.Status = constants.DocSucceeded
	p.Logger.Info("pipeline.batch.ok", "source", doc.Name)
	return res
}

func (p *BatchProcessor) failed(res BatchItemResult, status constants.DocStatus, step, source string, err error) BatchItemResult {
	res.Status = status
	res.Reason = fmt.Sprintf("%s: %v", step, err)
	p.Logger.Error("pipeline.batch.failed", "source", source, "step", step, "error", err)
	return res
}
