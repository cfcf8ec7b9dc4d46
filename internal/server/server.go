// Package server exposes the patient intake pipeline over HTTP: multipart
// document submission, patient retrieval, and XLSX export.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vibhandikyash/MediCare-BE/internal/entity"
	"github.com/vibhandikyash/MediCare-BE/internal/export"
	"github.com/vibhandikyash/MediCare-BE/internal/pipeline"
	"github.com/vibhandikyash/MediCare-BE/internal/repository"
)

// DocumentProcessor runs one patient submission through the pipeline.
type DocumentProcessor interface {
	Run(ctx context.Context, req pipeline.Request) (entity.Patient, pipeline.Summary, error)
}

// Pinger reports backend-store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	logger    *slog.Logger
	patients  repository.PatientRepository
	processor DocumentProcessor
	exporter  *export.Service
	db        Pinger

	maxUploadBytes int64
}

type Options struct {
	Logger         *slog.Logger
	Patients       repository.PatientRepository
	Processor      DocumentProcessor
	Exporter       *export.Service
	DB             Pinger
	MaxUploadBytes int64
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	return &Server{
		logger:         opts.Logger,
		patients:       opts.Patients,
		processor:      opts.Processor,
		exporter:       opts.Exporter,
		db:             opts.DB,
		maxUploadBytes: opts.MaxUploadBytes,
	}
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1/patients", func(pr chi.Router) {
		pr.Post("/", s.handleCreatePatient)
		pr.Get("/", s.handleListPatients)
		pr.Get("/{patientID}", s.handleGetPatient)
		pr.Get("/{patientID}/export", s.handleExportPatient)
	})

	return r
}
