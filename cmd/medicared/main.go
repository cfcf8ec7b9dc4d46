package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vibhandikyash/MediCare-BE/internal/common"
	"github.com/vibhandikyash/MediCare-BE/internal/export"
	"github.com/vibhandikyash/MediCare-BE/internal/llm/openrouter"
	"github.com/vibhandikyash/MediCare-BE/internal/pdf"
	"github.com/vibhandikyash/MediCare-BE/internal/pipeline"
	"github.com/vibhandikyash/MediCare-BE/internal/repository"
	"github.com/vibhandikyash/MediCare-BE/internal/server"
	"github.com/vibhandikyash/MediCare-BE/internal/storage"
)

func main() {
	// Logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	log := logger.Sugar()

	// slog for the internals, zap for process lifecycle
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// Context with signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB pool
	pool, err := repository.Open(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, slogger)
	if err != nil {
		log.Fatalf("opening DB: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrating DB: %v", err)
	}

	// Blob storage
	store, err := storage.New(&storage.Config{
		ConnectionString: cfg.Storage.ConnectionString,
		ContainerName:    cfg.Storage.ContainerName,
	}, slogger)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	// Vision client
	vision := openrouter.NewClient(openrouter.Config{
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
		SiteURL:  cfg.LLM.SiteURL,
		SiteName: cfg.LLM.SiteName,
	}, slogger)

	raster := pdf.NewImageExtractor(slogger)
	patients := repository.NewPatientRepository(pool, slogger)
	processor := pipeline.NewProcessor(slogger,
		pipeline.NewDischargeStage(slogger, raster, store, vision, cfg.LLM.Model),
		pipeline.NewBatchProcessor(slogger, raster, store, vision, cfg.LLM.Model, cfg.Pipeline.BatchWorkers),
	)

	srv := server.New(server.Options{
		Logger:         slogger,
		Patients:       patients,
		Processor:      processor,
		Exporter:       export.NewService(patients, slogger),
		DB:             pool,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Router(),
	}

	go func() {
		log.Infof("HTTP serving on %s", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}
	log.Info("stopped.")
}
