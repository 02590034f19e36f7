package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/padidar/visitor-analytics-go/internal/api"
	"github.com/padidar/visitor-analytics-go/internal/config"
	"github.com/padidar/visitor-analytics-go/internal/database"
	"github.com/padidar/visitor-analytics-go/internal/handler"
	"github.com/padidar/visitor-analytics-go/internal/ingest"
	"github.com/padidar/visitor-analytics-go/internal/logging"
	"github.com/padidar/visitor-analytics-go/internal/report"
	"github.com/padidar/visitor-analytics-go/internal/repository"
	"github.com/padidar/visitor-analytics-go/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	db, err := database.Open(database.Config{Path: cfg.Database.Path})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	visitRepo := repository.NewVisitRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	accountRepo := repository.NewAccountRepository(db)

	policy, err := cfg.Report.Policy()
	if err != nil {
		return err
	}
	engine, err := report.NewEngine(visitRepo, policy)
	if err != nil {
		return err
	}

	reportSvc := service.NewReportService(engine, visitRepo, catalogRepo, cfg.Server.QueryTimeout, logger)
	catalogSvc := service.NewCatalogService(catalogRepo, cfg.Server.QueryTimeout, logger)
	authSvc := service.NewAuthService(accountRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)

	router := api.SetupRouter(cfg, logger, api.Handlers{
		Reports: handler.NewReportHandler(reportSvc),
		Export:  handler.NewExportHandler(reportSvc),
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Auth:    handler.NewAuthHandler(authSvc),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ingestErr := make(chan error, 1)
	if cfg.Ingest.Enabled {
		consumer, err := ingest.NewConsumer(cfg.Ingest, visitRepo, logger)
		if err != nil {
			return err
		}
		go func() {
			logger.Info("starting ingest consumer", zap.String("topic", cfg.Ingest.Topic))
			ingestErr <- consumer.Run(ctx)
		}()
	}

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: router,
	}
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case err := <-ingestErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("ingest consumer failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
