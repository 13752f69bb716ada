// @title APK Downloader API
// @version 1.0
// @description Uploads mobile build artifacts to object storage and lists their public URLs.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"apkdownloader/internal/config"
	"apkdownloader/internal/handler"
	"apkdownloader/internal/metrics"
	"apkdownloader/internal/port"
	"apkdownloader/internal/repository/postgres"
	"apkdownloader/internal/router"
	"apkdownloader/internal/service"
	miniostorage "apkdownloader/internal/storage/minio"
	s3storage "apkdownloader/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.DSN()); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	recordRepo := postgres.NewUploadRecordRepo(db)

	// Initialize storage
	storage, err := newObjectStorage(ctx, &cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Provider, err)
	}

	// Initialize metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	observer, err := metrics.NewPrometheusObserver("apkdl", reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	// Initialize services
	uploadSvc := service.NewUploadService(recordRepo, storage, &cfg.Storage, observer)
	listingSvc := service.NewListingService(recordRepo, cfg.Listing.Limit)

	// Initialize handlers
	uploadH := handler.NewUploadHandler(uploadSvc)
	filesH := handler.NewFilesHandler(listingSvc)
	healthH := handler.NewHealthHandler(recordRepo)

	// Setup router
	r := router.Setup(cfg, uploadH, filesH, healthH, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (storage=%s, bucket=%s)", cfg.Server.Port, cfg.Storage.Provider, cfg.Storage.Bucket)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newObjectStorage(ctx context.Context, cfg *config.StorageConfig) (port.ObjectStorage, error) {
	switch cfg.Provider {
	case config.StorageProviderMinIO:
		return miniostorage.NewMinioClient(ctx, cfg)
	default:
		return s3storage.NewS3Client(cfg)
	}
}
