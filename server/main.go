package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phambaophuc/doc-watermark/internal/adapter/pdf"
	"github.com/phambaophuc/doc-watermark/internal/adapter/raster"
	"github.com/phambaophuc/doc-watermark/internal/config"
	"github.com/phambaophuc/doc-watermark/internal/convert"
	"github.com/phambaophuc/doc-watermark/internal/http/handlers"
	"github.com/phambaophuc/doc-watermark/internal/http/routes"
	"github.com/phambaophuc/doc-watermark/internal/normalize"
	"github.com/phambaophuc/doc-watermark/internal/services/processor"
	"github.com/phambaophuc/doc-watermark/internal/services/queue"
	"github.com/phambaophuc/doc-watermark/internal/services/storage"
	"github.com/phambaophuc/doc-watermark/internal/watermark"
	"go.uber.org/zap"
)

const cacheCleanupInterval = time.Hour

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Engine
	converter := convert.NewLibreOffice(logger,
		convert.WithBinary(cfg.Converter.Binary),
		convert.WithTempDir(cfg.Converter.TempDir),
		convert.WithTimeout(cfg.Converter.Timeout),
	)
	registry := watermark.DefaultRegistry(watermark.Adapters{
		Image: raster.New(raster.WithQuality(cfg.Watermark.JPEGQuality)),
		Pdf: pdf.New(logger,
			pdf.WithBinary(cfg.PDF.Binary),
			pdf.WithTempDir(cfg.PDF.TempDir),
			pdf.WithTimeout(cfg.PDF.Timeout),
		),
	})
	engine := watermark.NewEngine(registry, normalize.New(converter, logger), logger)
	documentProcessor := processor.NewDocumentProcessor(engine, cfg.Watermark, logger)

	// Storage and queue are optional; stamping works without them.
	var (
		store handlers.DocumentStore
		jobs  handlers.JobQueue
	)

	storageService, err := storage.NewStorageService(cfg)
	if err != nil {
		logger.Warn("Failed to initialize storage service", zap.Error(err))
	} else {
		store = storageService
		defer storageService.Close()
		go cleanupCache(ctx, storageService, logger)

		queueService, err := queue.NewQueueService(queue.Options{
			URL:         cfg.RabbitMQ.URL,
			Queue:       cfg.RabbitMQ.Queue,
			MaxFileSize: cfg.Storage.MaxFileSize,
		}, documentProcessor, storageService, logger)
		if err != nil {
			logger.Warn("Failed to initialize queue service", zap.Error(err))
		} else {
			jobs = queueService
			defer queueService.Close()

			for i := 1; i <= cfg.RabbitMQ.Workers; i++ {
				if err := queueService.StartWorker(ctx, i); err != nil {
					logger.Error("Failed to start worker", zap.Int("worker_id", i), zap.Error(err))
				}
			}
		}
	}

	watermarkHandler := handlers.NewWatermarkHandler(documentProcessor, store, jobs, logger, cfg)
	router := routes.NewRouter(watermarkHandler, logger, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	go func() {
		logger.Info("Starting server",
			zap.String("addr", server.Addr),
			zap.Strings("strategies", documentProcessor.Strategies()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func cleanupCache(ctx context.Context, s *storage.StorageService, logger *zap.Logger) {
	ticker := time.NewTicker(cacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.CleanupCache(ctx); err != nil {
				logger.Warn("Cache cleanup failed", zap.Error(err))
			}
		}
	}
}
