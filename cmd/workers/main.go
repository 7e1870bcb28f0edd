package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"careerai/internal/analyzer"
	"careerai/internal/config"
	"careerai/internal/logging"
	"careerai/internal/metrics"
	"careerai/internal/pdftext"
	"careerai/internal/postgresdb"
	"careerai/internal/processor"
	"careerai/internal/provider"
	"careerai/internal/s3"
	"careerai/internal/valkeydb"
)

func main() {
	logging.New(os.Getenv("LOG_LEVEL")).Install()
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel).Install()

	if cfg.S3Bucket == "" {
		logger.Error("S3_BUCKET_NAME is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	postgresDB, err := postgresdb.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to initialize postgresdb", "error", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	valkeyQueue, err := valkeydb.New(ctx, cfg.ValkeyURL, cfg.ValkeyPassword)
	if err != nil {
		logger.Error("failed to initialize valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyQueue.Close()

	s3Store, err := s3.NewFileStore(ctx, s3.S3Config{
		EndpointURL: cfg.S3EndpointURL,
		Region:      cfg.S3Region,
		AccessKey:   cfg.S3AccessKey,
		SecretKey:   cfg.S3SecretKey,
	})
	if err != nil {
		logger.Error("could not create S3 filestore", "error", err)
		os.Exit(1)
	}

	completer, err := provider.New(ctx, cfg, metrics.NewCompletionMetrics(nil))
	if err != nil {
		logger.Error("failed to initialize completion provider", "error", err)
		os.Exit(1)
	}

	reviewer := analyzer.New(completer, pdftext.NewExtractor(), cfg.Model, cfg.ATSModel)

	worker := processor.NewJobProcessor(
		postgresDB,
		valkeyQueue,
		s3Store,
		cfg.S3Bucket,
		reviewer,
		logger,
		metrics.NewJobMetrics(nil),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	<-sigChan
	logger.Info("shutdown signal received, stopping workers")
	cancel()
	<-done

	logger.Info("worker shutdown complete")
}
