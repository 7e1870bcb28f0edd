package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"careerai/internal/analyzer"
	"careerai/internal/api"
	"careerai/internal/config"
	"careerai/internal/logging"
	"careerai/internal/metrics"
	"careerai/internal/pdftext"
	"careerai/internal/postgresdb"
	"careerai/internal/provider"
	"careerai/internal/redis"
	"careerai/internal/s3"
	"careerai/internal/valkeydb"
)

func main() {
	logging.New(os.Getenv("LOG_LEVEL")).Install()
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel).Install()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	completer, err := provider.New(ctx, cfg, metrics.NewCompletionMetrics(nil))
	if err != nil {
		logger.Error("failed to initialize completion provider", "error", err)
		os.Exit(1)
	}

	a := analyzer.New(completer, pdftext.NewExtractor(), cfg.Model, cfg.ATSModel)

	opts := api.Options{
		UploadDir:      cfg.UploadDir,
		MaxUploadBytes: cfg.MaxUploadBytes,
		S3Bucket:       cfg.S3Bucket,
		Logger:         logger,
	}

	if cfg.RedisURL != "" {
		redisClient, err := redis.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to initialize redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()

		opts.History = redis.NewHistoryStore(redisClient.Client, cfg.ChatHistoryTTL)
		logger.Info("chat history enabled")
	}

	if cfg.DatabaseURL != "" && cfg.ValkeyURL != "" && cfg.S3Bucket != "" {
		postgresDB, err := postgresdb.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to initialize postgresdb", "error", err)
			os.Exit(1)
		}
		defer postgresDB.Close()

		if err := postgresDB.Migrate(ctx); err != nil {
			logger.Error("failed to migrate jobs table", "error", err)
			os.Exit(1)
		}

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

		opts.Jobs = postgresDB
		opts.Queue = valkeyQueue
		opts.Uploader = s3Store
		logger.Info("background analysis enabled", "bucket", cfg.S3Bucket)
	}

	router := api.NewRouter(api.NewAPIHandler(a, opts), cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr, "provider", cfg.Provider, "model", cfg.Model)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received, stopping server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server shutdown complete")
}
