package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dctops/salesmover/internal/config"
	"github.com/dctops/salesmover/internal/exitcode"
	"github.com/dctops/salesmover/internal/model"
	"github.com/dctops/salesmover/internal/notify"
	"github.com/dctops/salesmover/internal/organizer"
	"github.com/dctops/salesmover/internal/runlog"
	"github.com/dctops/salesmover/internal/scheduler"
	"github.com/dctops/salesmover/internal/storage"
)

func main() {
	// Ensure environment variables are loaded
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load env vars", "error", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitcode.ConfigError)
	}

	// Open the local log and make it the process-wide slog sink
	log, err := runlog.Open(cfg.LogFile)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(exitcode.ConfigError)
	}
	defer log.Close()
	slog.SetDefault(slog.New(log.Handler()))

	// Create a cancellable context (for graceful shutdown)
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize the object-storage gateway; this also bootstraps the bucket
	store, err := storage.NewMinIOClient(ctx, storage.MinIOConfig{
		Endpoint:  cfg.MinIOEndpoint,
		AccessKey: cfg.MinIOAccessKey,
		SecretKey: cfg.MinIOSecretKey,
		Bucket:    cfg.Bucket,
		Region:    cfg.AWSRegion,
		UseSSL:    cfg.MinIOUseSSL,
	})
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(exitcode.StorageError)
	}

	// Bootstrap the notification topic and the email subscription
	notifier, err := notify.NewSNSClient(ctx, cfg.AWSRegion)
	if err != nil {
		slog.Error("failed to initialize notifier", "error", err)
		os.Exit(exitcode.NotifyError)
	}
	topicARN, err := notifier.EnsureTopic(ctx, cfg.TopicName)
	if err != nil {
		slog.Error("failed to resolve topic", "topic", cfg.TopicName, "error", err)
		os.Exit(exitcode.NotifyError)
	}
	if err := notifier.SubscribeEmail(ctx, cfg.NotifyEmail); err != nil {
		slog.Error("failed to subscribe email", "email", cfg.NotifyEmail, "error", err)
		os.Exit(exitcode.NotifyError)
	}
	slog.Info("notifier ready", "topic_arn", topicARN)

	svc := organizer.NewService(store, notifier, cfg.SourcePrefix, cfg.CSVSourceDir)

	run := func(ctx context.Context) error {
		runID, err := model.NewRunID()
		if err != nil {
			return err
		}
		runErr := svc.Run(ctx, runID)

		// Mirror the log regardless of how the run went; an upload failure
		// can only be reported locally.
		if uploadErr := log.Upload(ctx, store, cfg.LogObjectKey); uploadErr != nil {
			slog.ErrorContext(ctx, "failed to mirror log to bucket", "run_id", runID, "error", uploadErr)
		}
		return runErr
	}

	scheduler.New(cfg.RunInterval).Run(ctx, run)

	slog.Info("shutdown complete")
}
