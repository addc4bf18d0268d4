package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opticlinic_backend/internal/adapters/storage"
	auditrepo "opticlinic_backend/internal/audit/repository"
	auditservice "opticlinic_backend/internal/audit/service"
	"opticlinic_backend/internal/events"
	"opticlinic_backend/internal/jobs"
	scansrepo "opticlinic_backend/internal/scans/repository"
	scansservice "opticlinic_backend/internal/scans/service"
	"opticlinic_backend/platform/config"
	"opticlinic_backend/platform/db"
	"opticlinic_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const auditPruneInterval = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	if !cfg.IsMinIOEnabled() {
		panic("MINIO_ENDPOINT is required: the worker downloads scan files during processing")
	}
	storageSvc, err := storage.New(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	eventBus := events.NewInMemoryBus(log)

	auditSvc := auditservice.New(auditrepo.New(pool), cfg, log)
	auditSvc.SubscribeEvents(eventBus)

	jobClient, err := jobs.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize job client", "error", err)
		panic("failed to initialize job client: " + err.Error())
	}
	defer jobClient.Close()

	scansSvc := scansservice.New(scansrepo.New(pool), storageSvc, jobClient, eventBus, cfg, log)

	worker, err := jobs.NewWorker(cfg, scansSvc, auditSvc, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	go scheduleAuditPrune(ctx, jobClient, log)

	worker.Run(ctx)
	log.Info("worker stopped")
}

// scheduleAuditPrune enqueues a retention sweep once on startup and then
// every 24 hours until shutdown.
func scheduleAuditPrune(ctx context.Context, client *jobs.Client, log *logger.Logger) {
	if err := client.EnqueueAuditPrune(ctx); err != nil {
		log.Warn("failed to enqueue audit prune", "error", err)
	}

	ticker := time.NewTicker(auditPruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.EnqueueAuditPrune(ctx); err != nil {
				log.Warn("failed to enqueue audit prune", "error", err)
			}
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
