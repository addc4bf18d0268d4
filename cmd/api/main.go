package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opticlinic_backend/internal/adapters/storage"
	"opticlinic_backend/internal/audit"
	"opticlinic_backend/internal/email"
	"opticlinic_backend/internal/events"
	apphttp "opticlinic_backend/internal/http"
	"opticlinic_backend/internal/http/router"
	"opticlinic_backend/internal/jobs"
	"opticlinic_backend/internal/notification"
	"opticlinic_backend/internal/referrals"
	"opticlinic_backend/internal/revenue"
	"opticlinic_backend/internal/scans"
	"opticlinic_backend/internal/search"
	"opticlinic_backend/platform/cache"
	"opticlinic_backend/platform/config"
	"opticlinic_backend/platform/db"
	"opticlinic_backend/platform/logger"
	"opticlinic_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	if cfg.RedisURL == "" {
		panic("REDIS_URL is required: the search cache and job queue depend on it")
	}
	redisClient, err := cache.NewClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	defer redisClient.Close()

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	jobClient, closeJobs := initJobClient(cfg, log)
	if closeJobs != nil {
		defer closeJobs()
	}

	var storageSvc *storage.Service
	if cfg.IsMinIOEnabled() {
		storageSvc, err = storage.New(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure scans bucket", 5, 2*time.Second, func() error {
			return storageSvc.EnsureBucket(ctx, cfg.GetMinioBucketScans())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketScans())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		log.Info("storage service initialized", "scansBucket", cfg.GetMinioBucketScans())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; scan uploads disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	if cfg.IsEmailEnabled() {
		notificationService := notification.New(email.NewSMTPSender(cfg), cfg, log)
		notificationService.SubscribeEvents(eventBus)
	} else {
		log.Warn("EMAIL_ENABLED is false; referral notifications disabled")
	}

	searchModule := search.New(pool, redisClient, cfg, log, val)
	auditModule := audit.New(pool, cfg, eventBus, log, val)
	revenueModule := revenue.New(pool, val)
	referralsModule := referrals.New(pool, eventBus, val)

	modules := []apphttp.Module{
		searchModule,
		auditModule,
		revenueModule,
		referralsModule,
	}
	if storageSvc != nil {
		scansModule := scans.New(pool, storageSvc, jobClient, eventBus, cfg, log, val)
		modules = append(modules, scansModule)
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules:  modules,
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initJobClient(cfg config.JobsConfig, log *logger.Logger) (*jobs.Client, func()) {
	client, err := jobs.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize job client", "error", err)
		return nil, nil
	}
	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

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
