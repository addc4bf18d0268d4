package jobs

import (
	"context"
	"fmt"

	"opticlinic_backend/platform/config"
	"opticlinic_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// ScanProcessor runs post-processing on an uploaded scan.
type ScanProcessor interface {
	ProcessScan(ctx context.Context, scanID int64) error
}

// AuditPruner removes audit entries past their retention period.
type AuditPruner interface {
	Prune(ctx context.Context) (int64, error)
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	scans  ScanProcessor
	audit  AuditPruner
	log    *logger.Logger
}

func NewWorker(cfg config.JobsConfig, scans ScanProcessor, audit AuditPruner, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		scans:  scans,
		audit:  audit,
		log:    log,
	}

	mux.HandleFunc(TaskScanProcess, w.handleScanProcess)
	mux.HandleFunc(TaskAuditPrune, w.handleAuditPrune)

	return w, nil
}

func (w *Worker) handleScanProcess(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseScanProcessPayload(task)
	if err != nil {
		return err
	}

	if err := w.scans.ProcessScan(ctx, payload.ScanID); err != nil {
		w.log.JobEvent(TaskScanProcess, false, err.Error())
		return err
	}
	w.log.JobEvent(TaskScanProcess, true, "")
	return nil
}

func (w *Worker) handleAuditPrune(ctx context.Context, task *asynq.Task) error {
	removed, err := w.audit.Prune(ctx)
	if err != nil {
		w.log.JobEvent(TaskAuditPrune, false, err.Error())
		return err
	}
	w.log.JobEvent(TaskAuditPrune, true, fmt.Sprintf("removed %d entries", removed))
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("jobs worker stopped", "error", err)
	}
}
