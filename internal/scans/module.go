// Package scans wires the diagnostic scan bounded context.
package scans

import (
	"opticlinic_backend/internal/adapters/storage"
	"opticlinic_backend/internal/events"
	apphttp "opticlinic_backend/internal/http"
	"opticlinic_backend/internal/jobs"
	"opticlinic_backend/internal/scans/handler"
	"opticlinic_backend/internal/scans/repository"
	"opticlinic_backend/internal/scans/service"
	"opticlinic_backend/platform/config"
	"opticlinic_backend/platform/logger"
	"opticlinic_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the diagnostic scan bounded context.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

func New(pool *pgxpool.Pool, store *storage.Service, queue jobs.ScanEnqueuer, bus events.Bus, cfg config.MinIOConfig, log *logger.Logger, validate *validator.Validator) *Module {
	svc := service.New(repository.New(pool), store, queue, bus, cfg, log)
	return &Module{
		handler: handler.New(svc, validate),
		service: svc,
	}
}

// Name returns the module identifier for logging.
func (m *Module) Name() string {
	return "scans"
}

// Service exposes the scan service for the background worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the scan endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/scans")
	{
		group.POST("", m.handler.Upload)
		group.GET("", m.handler.List)
		group.GET("/:id/download", m.handler.Download)
	}
}
