// Package audit wires the audit log bounded context.
package audit

import (
	apphttp "opticlinic_backend/internal/http"
	"opticlinic_backend/internal/audit/handler"
	"opticlinic_backend/internal/audit/repository"
	"opticlinic_backend/internal/audit/service"
	"opticlinic_backend/internal/events"
	"opticlinic_backend/platform/config"
	"opticlinic_backend/platform/logger"
	"opticlinic_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the audit log bounded context.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// New assembles the audit module and subscribes it to domain events.
func New(pool *pgxpool.Pool, cfg config.AuditConfig, bus events.Bus, log *logger.Logger, validate *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	svc.SubscribeEvents(bus)

	return &Module{
		handler: handler.New(svc, validate),
		service: svc,
	}
}

// Name returns the module identifier for logging.
func (m *Module) Name() string {
	return "audit"
}

// Service exposes the audit service for background jobs.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the audit endpoints under the admin group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/audit", m.handler.List)
}
