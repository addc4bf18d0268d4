// Package referrals wires the patient referral bounded context.
package referrals

import (
	apphttp "opticlinic_backend/internal/http"
	"opticlinic_backend/internal/events"
	"opticlinic_backend/internal/referrals/handler"
	"opticlinic_backend/internal/referrals/repository"
	"opticlinic_backend/internal/referrals/service"
	"opticlinic_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the patient referral bounded context.
type Module struct {
	handler *handler.Handler
}

func New(pool *pgxpool.Pool, bus events.Bus, validate *validator.Validator) *Module {
	svc := service.New(repository.New(pool), bus)
	return &Module{handler: handler.New(svc, validate)}
}

// Name returns the module identifier for logging.
func (m *Module) Name() string {
	return "referrals"
}

// RegisterRoutes mounts the referral endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/referrals")
	{
		group.POST("", m.handler.Create)
		group.GET("", m.handler.List)
		group.PATCH("/:id/status", m.handler.UpdateStatus)
	}
}
