// Package revenue wires the revenue reporting bounded context.
package revenue

import (
	apphttp "opticlinic_backend/internal/http"
	"opticlinic_backend/internal/revenue/handler"
	"opticlinic_backend/internal/revenue/repository"
	"opticlinic_backend/internal/revenue/service"
	"opticlinic_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the revenue reporting bounded context.
type Module struct {
	handler *handler.Handler
}

func New(pool *pgxpool.Pool, validate *validator.Validator) *Module {
	svc := service.New(repository.New(pool))
	return &Module{handler: handler.New(svc, validate)}
}

// Name returns the module identifier for logging.
func (m *Module) Name() string {
	return "revenue"
}

// RegisterRoutes mounts the revenue endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/revenue")
	{
		group.GET("", m.handler.List)
		group.GET("/summary", m.handler.Summary)
	}
}
