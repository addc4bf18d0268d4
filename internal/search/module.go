// Package search wires the global search bounded context.
package search

import (
	apphttp "opticlinic_backend/internal/http"
	"opticlinic_backend/internal/search/handler"
	"opticlinic_backend/internal/search/recents"
	"opticlinic_backend/internal/search/repository"
	"opticlinic_backend/internal/search/service"
	"opticlinic_backend/platform/cache"
	"opticlinic_backend/platform/config"
	"opticlinic_backend/platform/logger"
	"opticlinic_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the global search bounded context.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// New assembles the search module from shared infrastructure.
func New(pool *pgxpool.Pool, redisClient *redis.Client, cfg config.SearchConfig, log *logger.Logger, validate *validator.Validator) *Module {
	repo := repository.New(pool)
	recentStore := recents.New(redisClient, cfg.GetRecentSearchMax())
	svc := service.New(repo, cache.New(redisClient), recentStore, cfg, log)

	return &Module{
		handler: handler.New(svc, validate),
		service: svc,
	}
}

// Name returns the module identifier for logging.
func (m *Module) Name() string {
	return "search"
}

// Service exposes the search service for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the search endpoints.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/search")
	group.Use(ctx.SearchRateLimiter.RateLimit())
	{
		group.GET("/global", m.handler.Search)
		group.GET("/recent", m.handler.Recent)
		group.DELETE("/recent", m.handler.ClearRecent)
	}
}
