// Package service implements the global search aggregation logic.
package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"opticlinic_backend/internal/search/recents"
	"opticlinic_backend/internal/search/repository"
	"opticlinic_backend/internal/search/transport"
	"opticlinic_backend/platform/apperr"
	"opticlinic_backend/platform/cache"
	"opticlinic_backend/platform/config"
	"opticlinic_backend/platform/logger"
	"opticlinic_backend/platform/phone"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Categories, in the order groups appear in every response.
const (
	CategoryPatients = "patients"
	CategoryStaff    = "staff"
	CategoryVisits   = "visits"
	CategoryScans    = "scans"
	CategoryProducts = "products"
)

var categoryOrder = []string{
	CategoryPatients,
	CategoryStaff,
	CategoryVisits,
	CategoryScans,
	CategoryProducts,
}

// CategoryOrder returns the fixed category ordering used in responses.
func CategoryOrder() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

type Service struct {
	repo    *repository.Repository
	cache   *cache.Cache
	recents *recents.Store
	cfg     config.SearchConfig
	log     *logger.Logger
}

func New(repo *repository.Repository, c *cache.Cache, r *recents.Store, cfg config.SearchConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cache: c, recents: r, cfg: cfg, log: log}
}

// Search runs the query against every category concurrently and returns the
// grouped results. Identical (branch, limit, query) tuples within the cache
// TTL are served from Redis. A successful search is recorded in the caller's
// recent queries.
func (s *Service) Search(ctx context.Context, userID uuid.UUID, branchID *uuid.UUID, rawQuery string, limit int) (*transport.SearchResponse, error) {
	query := strings.TrimSpace(rawQuery)
	if query == "" {
		return &transport.SearchResponse{
			Query:   query,
			Results: transport.NewResultSet(),
		}, nil
	}
	if limit <= 0 {
		limit = s.cfg.GetSearchDefaultLimit()
	}

	start := time.Now()
	cacheKey := s.cacheKey(branchID, limit, query)

	var cached transport.SearchResponse
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		if cached.Results == nil {
			cached.Results = transport.NewResultSet()
		}
		s.saveRecent(ctx, userID, query)
		s.log.SearchQuery(query, cached.TotalCount, true, float64(time.Since(start).Microseconds())/1000)
		return &cached, nil
	}

	q := repository.Query{Text: query}
	if phone.LooksLikeNumber(query) {
		q.Phone = phone.NormalizeE164(query)
	}

	var mu sync.Mutex
	grouped := make(map[string][]repository.Row, len(categoryOrder))
	group, groupCtx := errgroup.WithContext(ctx)

	fetchers := map[string]func(context.Context) ([]repository.Row, error){
		CategoryPatients: func(ctx context.Context) ([]repository.Row, error) {
			return s.repo.SearchPatients(ctx, branchID, q, limit)
		},
		CategoryStaff: func(ctx context.Context) ([]repository.Row, error) {
			return s.repo.SearchStaff(ctx, branchID, q, limit)
		},
		CategoryVisits: func(ctx context.Context) ([]repository.Row, error) {
			return s.repo.SearchVisits(ctx, branchID, q, limit)
		},
		CategoryScans: func(ctx context.Context) ([]repository.Row, error) {
			return s.repo.SearchScans(ctx, branchID, q, limit)
		},
		CategoryProducts: func(ctx context.Context) ([]repository.Row, error) {
			return s.repo.SearchProducts(ctx, q, limit)
		},
	}

	for _, category := range categoryOrder {
		category := category
		fetch := fetchers[category]
		group.Go(func() error {
			rows, err := fetch(groupCtx)
			if err != nil {
				return fmt.Errorf("%s: %w", category, err)
			}
			mu.Lock()
			grouped[category] = rows
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "search failed", err)
	}

	response := &transport.SearchResponse{
		Query:   query,
		Results: transport.NewResultSet(),
	}
	for _, category := range categoryOrder {
		rows := grouped[category]
		if len(rows) == 0 {
			continue
		}
		results := make([]transport.SearchResult, 0, len(rows))
		for _, row := range rows {
			results = append(results, transport.SearchResult{
				ID:       row.ID,
				Title:    row.Title,
				Subtitle: row.Subtitle,
				URL:      resultURL(category, row.ID),
			})
		}
		response.Results.Set(category, results)
		response.TotalCount += len(results)
	}

	if err := s.cache.Set(ctx, cacheKey, response, s.cfg.GetSearchCacheTTL()); err != nil {
		s.log.Warn("failed to cache search response", "error", err)
	}
	s.saveRecent(ctx, userID, query)

	s.log.SearchQuery(query, response.TotalCount, false, float64(time.Since(start).Microseconds())/1000)
	return response, nil
}

// Recent returns the caller's recent queries, most recent first.
func (s *Service) Recent(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.recents.List(ctx, userID)
}

// ClearRecent removes the caller's recent queries.
func (s *Service) ClearRecent(ctx context.Context, userID uuid.UUID) error {
	return s.recents.Clear(ctx, userID)
}

func (s *Service) saveRecent(ctx context.Context, userID uuid.UUID, query string) {
	if err := s.recents.Save(ctx, userID, query); err != nil {
		s.log.Warn("failed to save recent search", "error", err)
	}
}

func (s *Service) cacheKey(branchID *uuid.UUID, limit int, query string) string {
	branch := "all"
	if branchID != nil {
		branch = branchID.String()
	}
	return fmt.Sprintf("search:global:%s:%d:%s", branch, limit, strings.ToLower(query))
}

// resultURL builds the frontend route for a hit. Clients treat it as opaque.
func resultURL(category string, id int64) string {
	switch category {
	case CategoryPatients:
		return fmt.Sprintf("/patients/%d", id)
	case CategoryStaff:
		return fmt.Sprintf("/staff/%d", id)
	case CategoryVisits:
		return fmt.Sprintf("/visits/%d", id)
	case CategoryScans:
		return fmt.Sprintf("/scans/%d", id)
	case CategoryProducts:
		return fmt.Sprintf("/inventory/%d", id)
	default:
		return fmt.Sprintf("/%s/%d", category, id)
	}
}
