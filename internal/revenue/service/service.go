// Package service implements revenue listing and summary reporting.
package service

import (
	"context"

	"opticlinic_backend/internal/revenue/repository"
	"opticlinic_backend/internal/revenue/transport"
	"opticlinic_backend/platform/apperr"
	"opticlinic_backend/platform/httpkit"

	"github.com/google/uuid"
)

const defaultPageSize = 25

type Service struct {
	repo *repository.Repository
}

func New(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// buildFilter scopes the request to the caller's branch. A branch-scoped
// user may not query another branch; head-office users may pick any branch
// or omit the filter to see all.
func buildFilter(callerBranch *uuid.UUID, req transport.ListRequest) (repository.Filter, error) {
	filter := repository.Filter{
		Status: req.Status,
		From:   req.From,
		To:     req.To,
	}

	if req.Branch != "" {
		requested, err := uuid.Parse(req.Branch)
		if err != nil {
			return filter, apperr.Validation("invalid branch id")
		}
		if callerBranch != nil && *callerBranch != requested {
			return filter, apperr.Forbidden("cannot query another branch")
		}
		filter.BranchID = &requested
	} else {
		filter.BranchID = callerBranch
	}

	if req.From != nil && req.To != nil && !req.To.After(*req.From) {
		return filter, apperr.Validation("date range is empty")
	}
	return filter, nil
}

// List returns a page of revenue entries in the standard envelope.
func (s *Service) List(ctx context.Context, callerBranch *uuid.UUID, req transport.ListRequest) (*transport.ListResponse, error) {
	filter, err := buildFilter(callerBranch, req)
	if err != nil {
		return nil, err
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	items, err := s.repo.List(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list revenue entries", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count revenue entries", err)
	}

	envelope := httpkit.NewPage(items, total, page, pageSize)
	return &envelope, nil
}

// Summary aggregates matching entries per day.
func (s *Service) Summary(ctx context.Context, callerBranch *uuid.UUID, req transport.ListRequest) (*transport.SummaryResponse, error) {
	filter, err := buildFilter(callerBranch, req)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.Summary(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to summarize revenue", err)
	}

	response := &transport.SummaryResponse{
		Currency:    "USD",
		CountByDay:  make(map[string]int64, len(totals)),
		AmountByDay: make(map[string]int64, len(totals)),
	}
	for _, dt := range totals {
		day := dt.Day.Format("2006-01-02")
		response.CountByDay[day] = dt.Count
		response.AmountByDay[day] = dt.AmountCents
		response.TotalCents += dt.AmountCents
	}
	return response, nil
}
