// Package service implements referral intake and tracking.
package service

import (
	"context"
	"errors"

	"opticlinic_backend/internal/events"
	"opticlinic_backend/internal/referrals/repository"
	"opticlinic_backend/internal/referrals/transport"
	"opticlinic_backend/platform/apperr"
	"opticlinic_backend/platform/httpkit"
	"opticlinic_backend/platform/phone"

	"github.com/google/uuid"
)

const defaultPageSize = 25

type Service struct {
	repo *repository.Repository
	bus  events.Bus
}

func New(repo *repository.Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Create records a referral scoped to the caller's branch and publishes a
// ReferralReceived event for downstream notification and auditing.
func (s *Service) Create(ctx context.Context, callerBranch *uuid.UUID, req transport.CreateRequest) (*transport.Referral, error) {
	if callerBranch == nil {
		return nil, apperr.Validation("a branch is required to record a referral")
	}
	if req.PatientPhone != "" {
		req.PatientPhone = phone.NormalizeE164(req.PatientPhone)
	}

	id, err := s.repo.Insert(ctx, *callerBranch, req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create referral", err)
	}
	referral, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load referral", err)
	}

	s.bus.Publish(ctx, events.ReferralReceived{
		BaseEvent:     events.NewBaseEvent(),
		ReferralID:    id,
		BranchID:      *callerBranch,
		PatientName:   req.PatientName,
		ReferrerName:  req.ReferrerName,
		ReferrerEmail: req.ReferrerEmail,
	})
	return referral, nil
}

// List returns a page of referrals in the standard envelope.
func (s *Service) List(ctx context.Context, callerBranch *uuid.UUID, req transport.ListRequest) (*transport.ListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	items, err := s.repo.List(ctx, callerBranch, req.Status, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list referrals", err)
	}
	total, err := s.repo.Count(ctx, callerBranch, req.Status)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count referrals", err)
	}

	envelope := httpkit.NewPage(items, total, page, pageSize)
	return &envelope, nil
}

// UpdateStatus moves a referral to a new tracking status.
func (s *Service) UpdateStatus(ctx context.Context, callerBranch *uuid.UUID, id int64, status string) (*transport.Referral, error) {
	referral, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("referral not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load referral", err)
	}
	if callerBranch != nil && referral.BranchID != callerBranch.String() {
		return nil, apperr.Forbidden("referral belongs to another branch")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("referral not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to update referral", err)
	}
	referral.Status = status
	return referral, nil
}
