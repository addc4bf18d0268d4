// Package service implements audit log recording, listing, and retention.
package service

import (
	"context"
	"fmt"
	"time"

	"opticlinic_backend/internal/audit/repository"
	"opticlinic_backend/internal/audit/transport"
	"opticlinic_backend/internal/events"
	"opticlinic_backend/platform/apperr"
	"opticlinic_backend/platform/config"
	"opticlinic_backend/platform/logger"
)

const (
	defaultWindow = 7 * 24 * time.Hour
	defaultLimit  = 25
)

type Service struct {
	repo *repository.Repository
	cfg  config.AuditConfig
	log  *logger.Logger
}

func New(repo *repository.Repository, cfg config.AuditConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// Record writes an audit entry. Failures are logged but never propagated:
// auditing must not break the operation being audited.
func (s *Service) Record(ctx context.Context, actorID, action, entity, entityID string, metadata map[string]interface{}) {
	if err := s.repo.Insert(ctx, actorID, action, entity, entityID, metadata); err != nil {
		s.log.DatabaseError("audit.insert", err)
	}
}

// buildFilter resolves the request window. Without an explicit range the
// last seven days are shown; a partial range is completed from the other
// bound. The To date is inclusive, so a day is added before querying.
func buildFilter(req transport.ListRequest, now time.Time) (repository.Filter, error) {
	filter := repository.Filter{
		Action: req.Action,
		Actor:  req.Actor,
	}
	switch {
	case req.From != nil && req.To != nil:
		filter.From = req.From.UTC()
		filter.To = req.To.UTC().Add(24 * time.Hour)
	case req.From != nil:
		filter.From = req.From.UTC()
		filter.To = now
	case req.To != nil:
		filter.To = req.To.UTC().Add(24 * time.Hour)
		filter.From = filter.To.Add(-defaultWindow)
	default:
		filter.To = now
		filter.From = now.Add(-defaultWindow)
	}
	if !filter.To.After(filter.From) {
		return repository.Filter{}, apperr.Validation("date range is empty")
	}
	return filter, nil
}

// List returns a page of audit entries with the total matching count.
func (s *Service) List(ctx context.Context, req transport.ListRequest) (*transport.ListResponse, error) {
	filter, err := buildFilter(req, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	items, err := s.repo.List(ctx, filter, req.Skip, limit)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list audit entries", err)
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to count audit entries", err)
	}

	return &transport.ListResponse{Items: items, Total: total}, nil
}

// Prune removes entries older than the configured retention period.
func (s *Service) Prune(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.cfg.GetAuditRetention())
	removed, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune audit entries: %w", err)
	}
	return removed, nil
}

// SubscribeEvents records audit entries for domain events published by other
// modules.
func (s *Service) SubscribeEvents(bus events.Bus) {
	bus.Subscribe(events.EventReferralReceived, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.ReferralReceived)
		if !ok {
			return nil
		}
		s.Record(ctx, "system", "referral.received", "referral", fmt.Sprintf("%d", evt.ReferralID), map[string]interface{}{
			"patient_name":  evt.PatientName,
			"referrer_name": evt.ReferrerName,
		})
		return nil
	}))

	bus.Subscribe(events.EventScanProcessed, events.HandlerFunc(func(ctx context.Context, e events.Event) error {
		evt, ok := e.(events.ScanProcessed)
		if !ok {
			return nil
		}
		s.Record(ctx, "system", "scan.processed", "scan", fmt.Sprintf("%d", evt.ScanID), nil)
		return nil
	}))
}
