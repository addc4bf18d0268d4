// Package notification turns domain events into outbound messages.
package notification

import (
	"context"
	"fmt"
	"time"

	"opticlinic_backend/internal/email"
	"opticlinic_backend/internal/events"
	"opticlinic_backend/platform/config"
	"opticlinic_backend/platform/logger"

	"github.com/sethvargo/go-retry"
)

// Service listens for domain events and delivers email notifications.
// Delivery is retried with exponential backoff; a referral that cannot be
// acknowledged after the retry budget is logged and dropped rather than
// blocking the event bus.
type Service struct {
	sender  email.Sender
	cfg     config.NotificationConfig
	log     *logger.Logger
	retries uint64
}

func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Service {
	return &Service{
		sender:  sender,
		cfg:     cfg,
		log:     log,
		retries: 3,
	}
}

// SubscribeEvents registers the service's event handlers.
func (s *Service) SubscribeEvents(bus events.Bus) {
	bus.Subscribe(events.EventReferralReceived, events.HandlerFunc(s.handleReferralReceived))
}

func (s *Service) handleReferralReceived(ctx context.Context, e events.Event) error {
	evt, ok := e.(events.ReferralReceived)
	if !ok {
		return nil
	}
	if evt.ReferrerEmail == "" {
		return nil
	}

	trackingURL := fmt.Sprintf("%s/referrals/%d", s.cfg.GetAppBaseURL(), evt.ReferralID)

	backoff := retry.WithMaxRetries(s.retries, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.sender.SendReferralReceived(ctx, evt.ReferrerEmail, evt.ReferrerName, evt.PatientName, trackingURL); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("referral notification not delivered",
			"referral_id", evt.ReferralID, "error", err)
	}
	return nil
}
