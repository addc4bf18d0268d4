package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"opticlinic_backend/internal/events"
	platformevents "opticlinic_backend/platform/events"
	"opticlinic_backend/platform/logger"
)

type fakeSender struct {
	mu    sync.Mutex
	calls int
	fail  int
	last  struct {
		to, referrer, patient, url string
	}
}

func (f *fakeSender) SendReferralReceived(ctx context.Context, toEmail, referrerName, patientName, trackingURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.fail {
		return errors.New("smtp unavailable")
	}
	f.last.to = toEmail
	f.last.referrer = referrerName
	f.last.patient = patientName
	f.last.url = trackingURL
	return nil
}

type fakeConfig struct{}

func (fakeConfig) GetAppBaseURL() string { return "https://clinic.example.com" }

func TestReferralReceivedSendsEmail(t *testing.T) {
	sender := &fakeSender{}
	svc := New(sender, fakeConfig{}, logger.New("development"))

	bus := platformevents.NewInMemoryBus(logger.New("development"))
	svc.SubscribeEvents(bus)

	err := bus.PublishSync(context.Background(), events.ReferralReceived{
		BaseEvent:     events.NewBaseEvent(),
		ReferralID:    42,
		PatientName:   "Fredrick Olsen",
		ReferrerName:  "Dr. Mills",
		ReferrerEmail: "mills@example.com",
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	if sender.calls != 1 {
		t.Fatalf("expected 1 send, got %d", sender.calls)
	}
	if sender.last.to != "mills@example.com" {
		t.Errorf("unexpected recipient %q", sender.last.to)
	}
	if sender.last.url != "https://clinic.example.com/referrals/42" {
		t.Errorf("unexpected tracking URL %q", sender.last.url)
	}
}

func TestReferralReceivedRetriesTransientFailure(t *testing.T) {
	sender := &fakeSender{fail: 2}
	svc := New(sender, fakeConfig{}, logger.New("development"))

	bus := platformevents.NewInMemoryBus(logger.New("development"))
	svc.SubscribeEvents(bus)

	err := bus.PublishSync(context.Background(), events.ReferralReceived{
		BaseEvent:     events.NewBaseEvent(),
		ReferralID:    7,
		PatientName:   "Ann Lee",
		ReferrerName:  "Dr. Mills",
		ReferrerEmail: "mills@example.com",
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}

	if sender.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", sender.calls)
	}
	if sender.last.to == "" {
		t.Error("expected the final attempt to succeed")
	}
}

func TestReferralWithoutEmailIsSkipped(t *testing.T) {
	sender := &fakeSender{}
	svc := New(sender, fakeConfig{}, logger.New("development"))

	bus := platformevents.NewInMemoryBus(logger.New("development"))
	svc.SubscribeEvents(bus)

	err := bus.PublishSync(context.Background(), events.ReferralReceived{
		BaseEvent:    events.NewBaseEvent(),
		ReferralID:   9,
		PatientName:  "Ann Lee",
		ReferrerName: "Walk-in",
	})
	if err != nil {
		t.Fatalf("PublishSync failed: %v", err)
	}
	if sender.calls != 0 {
		t.Errorf("expected no send for referral without referrer email, got %d", sender.calls)
	}
}
