package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duomart-next/internal/config"
	"github.com/duomart-next/internal/metrics"
	"github.com/duomart-next/internal/queue"

	"github.com/hibiken/asynq"
)

type recordingApplier struct {
	payloads []queue.PricingChangedPayload
	err      error
}

func (r *recordingApplier) Apply(_ context.Context, payload queue.PricingChangedPayload) error {
	r.payloads = append(r.payloads, payload)
	return r.err
}

func TestHandlePricingChangedAppliesPayload(t *testing.T) {
	applier := &recordingApplier{}
	consumer := NewConsumer(applier)
	task, err := queue.NewPricingChangedTask(queue.PricingChangedPayload{ProductID: 7, Version: 3, Reason: "strategy_updated"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if err := consumer.handlePricingChanged(context.Background(), task); err != nil {
		t.Fatalf("handle task failed: %v", err)
	}
	if len(applier.payloads) != 1 || applier.payloads[0].ProductID != 7 || applier.payloads[0].Version != 3 {
		t.Fatalf("unexpected applied payloads: %+v", applier.payloads)
	}
}

func TestHandlePricingChangedInvalidPayloadSkipsRetry(t *testing.T) {
	applier := &recordingApplier{}
	consumer := NewConsumer(applier)
	task := asynq.NewTask(queue.TaskPricingChanged, []byte(`{"product_id":0}`))
	err := consumer.handlePricingChanged(context.Background(), task)
	if !errors.Is(err, asynq.SkipRetry) || !errors.Is(err, queue.ErrInvalidPayload) {
		t.Fatalf("expected SkipRetry, got %v", err)
	}
	if len(applier.payloads) != 0 {
		t.Fatalf("invalid payload must not be applied")
	}
}

func TestHandlePricingChangedPropagatesApplyError(t *testing.T) {
	applier := &recordingApplier{err: errors.New("redis down")}
	consumer := NewConsumer(applier)
	task, _ := queue.NewPricingChangedTask(queue.PricingChangedPayload{ProductID: 1, Version: 1})
	if err := consumer.handlePricingChanged(context.Background(), task); err == nil {
		t.Fatalf("apply error should be returned for asynq retry")
	}
}

type stubDeactivator struct {
	calls int
	at    time.Time
	limit int
	count int
	err   error
}

func (s *stubDeactivator) DeactivateExpiredSeasonal(_ context.Context, at time.Time, limit int) (int, error) {
	s.calls++
	s.at = at
	s.limit = limit
	return s.count, s.err
}

func TestSweepRunOnce(t *testing.T) {
	target := &stubDeactivator{count: 2}
	sweep, err := NewSweepService("", target, metrics.NewPricingMetrics(nil))
	if err != nil {
		t.Fatalf("new sweep failed: %v", err)
	}
	fixed := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	sweep.now = func() time.Time { return fixed }

	if got := sweep.RunOnce(context.Background()); got != 2 {
		t.Fatalf("expected 2 deactivated, got %d", got)
	}
	if target.calls != 1 || !target.at.Equal(fixed) || target.limit != defaultSweepBatch {
		t.Fatalf("unexpected sweep call: %+v", target)
	}
}

func TestNewSweepServiceRejectsBadSpec(t *testing.T) {
	if _, err := NewSweepService("not a cron", &stubDeactivator{}, nil); err == nil {
		t.Fatalf("expected invalid cron spec error")
	}
	if _, err := NewSweepService("@every 1m", nil, nil); err == nil {
		t.Fatalf("expected nil target error")
	}
}

func TestNewQueueServiceRequiresEnabledQueue(t *testing.T) {
	if _, err := NewQueueService(&config.QueueConfig{}, NewConsumer(&recordingApplier{})); err == nil {
		t.Fatalf("disabled queue should be rejected")
	}
	if _, err := NewQueueService(&config.QueueConfig{Enabled: true}, nil); err == nil {
		t.Fatalf("nil consumer should be rejected")
	}
}

func TestConsumerWithoutApplierFails(t *testing.T) {
	task, _ := queue.NewPricingChangedTask(queue.PricingChangedPayload{ProductID: 1})
	if err := NewConsumer(nil).handlePricingChanged(context.Background(), task); err == nil {
		t.Fatalf("missing applier should surface an error")
	}
}
