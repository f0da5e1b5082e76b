package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"seat-reservation/internal/pkg/clock"
	"seat-reservation/internal/pkg/errs"
	"seat-reservation/internal/usecase/shared"
)

var ErrReclaimerAlreadyStarted = errors.New("expiry reclaimer already started")

type ReclaimReport struct {
	Reclaimed []string      `json:"reclaimed"`
	Count     int           `json:"count"`
	SweptAt   time.Time     `json:"swept_at"`
	Duration  time.Duration `json:"duration"`
}

// TickSource returns a tick channel and a stop function. Tests substitute a
// manually driven channel so sweeps never depend on wall-clock time.
type TickSource func(interval time.Duration) (<-chan time.Time, func())

func NewTickerSource() TickSource {
	return func(interval time.Duration) (<-chan time.Time, func()) {
		ticker := time.NewTicker(interval)
		return ticker.C, ticker.Stop
	}
}

//go:generate mockgen -source=expiry_reclaimer.go -destination=../../tests/mock/usecase/expiry_reclaimer.go -package=usecasemock
type ExpiryReclaimer interface {
	// Start sweeps once, then on every tick until Stop or ctx is done.
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	// SweepNow runs one sweep on the caller's goroutine and returns its result.
	SweepNow(ctx context.Context) (*ReclaimReport, error)
}

type expiryReclaimerImpl struct {
	registry  shared.SeatRegistry
	publisher shared.EventPublisher
	clock     clock.Clock
	interval  time.Duration
	ticks     TickSource
	logger    *slog.Logger

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	done    chan struct{}
}

func NewExpiryReclaimer(
	registry shared.SeatRegistry,
	publisher shared.EventPublisher,
	clock clock.Clock,
	interval time.Duration,
	ticks TickSource,
	logger *slog.Logger,
) ExpiryReclaimer {
	if ticks == nil {
		ticks = NewTickerSource()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &expiryReclaimerImpl{
		registry:  registry,
		publisher: publisher,
		clock:     clock,
		interval:  interval,
		ticks:     ticks,
		logger:    logger,
	}
}

func (r *expiryReclaimerImpl) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrReclaimerAlreadyStarted
	}
	r.started = true
	r.stopCh = make(chan struct{})
	r.done = make(chan struct{})

	r.logger.Info("🕐 期限切れ座席の回収を開始します", "interval", r.interval.String())

	// the OnStart ctx ends when startup finishes, so the loop gets its own
	loopCtx := context.WithoutCancel(ctx)
	go r.run(loopCtx, r.stopCh, r.done)
	return nil
}

func (r *expiryReclaimerImpl) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	r.started = false
	stopCh, done := r.stopCh, r.done
	r.mu.Unlock()

	close(stopCh)
	select {
	case <-done:
		r.logger.Info("🛑 期限切れ座席の回収を停止しました")
		return nil
	case <-ctx.Done():
		return errs.Wrap(ctx.Err(), "expiry reclaimer did not stop in time")
	}
}

func (r *expiryReclaimerImpl) run(ctx context.Context, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	// covers holds that expired while the process was down
	r.sweepAndLog(ctx)

	tick, stopTicks := r.ticks(r.interval)
	defer stopTicks()

	for {
		select {
		case <-tick:
			r.sweepAndLog(ctx)
		case <-stopCh:
			return
		}
	}
}

func (r *expiryReclaimerImpl) sweepAndLog(ctx context.Context) {
	if _, err := r.SweepNow(ctx); err != nil {
		// next tick retries
		r.logger.Error("期限切れ座席の回収に失敗しました", "error", err)
	}
}

func (r *expiryReclaimerImpl) SweepNow(ctx context.Context) (*ReclaimReport, error) {
	started := time.Now()
	now := r.clock.Now()

	numbers, err := r.registry.BulkReclaim(ctx, now)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}

	report := &ReclaimReport{
		Reclaimed: make([]string, 0, len(numbers)),
		Count:     len(numbers),
		SweptAt:   now,
		Duration:  time.Since(started),
	}
	for _, n := range numbers {
		report.Reclaimed = append(report.Reclaimed, n.String())
		if err := r.publisher.Publish(ctx, shared.SeatEvent{
			Type:       shared.SeatEventReclaimed,
			SeatNumber: n.String(),
			OccurredAt: now,
		}); err != nil {
			r.logger.Warn("failed to publish seat event", "type", string(shared.SeatEventReclaimed), "seat_number", n.String(), "error", err)
		}
	}

	if report.Count > 0 {
		r.logger.Info("期限切れ座席を回収しました", "reclaimed", report.Count, "seats", report.Reclaimed, "duration", report.Duration)
	} else {
		r.logger.Debug("回収対象の座席はありません", "duration", report.Duration)
	}
	return report, nil
}
