package commands

import (
	"context"
	"errors"
	"log/slog"

	"seat-reservation/internal/domain/seat"
	"seat-reservation/internal/infra"
	"seat-reservation/internal/pkg/clock"
	"seat-reservation/internal/pkg/errs"
	"seat-reservation/internal/usecase/queries"
	"seat-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// AlreadyHasReservationError carries the seat the user already holds.
// errs.Is(err, errs.ErrAlreadyHasReservation) reports true for it.
type AlreadyHasReservationError struct {
	SeatNumber string
}

func (e *AlreadyHasReservationError) Error() string {
	return "already has reservation: " + e.SeatNumber
}

func (e *AlreadyHasReservationError) Is(target error) bool {
	return target == errs.ErrAlreadyHasReservation
}

type ReserveSeatInput struct {
	SeatNumber string
	UserID     uuid.UUID
	Hours      int
}

type ReleaseSeatInput struct {
	SeatNumber       string
	RequesterID      uuid.UUID
	RequesterIsAdmin bool
}

//go:generate mockgen -source=seat.go -destination=../../../tests/mock/commands/seat.go -package=commandsmock
type SeatCommands interface {
	Reserve(ctx context.Context, in ReserveSeatInput) (*queries.SeatView, error)
	Release(ctx context.Context, in ReleaseSeatInput) (*queries.SeatView, error)
	// Reinitialize wipes the pool and recreates the default layout.
	Reinitialize(ctx context.Context) (int, error)
}

type seatCommandsImpl struct {
	registry  shared.SeatRegistry
	locker    shared.UserLocker
	publisher shared.EventPublisher
	clock     clock.Clock
	bounds    seat.HourBounds
}

func NewSeatCommands(
	registry shared.SeatRegistry,
	locker shared.UserLocker,
	publisher shared.EventPublisher,
	clock clock.Clock,
	bounds seat.HourBounds,
) SeatCommands {
	return &seatCommandsImpl{
		registry:  registry,
		locker:    locker,
		publisher: publisher,
		clock:     clock,
		bounds:    bounds,
	}
}

func (c *seatCommandsImpl) Reserve(ctx context.Context, in ReserveSeatInput) (*queries.SeatView, error) {
	hours, err := seat.NewHours(in.Hours, c.bounds)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidHours)
	}

	number, err := seat.NewSeatNumber(in.SeatNumber)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrSeatNotFound)
	}

	unlock, ok, err := c.locker.TryLock(ctx, in.UserID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}
	if !ok {
		return nil, errs.ErrReservationInProgress
	}
	defer func() {
		// the caller's ctx may already be cancelled; the lock must still go
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("failed to release user lock", "user_id", in.UserID, "error", err)
		}
	}()

	target, err := c.registry.FindBySeatNumber(ctx, number)
	if err != nil {
		return nil, markRegistryErr(err)
	}
	if !target.IsAvailable() {
		return nil, errs.ErrSeatOccupied
	}

	existing, err := c.registry.FindByHolder(ctx, in.UserID)
	switch {
	case err == nil:
		return nil, &AlreadyHasReservationError{SeatNumber: existing.SeatNumber().String()}
	case !infra.IsKind(err, infra.KindNotFound):
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}

	now := c.clock.Now()
	held, err := c.registry.ApplyHold(ctx, number, in.UserID, hours.DeadlineFrom(now))
	if err != nil {
		return nil, markRegistryErr(err)
	}

	slog.Info("seat reserved",
		"seat_number", number.String(),
		"user_id", in.UserID,
		"hours", hours.Int(),
		"reserved_until", held.ReservedUntil())

	c.publish(ctx, shared.SeatEvent{
		Type:          shared.SeatEventReserved,
		SeatNumber:    number.String(),
		UserID:        held.CurrentUser(),
		ReservedUntil: held.ReservedUntil(),
		OccurredAt:    now,
	})

	return queries.NewSeatView(held, now), nil
}

func (c *seatCommandsImpl) Release(ctx context.Context, in ReleaseSeatInput) (*queries.SeatView, error) {
	number, err := seat.NewSeatNumber(in.SeatNumber)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrSeatNotFound)
	}

	target, err := c.registry.FindBySeatNumber(ctx, number)
	if err != nil {
		return nil, markRegistryErr(err)
	}
	if !in.RequesterIsAdmin && !target.IsHeldBy(in.RequesterID) {
		return nil, errs.ErrNotAuthorized
	}

	released, err := c.registry.ApplyRelease(ctx, number)
	if err != nil {
		return nil, markRegistryErr(err)
	}

	now := c.clock.Now()
	if previous := target.CurrentUser(); previous != nil {
		slog.Info("seat released",
			"seat_number", number.String(),
			"holder_id", *previous,
			"requester_id", in.RequesterID,
			"by_admin", in.RequesterIsAdmin)

		c.publish(ctx, shared.SeatEvent{
			Type:       shared.SeatEventReleased,
			SeatNumber: number.String(),
			UserID:     previous,
			OccurredAt: now,
		})
	}

	return queries.NewSeatView(released, now), nil
}

func (c *seatCommandsImpl) Reinitialize(ctx context.Context) (int, error) {
	count, err := c.registry.BulkReinitialize(ctx, seat.DefaultLayout())
	if err != nil {
		if errors.Is(err, seat.ErrInvalidRoomSpec) {
			return 0, err
		}
		return 0, errs.Mark(err, errs.ErrStorageUnavailable)
	}

	c.publish(ctx, shared.SeatEvent{
		Type:       shared.SeatEventReinitialized,
		Count:      count,
		OccurredAt: c.clock.Now(),
	})
	return count, nil
}

func (c *seatCommandsImpl) publish(ctx context.Context, event shared.SeatEvent) {
	if err := c.publisher.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish seat event",
			"type", string(event.Type),
			"seat_number", event.SeatNumber,
			"error", err)
	}
}

// markRegistryErr maps registry failure kinds onto the engine's error taxonomy.
func markRegistryErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrSeatNotFound)
	case infra.IsKind(err, infra.KindConditionFailed):
		return errs.Mark(err, errs.ErrSeatOccupied)
	default:
		return errs.Mark(err, errs.ErrStorageUnavailable)
	}
}
