package shared

import (
	"context"
	"time"

	"seat-reservation/internal/domain/seat"

	"github.com/google/uuid"
)

// SeatRegistry is the only path through which seat records are mutated.
// Implementations report failures as infra.RepositoryError:
//   - FindBySeatNumber / FindByHolder: KindNotFound when absent
//   - ApplyHold: KindConditionFailed when the seat was not available at write time,
//     KindNotFound when the seat does not exist
//   - anything else: KindDBFailure
type SeatRegistry interface {
	FindBySeatNumber(ctx context.Context, number seat.SeatNumber) (*seat.Seat, error)
	FindByHolder(ctx context.Context, userID uuid.UUID) (*seat.Seat, error)
	// room == nil lists every room. Ordered by seat number ascending.
	ListByRoom(ctx context.Context, room *seat.Room) ([]*seat.Seat, error)

	ApplyHold(ctx context.Context, number seat.SeatNumber, userID uuid.UUID, reservedUntil time.Time) (*seat.Seat, error)
	ApplyRelease(ctx context.Context, number seat.SeatNumber) (*seat.Seat, error)
	// BulkReclaim clears every held seat with reservedUntil < now and returns the cleared seat numbers.
	BulkReclaim(ctx context.Context, now time.Time) ([]seat.SeatNumber, error)
	BulkReinitialize(ctx context.Context, specs []seat.RoomSpec) (int, error)
}

// UserLocker serializes Reserve calls of one user when enabled.
type UserLocker interface {
	// TryLock returns ok=false when another call already holds the user's lock.
	TryLock(ctx context.Context, userID uuid.UUID) (unlock func(context.Context) error, ok bool, err error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event SeatEvent) error
}
