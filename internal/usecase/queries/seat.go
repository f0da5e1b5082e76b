package queries

import (
	"context"
	"time"

	"seat-reservation/internal/domain/seat"
	"seat-reservation/internal/infra"
	"seat-reservation/internal/pkg/clock"
	"seat-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type SeatView struct {
	SeatNumber    string     `json:"seat_number"`
	Room          string     `json:"room"`
	PositionX     int        `json:"position_x"`
	PositionY     int        `json:"position_y"`
	IsAvailable   bool       `json:"is_available"`
	CurrentUserID *uuid.UUID `json:"current_user_id,omitempty"`
	ReservedUntil *time.Time `json:"reserved_until,omitempty"`
	// nil while the seat is available; 0 once the deadline has passed but
	// the reclaimer has not run yet
	RemainingMinutes *int `json:"remaining_minutes,omitempty"`
}

func NewSeatView(s *seat.Seat, now time.Time) *SeatView {
	pos := s.Position()
	view := &SeatView{
		SeatNumber:    s.SeatNumber().String(),
		Room:          s.Room().String(),
		PositionX:     pos.X,
		PositionY:     pos.Y,
		IsAvailable:   s.IsAvailable(),
		CurrentUserID: s.CurrentUser(),
		ReservedUntil: s.ReservedUntil(),
	}
	if until := s.ReservedUntil(); until != nil {
		remaining := remainingMinutes(*until, now)
		view.RemainingMinutes = &remaining
	}
	return view
}

// rounds up so a hold with 30s left still shows 1 minute
func remainingMinutes(until, now time.Time) int {
	d := until.Sub(now)
	if d <= 0 {
		return 0
	}
	return int((d + time.Minute - 1) / time.Minute)
}

// SeatReadStore is the read half of the seat registry.
type SeatReadStore interface {
	FindBySeatNumber(ctx context.Context, number seat.SeatNumber) (*seat.Seat, error)
	FindByHolder(ctx context.Context, userID uuid.UUID) (*seat.Seat, error)
	ListByRoom(ctx context.Context, room *seat.Room) ([]*seat.Seat, error)
}

//go:generate mockgen -source=seat.go -destination=../../../tests/mock/queries/seat.go -package=queriesmock -exclude_interfaces=SeatReadStore
type SeatQueries interface {
	// room == "" lists every room
	ListSeats(ctx context.Context, room string) ([]*SeatView, error)
	GetSeat(ctx context.Context, seatNumber string) (*SeatView, error)
	// MyReservation returns nil, nil when the user holds nothing.
	MyReservation(ctx context.Context, userID uuid.UUID) (*SeatView, error)
}

type seatQueriesImpl struct {
	readStore SeatReadStore
	clock     clock.Clock
}

func NewSeatQueries(readStore SeatReadStore, clock clock.Clock) SeatQueries {
	return &seatQueriesImpl{
		readStore: readStore,
		clock:     clock,
	}
}

func (q *seatQueriesImpl) ListSeats(ctx context.Context, room string) ([]*SeatView, error) {
	var filter *seat.Room
	if room != "" {
		r, err := seat.NewRoom(room)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidRoom)
		}
		filter = &r
	}

	seats, err := q.readStore.ListByRoom(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}

	now := q.clock.Now()
	views := make([]*SeatView, 0, len(seats))
	for _, s := range seats {
		views = append(views, NewSeatView(s, now))
	}
	return views, nil
}

func (q *seatQueriesImpl) GetSeat(ctx context.Context, seatNumber string) (*SeatView, error) {
	number, err := seat.NewSeatNumber(seatNumber)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrSeatNotFound)
	}

	s, err := q.readStore.FindBySeatNumber(ctx, number)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrSeatNotFound)
		}
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return NewSeatView(s, q.clock.Now()), nil
}

func (q *seatQueriesImpl) MyReservation(ctx context.Context, userID uuid.UUID) (*SeatView, error) {
	s, err := q.readStore.FindByHolder(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return NewSeatView(s, q.clock.Now()), nil
}
