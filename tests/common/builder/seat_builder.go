//go:build unit || e2e

package builder

import (
	"time"

	"seat-reservation/internal/domain/seat"
	sqlc "seat-reservation/internal/infra/sqlc/generated"
	"seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SeatBuilder struct {
	ID            uuid.UUID
	SeatNumber    string
	Room          string
	PositionX     int
	PositionY     int
	CurrentUser   *uuid.UUID
	ReservedUntil *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewSeatBuilder() *SeatBuilder {
	now := time.Now()
	return &SeatBuilder{
		ID:         uuid.New(),
		SeatNumber: "W01",
		Room:       "white",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (b *SeatBuilder) With(mutate func(*SeatBuilder)) *SeatBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *SeatBuilder) BuildDomain() (*seat.Seat, error) {
	number, err := seat.NewSeatNumber(b.SeatNumber)
	if err != nil {
		return nil, err
	}
	room, err := seat.NewRoom(b.Room)
	if err != nil {
		return nil, err
	}
	return seat.ReconstructSeat(
		b.ID,
		number,
		room,
		seat.Position{X: b.PositionX, Y: b.PositionY},
		b.CurrentUser,
		b.ReservedUntil,
		b.CreatedAt,
		b.UpdatedAt,
	), nil
}

func (b *SeatBuilder) MustBuildDomain() *seat.Seat {
	s, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return s
}

func (b *SeatBuilder) BuildInfra() sqlc.Seats {
	row := sqlc.Seats{
		ID:          b.ID,
		SeatNumber:  b.SeatNumber,
		Room:        b.Room,
		PositionX:   int32(b.PositionX),
		PositionY:   int32(b.PositionY),
		IsAvailable: b.CurrentUser == nil,
		CreatedAt:   pgtype.Timestamptz{Time: b.CreatedAt, Valid: true},
		UpdatedAt:   pgtype.Timestamptz{Time: b.UpdatedAt, Valid: true},
	}
	if b.CurrentUser != nil {
		row.CurrentUserID = pgtype.UUID{Bytes: *b.CurrentUser, Valid: true}
	}
	if b.ReservedUntil != nil {
		row.ReservedUntil = pgtype.Timestamptz{Time: *b.ReservedUntil, Valid: true}
	}
	return row
}

func (b *SeatBuilder) BuildView() *queries.SeatView {
	return &queries.SeatView{
		SeatNumber:    b.SeatNumber,
		Room:          b.Room,
		PositionX:     b.PositionX,
		PositionY:     b.PositionY,
		IsAvailable:   b.CurrentUser == nil,
		CurrentUserID: b.CurrentUser,
		ReservedUntil: b.ReservedUntil,
	}
}

// Fluent builder methods
func (b *SeatBuilder) WithSeatNumber(number string) *SeatBuilder {
	b.SeatNumber = number
	return b
}

func (b *SeatBuilder) WithRoom(room string) *SeatBuilder {
	b.Room = room
	return b
}

func (b *SeatBuilder) WithPosition(x, y int) *SeatBuilder {
	b.PositionX = x
	b.PositionY = y
	return b
}

func (b *SeatBuilder) HeldBy(userID uuid.UUID, until time.Time) *SeatBuilder {
	b.CurrentUser = &userID
	b.ReservedUntil = &until
	return b
}
