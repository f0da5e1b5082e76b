package converter

import (
	"fmt"
	"math"

	"seat-reservation/internal/domain/seat"
	sqlc "seat-reservation/internal/infra/sqlc/generated"
	"seat-reservation/internal/pkg/pgconv"
)

func SeatFromInfra(row sqlc.Seats) (*seat.Seat, error) {
	number, err := seat.NewSeatNumber(row.SeatNumber)
	if err != nil {
		return nil, fmt.Errorf("stored seat number %q: %w", row.SeatNumber, err)
	}
	room, err := seat.NewRoom(row.Room)
	if err != nil {
		return nil, fmt.Errorf("stored room %q: %w", row.Room, err)
	}

	return seat.ReconstructSeat(
		row.ID,
		number,
		room,
		seat.Position{X: int(row.PositionX), Y: int(row.PositionY)},
		pgconv.UUIDPtrFromPgtype(row.CurrentUserID),
		pgconv.TimePtrFromPgtype(row.ReservedUntil),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func SeatToInsertParams(s *seat.Seat) sqlc.InsertSeatParams {
	pos := s.Position()
	if pos.X > math.MaxInt32 || pos.Y > math.MaxInt32 {
		panic(fmt.Sprintf("seat position out of int32 range: %+v", pos))
	}

	return sqlc.InsertSeatParams{
		ID:         s.ID(),
		SeatNumber: s.SeatNumber().String(),
		Room:       s.Room().String(),
		PositionX:  int32(pos.X),
		PositionY:  int32(pos.Y),
	}
}
