package request

import (
	"seat-reservation/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReserveSeatRequest struct {
	// pointer so that an explicit 0 reaches the hour bounds check
	Hours *int `json:"hours" binding:"required"`
}

func (r *ReserveSeatRequest) ToInput(seatNumber string, userID uuid.UUID) commands.ReserveSeatInput {
	return commands.ReserveSeatInput{
		SeatNumber: seatNumber,
		UserID:     userID,
		Hours:      *r.Hours,
	}
}

type ListSeatsQuery struct {
	Room string `form:"room"`
}
