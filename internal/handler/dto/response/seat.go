package response

import (
	"time"

	"seat-reservation/internal/usecase"
	"seat-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SeatResponse struct {
	SeatNumber       string     `json:"seatNumber"`
	Room             string     `json:"room"`
	PositionX        int        `json:"positionX"`
	PositionY        int        `json:"positionY"`
	IsAvailable      bool       `json:"isAvailable"`
	CurrentUserID    *uuid.UUID `json:"currentUserId"`
	ReservedUntil    *time.Time `json:"reservedUntil"`
	RemainingMinutes *int       `json:"remainingMinutes"`
}

func FromSeatView(v *queries.SeatView) (*SeatResponse, error) {
	var res SeatResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, err
	}
	return &res, nil
}

func FromSeatViews(views []*queries.SeatView) ([]*SeatResponse, error) {
	res := make([]*SeatResponse, 0, len(views))
	for _, v := range views {
		r, err := FromSeatView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

type SeatListResponse struct {
	Seats []*SeatResponse `json:"seats"`
}

type MyReservationResponse struct {
	// null when the caller holds no seat
	Reservation *SeatResponse `json:"reservation"`
}

type InitializeResponse struct {
	Created int `json:"created"`
}

type ReclaimResponse struct {
	Reclaimed  []string  `json:"reclaimed"`
	Count      int       `json:"count"`
	SweptAt    time.Time `json:"sweptAt"`
	DurationMs int64     `json:"durationMs"`
}

func FromReclaimReport(r *usecase.ReclaimReport) *ReclaimResponse {
	reclaimed := r.Reclaimed
	if reclaimed == nil {
		reclaimed = []string{}
	}
	return &ReclaimResponse{
		Reclaimed:  reclaimed,
		Count:      r.Count,
		SweptAt:    r.SweptAt,
		DurationMs: r.Duration.Milliseconds(),
	}
}
