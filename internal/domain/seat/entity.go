package seat

import (
	"time"

	"github.com/google/uuid"
)

// Seat is available exactly when it has neither a holder nor a deadline.
type Seat struct {
	id            uuid.UUID
	seatNumber    SeatNumber
	room          Room
	position      Position
	currentUser   *uuid.UUID
	reservedUntil *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewSeat(number SeatNumber, room Room, position Position) *Seat {
	return &Seat{
		id:         uuid.New(),
		seatNumber: number,
		room:       room,
		position:   position,
	}
}

func ReconstructSeat(
	id uuid.UUID,
	number SeatNumber,
	room Room,
	position Position,
	currentUser *uuid.UUID,
	reservedUntil *time.Time,
	createdAt, updatedAt time.Time,
) *Seat {
	return &Seat{
		id:            id,
		seatNumber:    number,
		room:          room,
		position:      position,
		currentUser:   currentUser,
		reservedUntil: reservedUntil,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Hold moves an available seat to held. The caller owns the atomicity.
func (s *Seat) Hold(userID uuid.UUID, until, now time.Time) error {
	if !s.IsAvailable() {
		return ErrNotAvailable
	}
	if userID == uuid.Nil || !until.After(now) {
		return ErrInvalidHold
	}
	holder := userID
	deadline := until
	s.currentUser = &holder
	s.reservedUntil = &deadline
	s.updatedAt = now
	return nil
}

// Release clears the hold. Releasing an available seat is a no-op clear.
func (s *Seat) Release(now time.Time) {
	s.currentUser = nil
	s.reservedUntil = nil
	s.updatedAt = now
}

func (s *Seat) IsAvailable() bool {
	return s.currentUser == nil && s.reservedUntil == nil
}

func (s *Seat) IsHeldBy(userID uuid.UUID) bool {
	return s.currentUser != nil && *s.currentUser == userID
}

// IsExpired uses a strict comparison: a hold whose deadline equals now is still live.
func (s *Seat) IsExpired(now time.Time) bool {
	return s.reservedUntil != nil && s.reservedUntil.Before(now)
}

func (s *Seat) Clone() *Seat {
	c := *s
	if s.currentUser != nil {
		u := *s.currentUser
		c.currentUser = &u
	}
	if s.reservedUntil != nil {
		t := *s.reservedUntil
		c.reservedUntil = &t
	}
	return &c
}

func (s *Seat) ID() uuid.UUID             { return s.id }
func (s *Seat) SeatNumber() SeatNumber    { return s.seatNumber }
func (s *Seat) Room() Room                { return s.room }
func (s *Seat) Position() Position        { return s.position }
func (s *Seat) CurrentUser() *uuid.UUID   { return s.currentUser }
func (s *Seat) ReservedUntil() *time.Time { return s.reservedUntil }
func (s *Seat) CreatedAt() time.Time      { return s.createdAt }
func (s *Seat) UpdatedAt() time.Time      { return s.updatedAt }
