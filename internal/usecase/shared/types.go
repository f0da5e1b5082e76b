package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SeatEventType string

const (
	SeatEventReserved      SeatEventType = "seat.reserved"
	SeatEventReleased      SeatEventType = "seat.released"
	SeatEventReclaimed     SeatEventType = "seat.reclaimed"
	SeatEventReinitialized SeatEventType = "seat.reinitialized"
)

type SeatEvent struct {
	Type          SeatEventType `json:"type"`
	SeatNumber    string        `json:"seatNumber,omitempty"`
	UserID        *uuid.UUID    `json:"userId,omitempty"`
	ReservedUntil *time.Time    `json:"reservedUntil,omitempty"`
	Count         int           `json:"count,omitempty"`
	OccurredAt    time.Time     `json:"occurredAt"`
}

type NopUserLocker struct{}

func NewNopUserLocker() *NopUserLocker {
	return &NopUserLocker{}
}

func (NopUserLocker) TryLock(_ context.Context, _ uuid.UUID) (func(context.Context) error, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

type NopEventPublisher struct{}

func NewNopEventPublisher() *NopEventPublisher {
	return &NopEventPublisher{}
}

func (NopEventPublisher) Publish(_ context.Context, _ SeatEvent) error {
	return nil
}
