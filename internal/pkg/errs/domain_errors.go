package errs

import "errors"

// Domain-specific sentinel errors shared by the seat usecase layers
var (
	// Seat errors
	ErrSeatNotFound          = errors.New("seat not found")
	ErrSeatOccupied          = errors.New("seat occupied")
	ErrAlreadyHasReservation = errors.New("already has reservation")
	ErrInvalidHours          = errors.New("invalid hours")
	ErrInvalidRoom           = errors.New("invalid room")

	// Authorization errors
	ErrNotAuthorized = errors.New("not authorized")

	// Concurrency errors
	ErrReservationInProgress = errors.New("reservation in progress")

	// Operation errors
	ErrStorageUnavailable = errors.New("storage unavailable")
)
