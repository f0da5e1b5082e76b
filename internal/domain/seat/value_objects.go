package seat

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	ErrInvalidSeatNumber = errors.New("invalid seat number")
	ErrInvalidRoom       = errors.New("invalid room")
	ErrInvalidHours      = errors.New("invalid hours")
	ErrInvalidHold       = errors.New("hold requires a holder and a deadline after now")
	ErrNotAvailable      = errors.New("seat is not available")
)

var seatNumberRegex = regexp.MustCompile(`^[A-Z]+[0-9]+$`)

type SeatNumber struct {
	value string
}

// NewSeatNumber accepts lower case input ("w01") and normalizes it.
func NewSeatNumber(s string) (SeatNumber, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if !seatNumberRegex.MatchString(s) {
		return SeatNumber{}, ErrInvalidSeatNumber
	}
	return SeatNumber{value: s}, nil
}

func (n SeatNumber) String() string {
	return n.value
}

// Position is only used for layout rendering.
type Position struct {
	X int
	Y int
}

type HourBounds struct {
	Min int
	Max int
}

func DefaultHourBounds() HourBounds {
	return HourBounds{Min: 1, Max: 8}
}

type Hours struct {
	value int
}

func NewHours(n int, bounds HourBounds) (Hours, error) {
	if n < bounds.Min || n > bounds.Max {
		return Hours{}, ErrInvalidHours
	}
	return Hours{value: n}, nil
}

func (h Hours) Int() int {
	return h.value
}

func (h Hours) Duration() time.Duration {
	return time.Duration(h.value) * time.Hour
}

// DeadlineFrom uses wall-clock hours.
func (h Hours) DeadlineFrom(now time.Time) time.Time {
	return now.Add(h.Duration())
}
