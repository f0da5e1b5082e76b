package seat

import (
	"errors"
	"fmt"
	"strconv"
)

var ErrInvalidRoomSpec = errors.New("invalid room spec")

const layoutColumns = 6

type RoomSpec struct {
	Room  Room
	Count int
}

// DefaultLayout is the fixed pool: W01..W36 and S01..S12.
func DefaultLayout() []RoomSpec {
	return []RoomSpec{
		{Room: RoomWhite, Count: 36},
		{Room: RoomStaff, Count: 12},
	}
}

// GenerateSeats builds a fresh, all-available pool. Seat numbers are
// zero-padded to at least two digits.
func GenerateSeats(specs []RoomSpec) ([]*Seat, error) {
	seen := make(map[Room]struct{}, len(specs))
	total := 0
	for _, spec := range specs {
		if !spec.Room.IsValid() || spec.Count < 0 {
			return nil, ErrInvalidRoomSpec
		}
		if _, dup := seen[spec.Room]; dup {
			return nil, ErrInvalidRoomSpec
		}
		seen[spec.Room] = struct{}{}
		total += spec.Count
	}

	seats := make([]*Seat, 0, total)
	for _, spec := range specs {
		width := max(2, len(strconv.Itoa(spec.Count)))
		for i := range spec.Count {
			number, err := NewSeatNumber(fmt.Sprintf("%s%0*d", spec.Room.Prefix(), width, i+1))
			if err != nil {
				return nil, err
			}
			pos := Position{X: i % layoutColumns, Y: i / layoutColumns}
			seats = append(seats, NewSeat(number, spec.Room, pos))
		}
	}
	return seats, nil
}
