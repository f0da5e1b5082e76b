//go:build unit

package seat_test

import (
	"testing"

	"seat-reservation/internal/domain/seat"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seatNumbers(seats []*seat.Seat) []string {
	out := make([]string, 0, len(seats))
	for _, s := range seats {
		out = append(out, s.SeatNumber().String())
	}
	return out
}

func TestGenerateSeats(t *testing.T) {
	t.Run("既定レイアウト", func(t *testing.T) {
		seats, err := seat.GenerateSeats(seat.DefaultLayout())
		require.NoError(t, err)
		require.Len(t, seats, 48)

		numbers := seatNumbers(seats)
		assert.Equal(t, "W01", numbers[0])
		assert.Equal(t, "W36", numbers[35])
		assert.Equal(t, "S01", numbers[36])
		assert.Equal(t, "S12", numbers[47])

		for _, s := range seats {
			assert.True(t, s.IsAvailable(), s.SeatNumber().String())
		}
	})

	t.Run("座席位置は6列で折り返す", func(t *testing.T) {
		seats, err := seat.GenerateSeats([]seat.RoomSpec{{Room: seat.RoomStaff, Count: 8}})
		require.NoError(t, err)

		got := make([]seat.Position, 0, len(seats))
		for _, s := range seats {
			got = append(got, s.Position())
		}
		want := []seat.Position{
			{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}, {X: 5, Y: 0},
			{X: 0, Y: 1}, {X: 1, Y: 1},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("positions mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("100席以上は3桁で採番", func(t *testing.T) {
		seats, err := seat.GenerateSeats([]seat.RoomSpec{{Room: seat.RoomWhite, Count: 100}})
		require.NoError(t, err)

		numbers := seatNumbers(seats)
		assert.Equal(t, "W001", numbers[0])
		assert.Equal(t, "W100", numbers[99])
	})

	t.Run("空の指定は空のプール", func(t *testing.T) {
		seats, err := seat.GenerateSeats(nil)
		require.NoError(t, err)
		assert.Empty(t, seats)
	})

	t.Run("不正な指定", func(t *testing.T) {
		tests := []struct {
			name  string
			specs []seat.RoomSpec
		}{
			{name: "未知の部屋NG", specs: []seat.RoomSpec{{Room: "lobby", Count: 1}}},
			{name: "負の席数NG", specs: []seat.RoomSpec{{Room: seat.RoomWhite, Count: -1}}},
			{name: "部屋の重複NG", specs: []seat.RoomSpec{{Room: seat.RoomWhite, Count: 1}, {Room: seat.RoomWhite, Count: 2}}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := seat.GenerateSeats(tt.specs)
				assert.ErrorIs(t, err, seat.ErrInvalidRoomSpec)
			})
		}
	})
}
