//go:build unit

package seat_test

import (
	"testing"
	"time"

	"seat-reservation/internal/domain/seat"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func newSeat(t *testing.T, number string) *seat.Seat {
	t.Helper()
	n, err := seat.NewSeatNumber(number)
	require.NoError(t, err)
	return seat.NewSeat(n, seat.RoomWhite, seat.Position{X: 1, Y: 0})
}

func TestSeat(t *testing.T) {
	t.Run("基本成功ケース", func(t *testing.T) {
		s := newSeat(t, "W02")

		assert.NotEqual(t, uuid.Nil, s.ID())
		assert.Equal(t, "W02", s.SeatNumber().String())
		assert.Equal(t, seat.RoomWhite, s.Room())
		assert.True(t, s.IsAvailable())
		assert.Nil(t, s.CurrentUser())
		assert.Nil(t, s.ReservedUntil())
	})

	t.Run("保持と解放", func(t *testing.T) {
		s := newSeat(t, "W01")
		userID := uuid.New()
		until := base.Add(3 * time.Hour)

		require.NoError(t, s.Hold(userID, until, base))
		assert.False(t, s.IsAvailable())
		assert.True(t, s.IsHeldBy(userID))
		assert.False(t, s.IsHeldBy(uuid.New()))
		assert.Equal(t, until, *s.ReservedUntil())
		assert.Equal(t, base, s.UpdatedAt())

		s.Release(base.Add(time.Minute))
		assert.True(t, s.IsAvailable())
		assert.False(t, s.IsHeldBy(userID))
	})

	t.Run("保持の事前条件", func(t *testing.T) {
		tests := []struct {
			name    string
			prepare func(*seat.Seat)
			userID  uuid.UUID
			until   time.Time
			errIs   error
		}{
			{
				name:    "保持中の座席はNG",
				prepare: func(s *seat.Seat) { _ = s.Hold(uuid.New(), base.Add(time.Hour), base) },
				userID:  uuid.New(),
				until:   base.Add(time.Hour),
				errIs:   seat.ErrNotAvailable,
			},
			{
				name:   "ユーザー未指定はNG",
				userID: uuid.Nil,
				until:  base.Add(time.Hour),
				errIs:  seat.ErrInvalidHold,
			},
			{
				name:   "期限が現在時刻ちょうどはNG",
				userID: uuid.New(),
				until:  base,
				errIs:  seat.ErrInvalidHold,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				s := newSeat(t, "W01")
				if tt.prepare != nil {
					tt.prepare(s)
				}
				err := s.Hold(tt.userID, tt.until, base)
				assert.ErrorIs(t, err, tt.errIs)
			})
		}
	})

	t.Run("期限切れ判定は厳密な比較", func(t *testing.T) {
		s := newSeat(t, "W01")
		until := base.Add(time.Hour)
		require.NoError(t, s.Hold(uuid.New(), until, base))

		assert.False(t, s.IsExpired(until.Add(-time.Second)))
		assert.False(t, s.IsExpired(until))
		assert.True(t, s.IsExpired(until.Add(time.Nanosecond)))
		assert.False(t, newSeat(t, "W02").IsExpired(base.Add(100*time.Hour)))
	})

	t.Run("Cloneは保持情報を共有しない", func(t *testing.T) {
		s := newSeat(t, "W01")
		require.NoError(t, s.Hold(uuid.New(), base.Add(time.Hour), base))

		c := s.Clone()
		c.Release(base)

		assert.False(t, s.IsAvailable())
		assert.True(t, c.IsAvailable())
	})
}

func TestSeatNumber(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		errIs error
	}{
		{in: "W01", want: "W01"},
		{in: " s12 ", want: "S12"},
		{in: "", errIs: seat.ErrInvalidSeatNumber},
		{in: "01", errIs: seat.ErrInvalidSeatNumber},
		{in: "W-01", errIs: seat.ErrInvalidSeatNumber},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := seat.NewSeatNumber(tt.in)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n.String())
		})
	}
}

func TestHours(t *testing.T) {
	bounds := seat.DefaultHourBounds()

	t.Run("境界値", func(t *testing.T) {
		for _, n := range []int{1, 8} {
			h, err := seat.NewHours(n, bounds)
			require.NoError(t, err)
			assert.Equal(t, n, h.Int())
		}
		for _, n := range []int{0, 9, -1} {
			_, err := seat.NewHours(n, bounds)
			assert.ErrorIs(t, err, seat.ErrInvalidHours)
		}
	})

	t.Run("期限の計算", func(t *testing.T) {
		h, err := seat.NewHours(3, bounds)
		require.NoError(t, err)
		assert.Equal(t, base.Add(3*time.Hour), h.DeadlineFrom(base))
	})
}

func TestRoom(t *testing.T) {
	r, err := seat.NewRoom("staff")
	require.NoError(t, err)
	assert.Equal(t, "S", r.Prefix())

	_, err = seat.NewRoom("lobby")
	assert.ErrorIs(t, err, seat.ErrInvalidRoom)

	if diff := cmp.Diff([]seat.Room{seat.RoomWhite, seat.RoomStaff}, seat.Rooms()); diff != "" {
		t.Errorf("rooms mismatch (-want +got):\n%s", diff)
	}
}
