//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"seat-reservation/internal/domain/seat"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedSeats inserts available seats laid out the same way the reinitialize
// operation lays them out.
func SeedSeats(t *testing.T, db DBLike, specs ...seat.RoomSpec) {
	t.Helper()

	seats, err := seat.GenerateSeats(specs)
	require.NoError(t, err)

	ctx := context.Background()
	for _, s := range seats {
		pos := s.Position()
		_, err := db.Exec(ctx,
			"INSERT INTO seats (id, seat_number, room, position_x, position_y, is_available) VALUES ($1, $2, $3, $4, $5, true)",
			s.ID(), s.SeatNumber().String(), s.Room().String(), pos.X, pos.Y)
		require.NoError(t, err)
	}
}

// HoldSeat writes a hold directly, bypassing the engine's checks. Useful for
// placing deadlines in the past.
func HoldSeat(t *testing.T, db DBLike, seatNumber string, userID uuid.UUID, until time.Time) {
	t.Helper()

	tag, err := db.Exec(context.Background(),
		"UPDATE seats SET is_available = false, current_user_id = $2, reserved_until = $3, updated_at = now() WHERE seat_number = $1",
		seatNumber, userID, until)
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected(), "seat %s not found", seatNumber)
}

type SeatRow struct {
	IsAvailable   bool
	CurrentUserID *uuid.UUID
	ReservedUntil *time.Time
}

func FetchSeat(t *testing.T, db DBLike, seatNumber string) SeatRow {
	t.Helper()

	var row SeatRow
	err := db.QueryRow(context.Background(),
		"SELECT is_available, current_user_id, reserved_until FROM seats WHERE seat_number = $1", seatNumber).
		Scan(&row.IsAvailable, &row.CurrentUserID, &row.ReservedUntil)
	require.NoError(t, err)
	return row
}

func CountSeats(t *testing.T, db DBLike) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM seats").Scan(&n)
	require.NoError(t, err)
	return n
}

// ResetDB empties the seat pool between subtests.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := pool.Exec(ctx, "TRUNCATE seats"); err != nil {
		return fmt.Errorf("failed to truncate seats: %w", err)
	}
	return nil
}
