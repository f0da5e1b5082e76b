package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"seat-reservation/internal/domain/seat"
	"seat-reservation/internal/infra"
	"seat-reservation/internal/infra/repository/converter"
	sqlc "seat-reservation/internal/infra/sqlc/generated"
	"seat-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const pgErrCodeUniqueViolation = "23505"

type SeatQueries interface {
	GetSeatByNumber(ctx context.Context, db sqlc.DBTX, seatNumber string) (sqlc.Seats, error)
	GetSeatByHolder(ctx context.Context, db sqlc.DBTX, currentUserID pgtype.UUID) (sqlc.Seats, error)
	ListSeats(ctx context.Context, db sqlc.DBTX) ([]sqlc.Seats, error)
	ListSeatsByRoom(ctx context.Context, db sqlc.DBTX, room string) ([]sqlc.Seats, error)
	HoldSeat(ctx context.Context, db sqlc.DBTX, arg sqlc.HoldSeatParams) (sqlc.Seats, error)
	ReleaseSeat(ctx context.Context, db sqlc.DBTX, seatNumber string) (sqlc.Seats, error)
	ReclaimExpiredSeats(ctx context.Context, db sqlc.DBTX, reservedUntil pgtype.Timestamptz) ([]string, error)
	DeleteAllSeats(ctx context.Context, db sqlc.DBTX) (int64, error)
	InsertSeat(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertSeatParams) error
}

// TxRunner is satisfied by *uow.PostgresUoW.
type TxRunner interface {
	Within(ctx context.Context, fn func(ctx context.Context, db sqlc.DBTX) error) error
}

// SeatRepository relies on single-statement conditional updates for
// atomicity; only BulkReinitialize opens a transaction.
type SeatRepository struct {
	queries SeatQueries
	db      sqlc.DBTX
	tx      TxRunner
}

func NewSeatRepository(queries SeatQueries, db sqlc.DBTX, tx TxRunner) *SeatRepository {
	return &SeatRepository{
		queries: queries,
		db:      db,
		tx:      tx,
	}
}

func (r *SeatRepository) FindBySeatNumber(ctx context.Context, number seat.SeatNumber) (*seat.Seat, error) {
	row, err := r.queries.GetSeatByNumber(ctx, r.db, number.String())
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("seat not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find seat by number", err)
	}
	return toDomain(row)
}

func (r *SeatRepository) FindByHolder(ctx context.Context, userID uuid.UUID) (*seat.Seat, error) {
	row, err := r.queries.GetSeatByHolder(ctx, r.db, pgconv.UUIDToPgtype(userID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no seat held by user", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find seat by holder", err)
	}
	return toDomain(row)
}

func (r *SeatRepository) ListByRoom(ctx context.Context, room *seat.Room) ([]*seat.Seat, error) {
	var (
		rows []sqlc.Seats
		err  error
	)
	if room == nil {
		rows, err = r.queries.ListSeats(ctx, r.db)
	} else {
		rows, err = r.queries.ListSeatsByRoom(ctx, r.db, room.String())
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list seats", err)
	}

	result := make([]*seat.Seat, 0, len(rows))
	for _, row := range rows {
		s, err := toDomain(row)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// ApplyHold is a compare-and-set on is_available. When no row matches, the
// seat is re-read to tell a missing seat from a lost race.
func (r *SeatRepository) ApplyHold(ctx context.Context, number seat.SeatNumber, userID uuid.UUID, reservedUntil time.Time) (*seat.Seat, error) {
	row, err := r.queries.HoldSeat(ctx, r.db, sqlc.HoldSeatParams{
		SeatNumber:    number.String(),
		CurrentUserID: pgconv.UUIDToPgtype(userID),
		ReservedUntil: pgconv.TimeToPgtype(reservedUntil),
	})
	if err == nil {
		return toDomain(row)
	}
	if !pgconv.IsNoRows(err) {
		return nil, infra.WrapRepoErr("failed to hold seat", err)
	}

	if _, findErr := r.FindBySeatNumber(ctx, number); findErr != nil {
		return nil, findErr
	}
	return nil, infra.WrapRepoErr("seat is no longer available", err, infra.KindConditionFailed)
}

func (r *SeatRepository) ApplyRelease(ctx context.Context, number seat.SeatNumber) (*seat.Seat, error) {
	row, err := r.queries.ReleaseSeat(ctx, r.db, number.String())
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("seat not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to release seat", err)
	}
	return toDomain(row)
}

func (r *SeatRepository) BulkReclaim(ctx context.Context, now time.Time) ([]seat.SeatNumber, error) {
	numbers, err := r.queries.ReclaimExpiredSeats(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to reclaim expired seats", err)
	}

	result := make([]seat.SeatNumber, 0, len(numbers))
	for _, n := range numbers {
		sn, err := seat.NewSeatNumber(n)
		if err != nil {
			// already cleared; only the report loses this entry
			slog.Warn("reclaimed seat has malformed number", "seat_number", n)
			continue
		}
		result = append(result, sn)
	}
	return result, nil
}

func (r *SeatRepository) BulkReinitialize(ctx context.Context, specs []seat.RoomSpec) (int, error) {
	seats, err := seat.GenerateSeats(specs)
	if err != nil {
		return 0, err
	}

	var deleted int64
	err = r.tx.Within(ctx, func(ctx context.Context, db sqlc.DBTX) error {
		var err error
		deleted, err = r.queries.DeleteAllSeats(ctx, db)
		if err != nil {
			return infra.WrapRepoErr("failed to delete seats", err)
		}

		for _, s := range seats {
			if err := r.queries.InsertSeat(ctx, db, converter.SeatToInsertParams(s)); err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
					return infra.WrapRepoErr("duplicate seat number", err, infra.KindDuplicateKey)
				}
				return infra.WrapRepoErr("failed to insert seat", err)
			}
		}
		return nil
	})
	if err != nil {
		var repoErr infra.RepositoryError
		if errors.As(err, &repoErr) {
			return 0, err
		}
		return 0, infra.WrapRepoErr("reinitialize transaction failed", err)
	}

	slog.Info("seat pool reinitialized", "deleted", deleted, "created", len(seats))
	return len(seats), nil
}

func toDomain(row sqlc.Seats) (*seat.Seat, error) {
	s, err := converter.SeatFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("corrupted seat row", err)
	}
	return s, nil
}
