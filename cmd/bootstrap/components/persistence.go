package components

import (
	"context"
	"log/slog"

	"seat-reservation/internal/domain/seat"
	"seat-reservation/internal/infra/memstore"
	"seat-reservation/internal/infra/repository"
	sqlc "seat-reservation/internal/infra/sqlc/generated"
	"seat-reservation/internal/infra/uow"
	"seat-reservation/internal/pkg/clock"
	"seat-reservation/internal/pkg/config"
	"seat-reservation/internal/pkg/errs"
	"seat-reservation/internal/usecase/queries"
	"seat-reservation/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewSeatRegistry,
		NewSeatReadStore,
	),
)

// NewSeatRegistry picks the backend named by SEAT_STORE. The in-memory pool
// starts out with the default layout since nothing else would ever seed it.
func NewSeatRegistry(cfg config.Config, pool *pgxpool.Pool, clk clock.Clock, logger *slog.Logger) (shared.SeatRegistry, error) {
	switch cfg.Reservation.Store {
	case config.StoreMemory:
		store := memstore.NewSeatStore(clk)
		count, err := store.BulkReinitialize(context.Background(), seat.DefaultLayout())
		if err != nil {
			return nil, err
		}
		logger.Info("インメモリの座席プールを初期化しました", "seats", count)
		return store, nil
	case config.StorePostgres:
		if pool == nil {
			return nil, errs.New("postgres seat store requires a database pool")
		}
		return repository.NewSeatRepository(sqlc.New(), pool, uow.NewPostgresUoW(pool)), nil
	default:
		return nil, errs.New("unsupported seat store: " + cfg.Reservation.Store)
	}
}

func NewSeatReadStore(registry shared.SeatRegistry) queries.SeatReadStore {
	return registry
}
