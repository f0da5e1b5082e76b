package components

import (
	"context"
	"log/slog"

	"seat-reservation/internal/pkg/clock"
	"seat-reservation/internal/pkg/config"
	"seat-reservation/internal/usecase"
	"seat-reservation/internal/usecase/commands"
	"seat-reservation/internal/usecase/queries"
	"seat-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
	usecaseWorkersModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewSeatCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSeatQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

var usecaseWorkersModule = fx.Module("usecase/workers",
	fx.Provide(
		NewExpiryReclaimer,
	),
	fx.Invoke(func(usecase.ExpiryReclaimer) {}),
)

// NewExpiryReclaimer ties the sweep loop to the application lifecycle.
func NewExpiryReclaimer(
	lc fx.Lifecycle,
	cfg config.Config,
	registry shared.SeatRegistry,
	publisher shared.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) usecase.ExpiryReclaimer {
	r := usecase.NewExpiryReclaimer(registry, publisher, clk, cfg.Reservation.ReclaimInterval, usecase.NewTickerSource(), logger)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return r.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return r.Stop(ctx)
		},
	})

	return r
}
