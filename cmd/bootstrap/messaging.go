package bootstrap

import (
	"context"
	"log/slog"

	"seat-reservation/internal/infra/events"
	"seat-reservation/internal/infra/userlock"
	"seat-reservation/internal/pkg/config"
	"seat-reservation/internal/pkg/errs"
	"seat-reservation/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewUserLocker,
		NewEventPublisher,
	),
)

// NewUserLocker dials Redis only when per-user serialization is enabled.
func NewUserLocker(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UserLocker, error) {
	if !cfg.Reservation.SerializePerUser {
		return shared.NewNopUserLocker(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				return errs.Wrap(err, "failed to ping redis")
			}
			logger.Info("ユーザー単位の予約ロックを有効化しました", "redis_addr", cfg.Redis.Addr)
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return userlock.NewRedisLocker(client, cfg.Reservation.UserLockTTL), nil
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventPublisher, error) {
	if cfg.AMQP.URL == "" {
		return shared.NewNopEventPublisher(), nil
	}

	pub, cleanup, err := events.Dial(cfg.AMQP.URL, cfg.AMQP.SeatQueue)
	if err != nil {
		return nil, err
	}
	logger.Info("座席イベントの配信を開始します", "queue", cfg.AMQP.SeatQueue)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return pub, nil
}
