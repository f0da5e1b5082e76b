package bootstrap

import (
	"seat-reservation/internal/domain/seat"
	"seat-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewHourBounds,
	),
)

func NewHourBounds(cfg config.Config) seat.HourBounds {
	return seat.HourBounds{Min: cfg.Reservation.MinHours, Max: cfg.Reservation.MaxHours}
}
