package middleware

import (
	"log/slog"

	"seat-reservation/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     cfg.AllowHeaders,
		ExposeHeaders:    cfg.ExposeHeaders,
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	// browser clients authenticate with the access_token cookie
	if cfg.AllowCredentials && len(cfg.AllowOrigins) == 1 && cfg.AllowOrigins[0] == "*" {
		slog.Warn("CORS wildcard origin cannot be combined with credentials; cookie auth will be refused by browsers")
	}
	slog.Info("CORS middleware initialized", "allow_origins", cfg.AllowOrigins, "allow_credentials", cfg.AllowCredentials)
	return cors.New(corsCfg)
}
