package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhub/task-tracker/internal/api/metrics"
)

// Limiter abstracts the rate-limit store (Redis).
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LoginRateLimit throttles login attempts per client IP. A nil limiter
// disables throttling. Limiter store failures are logged and the request is
// let through rather than failing closed on an infrastructure outage.
func LoginRateLimit(limiter Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if limiter == nil {
				return next(c)
			}

			ok, err := limiter.Allow(c.Request().Context(), "login:"+c.RealIP())
			if err != nil {
				log.Error().Err(err).Msg("rate limiter unavailable")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedLoginsTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}

			return next(c)
		}
	}
}
