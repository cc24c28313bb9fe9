package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-tracker/internal/api/metrics"
	"github.com/taskhub/task-tracker/internal/core/domain"
	"github.com/taskhub/task-tracker/internal/core/ports"
)

// Auth verifies the bearer token and resolves the caller's principal once per
// request: the token yields {email, role}, the user store supplies the id.
// Handlers and services downstream read the principal from context instead of
// re-parsing claims.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}
			metrics.TokenVerificationsTotal.WithLabelValues("valid").Inc()

			user, err := users.FindByEmail(c.Request().Context(), claims.Email)
			if err != nil {
				// Token is valid but its subject no longer resolves to a user.
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown token subject")
			}

			c.Set("principal", domain.Principal{
				UserID: user.ID,
				Email:  user.Email,
				Role:   claims.Role,
			})

			return next(c)
		}
	}
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenInvalidSignature):
		return "invalid_signature"
	default:
		return "malformed"
	}
}
