package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-tracker/internal/core/domain"
)

// principalKey is the context key under which the Auth middleware stores the
// resolved principal.
const principalKey = "principal"

// ctxPrincipal extracts the principal injected by the Auth middleware and
// performs a fast-fail check before any service call: a present, fully
// populated principal proves the middleware ran and resolved a live user.
func ctxPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(principalKey).(domain.Principal)
	if !ok || p.Email == "" || p.UserID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
