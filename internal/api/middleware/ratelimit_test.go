package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allow bool
	err   error
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	return l.allow, l.err
}

func runLoginRateLimit(t *testing.T, limiter Limiter) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := LoginRateLimit(limiter, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestLoginRateLimit_Allows(t *testing.T) {
	rec := runLoginRateLimit(t, &stubLimiter{allow: true})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLoginRateLimit_Rejects(t *testing.T) {
	rec := runLoginRateLimit(t, &stubLimiter{allow: false})
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestLoginRateLimit_NilLimiterDisables(t *testing.T) {
	rec := runLoginRateLimit(t, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestLoginRateLimit_StoreFailureFailsOpen(t *testing.T) {
	rec := runLoginRateLimit(t, &stubLimiter{allow: false, err: context.DeadlineExceeded})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when limiter store fails, got %d", rec.Code)
	}
}
