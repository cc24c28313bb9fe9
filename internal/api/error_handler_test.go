package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskhub/task-tracker/internal/core/domain"
)

func renderError(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec, resp
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"task not found", domain.ErrTaskNotFound, http.StatusNotFound, "task not found"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"email exists", domain.ErrEmailExists, http.StatusConflict, "email already exists"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"token expired", domain.ErrTokenExpired, http.StatusUnauthorized, "token expired"},
		{"token signature", domain.ErrTokenInvalidSignature, http.StatusUnauthorized, "token signature invalid"},
		{"token malformed", domain.ErrTokenMalformed, http.StatusUnauthorized, "token malformed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, resp := renderError(t, tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if resp["success"] != false {
				t.Fatalf("expected failure envelope, got %+v", resp)
			}
			if resp["message"] != tc.msg {
				t.Fatalf("expected message %q, got %v", tc.msg, resp["message"])
			}
		})
	}
}

func TestErrorHandler_UnexpectedErrorIsOpaque(t *testing.T) {
	rec, resp := renderError(t, errors.New("pq: connection refused"))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if resp["message"] != "internal server error" {
		t.Fatalf("internal details leaked: %v", resp["message"])
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	rec, resp := renderError(t, echo.NewHTTPError(http.StatusForbidden, "insufficient role"))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if resp["message"] != "insufficient role" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}
