package ports

import (
	"context"

	"github.com/taskhub/task-tracker/internal/core/domain"
)

// AuthResult carries the issued token plus the user's public-facing fields.
// The password hash is never part of it.
type AuthResult struct {
	Token string      `json:"token"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}
