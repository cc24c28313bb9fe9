package ports

import "github.com/taskhub/task-tracker/internal/core/domain"

// TokenService issues and verifies signed, time-limited bearer tokens binding
// a subject email to its role.
type TokenService interface {
	Issue(email string, role domain.Role) (string, error)
	Verify(token string) (*domain.TokenClaims, error)
}
