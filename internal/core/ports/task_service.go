package ports

import (
	"context"

	"github.com/taskhub/task-tracker/internal/core/domain"
)

// TaskInput carries the client-settable task fields. The owner is never part
// of it; ownership is derived from the caller's principal at creation.
type TaskInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
}

type TaskService interface {
	Create(ctx context.Context, in TaskInput, p domain.Principal) (*domain.Task, error)
	List(ctx context.Context, p domain.Principal) ([]domain.Task, error)
	Get(ctx context.Context, id string) (*domain.Task, error)
	Update(ctx context.Context, id string, in TaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
