package ports

import (
	"context"

	"github.com/taskhub/task-tracker/internal/core/domain"
)

// TaskRepository defines the interface for task persistence. List results are
// ordered by id ascending so callers see a stable order.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindAll(ctx context.Context) ([]domain.Task, error)
	FindByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
