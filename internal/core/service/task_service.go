package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/task-tracker/internal/core/domain"
	"github.com/taskhub/task-tracker/internal/core/ports"
)

// TaskService enforces ownership and role rules over the task store. Every
// call takes the caller's resolved principal; role checks for which operation
// may be invoked at all live in the HTTP middleware, not here.
type TaskService struct {
	tasks  ports.TaskRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, users ports.UserRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, users: users, logger: logger}
}

// Create persists a new task owned by the principal's user. Status defaults
// to PENDING when unset. A principal whose email no longer resolves to a user
// signals an inconsistent token/store state and fails with ErrUserNotFound.
func (s *TaskService) Create(ctx context.Context, in ports.TaskInput, p domain.Principal) (*domain.Task, error) {
	owner, err := s.users.FindByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	now := time.Now().UTC()
	task := &domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		OwnerID:     owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.tasks.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", owner.ID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("owner_id", owner.ID).Msg("task created")
	return created, nil
}

// List returns every task for an ADMIN principal, or only the caller's own
// tasks otherwise. Results are ordered by id ascending.
func (s *TaskService) List(ctx context.Context, p domain.Principal) ([]domain.Task, error) {
	if p.IsAdmin() {
		return s.tasks.FindAll(ctx)
	}

	owner, err := s.users.FindByEmail(ctx, p.Email)
	if err != nil {
		return nil, err
	}
	return s.tasks.FindByOwner(ctx, owner.ID)
}

// Get returns a task by id. Any authenticated caller may fetch any task; no
// ownership filter is applied here.
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

// Update overwrites title, description and status in place. There are no
// partial-update semantics: all three fields take the request's values. The
// owner is untouched.
func (s *TaskService) Update(ctx context.Context, id string, in ports.TaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	task.Title = in.Title
	task.Description = in.Description
	task.Status = status
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}
	return task, nil
}

// Delete removes a task permanently. A missing id fails with ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}
