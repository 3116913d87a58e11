package ports

import (
	"context"

	"github.com/ignaciodev/taskflow/internal/core/domain"
)

type TaskService interface {
	Create(ctx context.Context, userID, text string) (*domain.Task, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Task, error)
	SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) (*domain.Task, error)
}
