package ports

import (
	"context"

	"github.com/ignaciodev/taskflow/internal/core/domain"
)

// TaskRepository defines the interface for task persistence. Mutations carry
// the owner id inside the statement predicate so the ownership check and the
// mutation are a single atomic operation.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	ListByOwner(ctx context.Context, userID string) ([]domain.Task, error)
	SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) (*domain.Task, error)
}
