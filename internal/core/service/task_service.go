package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ignaciodev/taskflow/internal/api/metrics"
	"github.com/ignaciodev/taskflow/internal/core/domain"
	"github.com/ignaciodev/taskflow/internal/core/ports"
)

// TaskService implements owner-scoped task CRUD. After every successful
// mutation the corresponding event is pushed to the owner's live connections;
// push delivery never affects the result of the mutation itself.
type TaskService struct {
	repo     ports.TaskRepository
	notifier ports.Notifier
	logger   zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, notifier ports.Notifier, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, notifier: notifier, logger: logger}
}

func (s *TaskService) Create(ctx context.Context, userID, text string) (*domain.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	task := &domain.Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create task")
		return nil, err
	}

	metrics.TasksCreatedTotal.Inc()
	s.notifier.Notify(userID, domain.EventTaskCreated, task)

	return task, nil
}

func (s *TaskService) ListByOwner(ctx context.Context, userID string) ([]domain.Task, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *TaskService) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*domain.Task, error) {
	task, err := s.repo.SetCompleted(ctx, userID, taskID, completed)
	if err != nil {
		return nil, err
	}

	metrics.TasksUpdatedTotal.Inc()
	s.notifier.Notify(userID, domain.EventTaskUpdated, task)

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	task, err := s.repo.Delete(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	metrics.TasksDeletedTotal.Inc()
	s.notifier.Notify(userID, domain.EventTaskDeleted, domain.DeletedTaskPayload{ID: task.ID})

	return task, nil
}
