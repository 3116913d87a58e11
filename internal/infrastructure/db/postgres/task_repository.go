package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ignaciodev/taskflow/internal/core/domain"
)

// TaskRepository persists tasks in the tasks table. The owner id is part of
// every mutation predicate, so the ownership check and the mutation are one
// atomic statement: a task belonging to another user is indistinguishable
// from a task that does not exist.
type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query :=
		`INSERT INTO tasks (id, user_id, text, completed, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		task.ID, task.UserID, task.Text, task.Completed, task.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Task, error) {
	query :=
		`SELECT id, user_id, text, completed, created_at FROM tasks
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Text, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*domain.Task, error) {
	query :=
		`UPDATE tasks SET completed = $1
		 WHERE id = $2 AND user_id = $3
		 RETURNING id, user_id, text, completed, created_at
		 `

	task := &domain.Task{}
	err := r.db.QueryRowContext(ctx, query, completed, taskID, userID).
		Scan(&task.ID, &task.UserID, &task.Text, &task.Completed, &task.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, userID, taskID string) (*domain.Task, error) {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, text, completed, created_at
		 `

	task := &domain.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID, userID).
		Scan(&task.ID, &task.UserID, &task.Text, &task.Completed, &task.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("delete task: %w", err)
	}

	return task, nil
}
