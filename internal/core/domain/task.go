package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrEmptyText = errors.New("task text is required")

// Task is an item on a user's to-do list. Every operation on a task is scoped
// to its owner; a task id from another user behaves exactly like a missing id.
type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
