package handler

import "github.com/ignaciodev/taskflow/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// --- Tasks ---

type createTaskRequest struct {
	Text string `json:"text" validate:"required"`
}

// Completed is a pointer so a missing flag and an explicit false are
// distinguishable; a non-boolean value is rejected at bind time.
type updateTaskRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type deleteTaskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}
