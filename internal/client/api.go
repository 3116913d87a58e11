package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ignaciodev/taskflow/internal/core/domain"
)

// ErrSessionExpired is returned when any authenticated call comes back
// 401/403. The consumer should treat it as a global logout signal, not a
// per-request failure.
var ErrSessionExpired = errors.New("session expired, please login again")

// API is the server surface the sync controller depends on.
type API interface {
	ListTasks(ctx context.Context) ([]domain.Task, error)
	CreateTask(ctx context.Context, text string) (*domain.Task, error)
	UpdateTask(ctx context.Context, id string, completed bool) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)
}

// HTTPClient talks to the REST API with bearer authentication.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, token: token, http: http.DefaultClient}
}

type authPayload struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates an account and stores the returned session token on the
// client.
func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var resp authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// Login authenticates and stores the returned session token on the client.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*domain.User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp authPayload
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// Token returns the current session token, e.g. for authenticating the push
// channel.
func (c *HTTPClient) Token() string {
	return c.token
}

func (c *HTTPClient) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, text string) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", map[string]string{"text": text}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) UpdateTask(ctx context.Context, id string, completed bool) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, map[string]bool{"completed": completed}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	var resp struct {
		Message string       `json:"message"`
		Task    *domain.Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrSessionExpired
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
