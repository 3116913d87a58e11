package client

import (
	"context"
	"errors"
	"strings"

	"github.com/ignaciodev/taskflow/internal/core/domain"
)

// ErrBlankText signals that Add was called with blank input. No network call
// is made; the consumer surfaces transient UI feedback.
var ErrBlankText = errors.New("task text is blank")

// Controller owns the client-side task list and applies optimistic mutations
// with rollback on failure. All mutations roll back uniformly, including
// toggles and batch clears.
//
// The controller assumes single-threaded cooperative use and is not safe for
// concurrent calls. Concurrent mutations on the same task are not serialized;
// the last server response to arrive wins in local state.
type Controller struct {
	api   API
	state State
}

func NewController(api API) *Controller {
	return &Controller{
		api:   api,
		state: State{Tasks: []domain.Task{}, Filter: FilterAll},
	}
}

// State returns a snapshot of the current client state. The returned slice is
// a copy; mutating it does not affect the controller.
func (c *Controller) State() State {
	tasks := make([]domain.Task, len(c.state.Tasks))
	copy(tasks, c.state.Tasks)
	return State{Tasks: tasks, Filter: c.state.Filter}
}

// SetFilter switches the visible projection. Pure local operation.
func (c *Controller) SetFilter(f Filter) {
	c.state.Filter = f
}

// Load replaces the local list with the server's, newest first.
func (c *Controller) Load(ctx context.Context) error {
	tasks, err := c.api.ListTasks(ctx)
	if err != nil {
		return err
	}
	c.state.Tasks = tasks
	return nil
}

// Add creates a task. Blank input (after trimming) fails locally with
// ErrBlankText and no network call. Nothing is inserted until the server
// confirms; the returned task is then prepended.
func (c *Controller) Add(ctx context.Context, text string) (*domain.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrBlankText
	}

	task, err := c.api.CreateTask(ctx, text)
	if err != nil {
		return nil, err
	}

	c.state.Tasks = prepend(c.state.Tasks, *task)
	return task, nil
}

// Toggle flips a task's completed flag optimistically, then confirms with the
// server. On success the local record is replaced with the server's canonical
// version; on failure the flip is rolled back.
func (c *Controller) Toggle(ctx context.Context, id string) error {
	i := indexOf(c.state.Tasks, id)
	if i == -1 {
		return domain.ErrTaskNotFound
	}

	next := !c.state.Tasks[i].Completed
	c.state.Tasks[i].Completed = next

	updated, err := c.api.UpdateTask(ctx, id, next)
	if err != nil {
		if j := indexOf(c.state.Tasks, id); j != -1 {
			c.state.Tasks[j].Completed = !next
		}
		return err
	}

	if j := indexOf(c.state.Tasks, id); j != -1 {
		c.state.Tasks[j] = *updated
	}
	return nil
}

// Delete removes a task optimistically. On failure the removed record is
// re-inserted at its original index.
func (c *Controller) Delete(ctx context.Context, id string) error {
	i := indexOf(c.state.Tasks, id)
	if i == -1 {
		return domain.ErrTaskNotFound
	}

	removed := c.state.Tasks[i]
	c.state.Tasks = removeAt(c.state.Tasks, i)

	if _, err := c.api.DeleteTask(ctx, id); err != nil {
		c.state.Tasks = insertAt(c.state.Tasks, i, removed)
		return err
	}
	return nil
}

// ClearCompleted optimistically removes every completed task, then issues one
// delete call per task sequentially. Each failed delete re-inserts its task
// at the original index; the remaining deletes still run. Errors are joined.
func (c *Controller) ClearCompleted(ctx context.Context) error {
	type removal struct {
		index int
		task  domain.Task
	}

	removals := []removal{}
	for i, t := range c.state.Tasks {
		if t.Completed {
			removals = append(removals, removal{index: i, task: t})
		}
	}
	if len(removals) == 0 {
		return nil
	}

	c.state.Tasks = filterTasks(c.state.Tasks, func(t domain.Task) bool { return !t.Completed })

	var errs []error
	for _, r := range removals {
		if _, err := c.api.DeleteTask(ctx, r.task.ID); err != nil {
			c.state.Tasks = insertAt(c.state.Tasks, r.index, r.task)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
