// Package client implements the frontend sync logic as an explicit state
// struct plus pure update functions, leaving rendering to the consumer.
// Mutations are optimistic: local state changes first, the server call
// follows, and a failed call rolls the local change back.
package client

import "github.com/ignaciodev/taskflow/internal/core/domain"

// Filter selects which tasks Visible returns. Switching filters is a pure
// projection over the in-memory list and never touches the network.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// State is the full client-side task list plus the current filter.
type State struct {
	Tasks  []domain.Task
	Filter Filter
}

// Stats are the counters shown alongside the list.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// Visible projects the task list through the current filter.
func (s State) Visible() []domain.Task {
	switch s.Filter {
	case FilterActive:
		return filterTasks(s.Tasks, func(t domain.Task) bool { return !t.Completed })
	case FilterCompleted:
		return filterTasks(s.Tasks, func(t domain.Task) bool { return t.Completed })
	default:
		return s.Tasks
	}
}

// Stats computes the list counters.
func (s State) Stats() Stats {
	completed := 0
	for _, t := range s.Tasks {
		if t.Completed {
			completed++
		}
	}
	return Stats{
		Total:     len(s.Tasks),
		Completed: completed,
		Pending:   len(s.Tasks) - completed,
	}
}

func filterTasks(tasks []domain.Task, keep func(domain.Task) bool) []domain.Task {
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func indexOf(tasks []domain.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func prepend(tasks []domain.Task, t domain.Task) []domain.Task {
	out := make([]domain.Task, 0, len(tasks)+1)
	out = append(out, t)
	return append(out, tasks...)
}

func removeAt(tasks []domain.Task, i int) []domain.Task {
	out := make([]domain.Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	return append(out, tasks[i+1:]...)
}

func insertAt(tasks []domain.Task, i int, t domain.Task) []domain.Task {
	if i < 0 || i > len(tasks) {
		i = len(tasks)
	}
	out := make([]domain.Task, 0, len(tasks)+1)
	out = append(out, tasks[:i]...)
	out = append(out, t)
	return append(out, tasks[i:]...)
}
