package queue

import (
	"context"
	"errors"
	"time"
)

// ErrTaskNotFound is returned when no live metadata exists for a task
// id, e.g. after a queue restart or metadata expiry.
var ErrTaskNotFound = errors.New("queue: task not found")

// Task is the envelope carried through the queue.
type Task struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Args []interface{} `json:"args"`
}

// Handle is the live, possibly-absent view of an executing task's
// mutable metadata. It may vanish independently of any durable record.
type Handle interface {
	ID() string
	SetProgress(ctx context.Context, percent int) error
	Progress(ctx context.Context) (int, error)
}

// Queue is the work queue boundary: enqueue returns a task id, and the
// same id later resolves to a live handle or ErrTaskNotFound.
type Queue interface {
	Enqueue(ctx context.Context, name string, args ...interface{}) (string, error)
	Handle(ctx context.Context, taskID string) (Handle, error)
	Fetch(ctx context.Context, timeout time.Duration) (*Task, error)
}

// UintArg reads a positional argument as a uint. Arguments round-trip
// through JSON, so numbers may arrive as float64.
func UintArg(args []interface{}, i int) (uint, bool) {
	if i >= len(args) {
		return 0, false
	}
	switch v := args[i].(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint(v), true
	}
	return 0, false
}

// StringArg reads a positional argument as a string.
func StringArg(args []interface{}, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}
