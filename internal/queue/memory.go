package queue

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryQueue is an in-process Queue used in tests and development
// setups without redis. Metadata can be dropped with Forget to mimic
// a side-channel wipe.
type MemoryQueue struct {
	mu      sync.Mutex
	pending []*Task
	meta    map[string]*memoryHandle
}

// NewMemoryQueue creates an in-process queue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{meta: make(map[string]*memoryHandle)}
}

// Enqueue appends a task and records its metadata.
func (q *MemoryQueue) Enqueue(ctx context.Context, name string, args ...interface{}) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	task := &Task{ID: uuid.NewString(), Name: name, Args: args}
	q.pending = append(q.pending, task)
	q.meta[task.ID] = &memoryHandle{id: task.ID}
	return task.ID, nil
}

// Handle resolves a task id to its live metadata.
func (q *MemoryQueue) Handle(ctx context.Context, taskID string) (Handle, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	h, ok := q.meta[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return h, nil
}

// Fetch pops the oldest pending task, waiting up to timeout for one to
// arrive so a polling worker does not spin. Returns (nil, nil) when
// the queue stays empty.
func (q *MemoryQueue) Fetch(ctx context.Context, timeout time.Duration) (*Task, error) {
	deadline := time.Now().Add(timeout)
	for {
		q.mu.Lock()
		if len(q.pending) > 0 {
			task := q.pending[0]
			q.pending = q.pending[1:]
			q.mu.Unlock()
			return task, nil
		}
		q.mu.Unlock()

		if timeout <= 0 || !time.Now().Before(deadline) {
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}

// Forget drops a task's live metadata, simulating a queue restart.
func (q *MemoryQueue) Forget(taskID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.meta, taskID)
}

type memoryHandle struct {
	mu       sync.Mutex
	id       string
	progress int
}

func (h *memoryHandle) ID() string {
	return h.id
}

func (h *memoryHandle) SetProgress(ctx context.Context, percent int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.progress = percent
	return nil
}

func (h *memoryHandle) Progress(ctx context.Context) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.progress, nil
}
