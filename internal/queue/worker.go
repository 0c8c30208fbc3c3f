package queue

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// TaskFunc is the body of a registered background task.
type TaskFunc func(ctx context.Context, task *Task) error

// Worker consumes tasks from a Queue and dispatches them to registered
// task functions. A task's error or panic is logged and swallowed; the
// queue itself does no failure tracking or redelivery.
type Worker struct {
	queue    Queue
	logger   *logrus.Logger
	handlers map[string]TaskFunc
	count    int
	stop     chan struct{}
	wg       sync.WaitGroup
}

// NewWorker creates a worker pool over the queue.
func NewWorker(q Queue, logger *logrus.Logger, count int) *Worker {
	if count <= 0 {
		count = 4
	}
	return &Worker{
		queue:    q,
		logger:   logger,
		handlers: make(map[string]TaskFunc),
		count:    count,
		stop:     make(chan struct{}),
	}
}

// Register binds a task name to its body. Must be called before Start.
func (w *Worker) Register(name string, fn TaskFunc) {
	w.handlers[name] = fn
}

// Start launches the worker goroutines.
func (w *Worker) Start(ctx context.Context) {
	for i := 0; i < w.count; i++ {
		w.wg.Add(1)
		go w.run(ctx, i)
	}
}

// Stop signals the workers and waits for them to drain.
func (w *Worker) Stop() {
	close(w.stop)
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context, id int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stop:
			w.logger.WithField("worker", id).Info("worker stopping")
			return
		case <-ctx.Done():
			w.logger.WithField("worker", id).Info("context canceled, worker exiting")
			return
		default:
			task, err := w.queue.Fetch(ctx, 2*time.Second)
			if err != nil {
				w.logger.WithError(err).Error("fetch task")
				time.Sleep(time.Second)
				continue
			}
			if task == nil {
				continue
			}
			w.execute(ctx, task)
		}
	}
}

// execute runs one task. Panics escaping the task body are logged to
// the diagnostic sink and never reach the pool loop.
func (w *Worker) execute(ctx context.Context, task *Task) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.WithFields(logrus.Fields{
				"task_id":   task.ID,
				"task_name": task.Name,
				"panic":     r,
			}).Error("unhandled panic in task")
		}
	}()

	fn, ok := w.handlers[task.Name]
	if !ok {
		w.logger.WithFields(logrus.Fields{
			"task_id":   task.ID,
			"task_name": task.Name,
		}).Error("no handler registered for task")
		return
	}

	if err := fn(ctx, task); err != nil {
		w.logger.WithFields(logrus.Fields{
			"task_id":   task.ID,
			"task_name": task.Name,
		}).WithError(err).Error("task failed")
	}
}
