package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisQueue is a redis-backed work queue. Pending tasks live in a
// list; per-task metadata lives in a hash under task:<id>, with a TTL
// so stale metadata eventually disappears on its own.
type RedisQueue struct {
	client    *redis.Client
	queueName string
	taskTTL   time.Duration
}

// NewRedisQueue creates a redis-backed queue.
func NewRedisQueue(client *redis.Client, queueName string, taskTTL time.Duration) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
		taskTTL:   taskTTL,
	}
}

func (q *RedisQueue) taskKey(id string) string {
	return "task:" + id
}

// Enqueue pushes a named task and returns its id. The metadata hash is
// created before the envelope becomes visible to workers.
func (q *RedisQueue) Enqueue(ctx context.Context, name string, args ...interface{}) (string, error) {
	task := &Task{
		ID:   uuid.NewString(),
		Name: name,
		Args: args,
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("marshal task: %w", err)
	}

	key := q.taskKey(task.ID)
	if err := q.client.HSet(ctx, key,
		"name", name,
		"enqueued_at", time.Now().Unix(),
	).Err(); err != nil {
		return "", fmt.Errorf("create task metadata: %w", err)
	}
	q.client.Expire(ctx, key, q.taskTTL)

	if err := q.client.LPush(ctx, q.queueName, payload).Err(); err != nil {
		return "", fmt.Errorf("push task: %w", err)
	}

	return task.ID, nil
}

// Handle resolves a task id to its live metadata.
func (q *RedisQueue) Handle(ctx context.Context, taskID string) (Handle, error) {
	exists, err := q.client.Exists(ctx, q.taskKey(taskID)).Result()
	if err != nil {
		return nil, fmt.Errorf("look up task metadata: %w", err)
	}
	if exists == 0 {
		return nil, ErrTaskNotFound
	}
	return &redisHandle{client: q.client, id: taskID, key: q.taskKey(taskID)}, nil
}

// Fetch blocks up to timeout for the next task. Returns (nil, nil)
// when the queue stays empty.
func (q *RedisQueue) Fetch(ctx context.Context, timeout time.Duration) (*Task, error) {
	res, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("pop task: %w", err)
	}
	if len(res) < 2 {
		return nil, nil
	}

	var task Task
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		return nil, fmt.Errorf("unmarshal task: %w", err)
	}
	return &task, nil
}

// redisHandle reads and writes the progress field of a task's hash.
type redisHandle struct {
	client *redis.Client
	id     string
	key    string
}

func (h *redisHandle) ID() string {
	return h.id
}

func (h *redisHandle) SetProgress(ctx context.Context, percent int) error {
	return h.client.HSet(ctx, h.key, "progress", percent).Err()
}

func (h *redisHandle) Progress(ctx context.Context) (int, error) {
	val, err := h.client.HGet(ctx, h.key, "progress").Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	percent, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("parse progress: %w", err)
	}
	return percent, nil
}
