package dto

import (
	"time"

	"microblog/internal/models"
)

// JobResponse is the public view of a background job, combining the
// durable record with the best-effort live progress.
type JobResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Complete    bool      `json:"complete"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewJobResponse maps a job model plus its live progress.
func NewJobResponse(job *models.Job, progress int) JobResponse {
	return JobResponse{
		ID:          job.ID,
		Name:        job.Name,
		Description: job.Description,
		Complete:    job.Complete,
		Progress:    progress,
		CreatedAt:   job.CreatedAt,
	}
}

// NotificationResponse is the public view of a notification.
type NotificationResponse struct {
	Name      string         `json:"name"`
	Timestamp float64        `json:"timestamp"`
	Payload   models.JSONMap `json:"payload"`
}

// NewNotificationResponses maps a slice of notification models.
func NewNotificationResponses(notifications []models.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = NotificationResponse{
			Name:      n.Name,
			Timestamp: n.Timestamp,
			Payload:   n.Payload,
		}
	}
	return responses
}
