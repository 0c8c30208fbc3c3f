package service

import (
	"context"
	"errors"
	"fmt"

	"microblog/internal/models"
	"microblog/internal/queue"
	"microblog/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProgressNotification is the name under which job progress reaches
// the owning user.
const ProgressNotification = "job_progress"

// JobService tracks background jobs. Durable identity and ownership
// live in the job table; live progress lives only in the queue's
// side-channel and may vanish independently.
type JobService struct {
	db               *gorm.DB
	jobRepo          *repository.JobRepository
	notificationRepo *repository.NotificationRepository
	queue            queue.Queue
	logger           *logrus.Logger
}

// NewJobService creates a job service.
func NewJobService(
	db *gorm.DB,
	jobRepo *repository.JobRepository,
	notificationRepo *repository.NotificationRepository,
	q queue.Queue,
	logger *logrus.Logger,
) *JobService {
	return &JobService{
		db:               db,
		jobRepo:          jobRepo,
		notificationRepo: notificationRepo,
		queue:            q,
		logger:           logger,
	}
}

// Launch enqueues a named task with the user's id as its first
// argument and synchronously persists a job record under the
// queue-assigned task id, before the task starts executing.
func (s *JobService) Launch(ctx context.Context, user *models.User, name, description string, args ...interface{}) (*models.Job, error) {
	taskArgs := append([]interface{}{user.ID}, args...)
	taskID, err := s.queue.Enqueue(ctx, name, taskArgs...)
	if err != nil {
		return nil, fmt.Errorf("enqueue task: %w", err)
	}

	job := &models.Job{
		ID:          taskID,
		Name:        name,
		Description: description,
		UserID:      user.ID,
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("create job record: %w", err)
	}

	return job, nil
}

// ReportProgress records a task's progress. The live side-channel
// write is best effort; the notification and, at 100 percent, the
// completion flag are committed in one transaction so a reader never
// sees one without the other.
func (s *JobService) ReportProgress(ctx context.Context, jobID string, percent int) error {
	handle, err := s.queue.Handle(ctx, jobID)
	if err == nil {
		if err := handle.SetProgress(ctx, percent); err != nil {
			s.logger.WithError(err).WithField("job_id", jobID).Warn("write live progress")
		}
	} else if !errors.Is(err, queue.ErrTaskNotFound) {
		s.logger.WithError(err).WithField("job_id", jobID).Warn("look up live task")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		job, err := s.jobRepo.WithTx(tx).GetByID(jobID)
		if err != nil {
			return fmt.Errorf("load job %s: %w", jobID, err)
		}

		_, err = s.notificationRepo.WithTx(tx).Add(job.UserID, ProgressNotification, models.JSONMap{
			"job_id":   job.ID,
			"progress": percent,
		})
		if err != nil {
			return fmt.Errorf("write progress notification: %w", err)
		}

		if percent >= 100 {
			if err := s.jobRepo.WithTx(tx).SetComplete(job.ID); err != nil {
				return fmt.Errorf("mark job complete: %w", err)
			}
		}
		return nil
	})
}

// Progress returns the job's last reported percentage. A job whose
// live handle cannot be located reports 100: the durable completion
// flag stays the authoritative source, and a wiped side-channel must
// degrade, not fail.
func (s *JobService) Progress(ctx context.Context, job *models.Job) int {
	handle, err := s.queue.Handle(ctx, job.ID)
	if err != nil {
		return 100
	}
	percent, err := handle.Progress(ctx)
	if err != nil {
		return 100
	}
	return percent
}

// ActiveJobs returns the user's in-progress jobs.
func (s *JobService) ActiveJobs(userID uint) ([]models.Job, error) {
	return s.jobRepo.ListActiveByUserID(userID)
}

// ActiveJob returns the user's in-progress job of the given name, or
// nil when there is none.
func (s *JobService) ActiveJob(userID uint, name string) (*models.Job, error) {
	job, err := s.jobRepo.GetActiveByUserIDAndName(userID, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// Jobs returns all of the user's jobs, newest first.
func (s *JobService) Jobs(userID uint) ([]models.Job, error) {
	return s.jobRepo.ListByUserID(userID)
}

// GetJob loads a job owned by the user.
func (s *JobService) GetJob(userID uint, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return job, nil
}
