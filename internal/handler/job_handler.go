package handler

import (
	"errors"

	"microblog/internal/dto"
	"microblog/internal/middleware"
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/tasks"
	"microblog/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// JobHandler serves background job launching and progress polling.
type JobHandler struct {
	jobService *service.JobService
	userRepo   *repository.UserRepository
}

// NewJobHandler creates a job handler.
func NewJobHandler(jobService *service.JobService, userRepo *repository.UserRepository) *JobHandler {
	return &JobHandler{jobService: jobService, userRepo: userRepo}
}

// ExportPosts launches the post export job. One in-progress export per
// user: the check lives here, at the caller layer, not in the tracker.
func (h *JobHandler) ExportPosts(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	active, err := h.jobService.ActiveJob(userID, tasks.ExportPostsTask)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}
	if active != nil {
		utils.Conflict(c, service.ErrJobAlreadyRunning.Error())
		return
	}

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		utils.NotFound(c, "user not found")
		return
	}

	job, err := h.jobService.Launch(c.Request.Context(), user, tasks.ExportPostsTask, "Exporting posts...")
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "export started", dto.NewJobResponse(job, 0))
}

// List returns all of the current user's jobs with live progress.
func (h *JobHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	jobs, err := h.jobService.Jobs(userID)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := make([]dto.JobResponse, len(jobs))
	for i := range jobs {
		responses[i] = dto.NewJobResponse(&jobs[i], h.jobService.Progress(c.Request.Context(), &jobs[i]))
	}

	utils.SuccessResponse(c, responses)
}

// Active returns the current user's in-progress jobs.
func (h *JobHandler) Active(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	jobs, err := h.jobService.ActiveJobs(userID)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := make([]dto.JobResponse, len(jobs))
	for i := range jobs {
		responses[i] = dto.NewJobResponse(&jobs[i], h.jobService.Progress(c.Request.Context(), &jobs[i]))
	}

	utils.SuccessResponse(c, responses)
}

// Progress returns one job's completion state and live percentage.
func (h *JobHandler) Progress(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	jobID := c.Param("job_id")

	job, err := h.jobService.GetJob(userID, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "job not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, dto.NewJobResponse(job, h.jobService.Progress(c.Request.Context(), job)))
}
