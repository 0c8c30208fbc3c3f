package repository

import (
	"microblog/internal/models"

	"gorm.io/gorm"
)

// JobRepository is the data access layer for durable job records.
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a job repository.
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *JobRepository) WithTx(tx *gorm.DB) *JobRepository {
	return &JobRepository{db: tx}
}

// Create inserts a job record.
func (r *JobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

// GetByID loads a job with its owner.
func (r *JobRepository) GetByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("User").Where("id = ?", id).First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// SetComplete marks a job complete.
func (r *JobRepository) SetComplete(id string) error {
	return r.db.Model(&models.Job{}).Where("id = ?", id).Update("complete", true).Error
}

// ListActiveByUserID returns the user's in-progress jobs.
func (r *JobRepository) ListActiveByUserID(userID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("user_id = ? AND complete = ?", userID, false).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}

// GetActiveByUserIDAndName returns the user's in-progress job of the
// given name, if any.
func (r *JobRepository) GetActiveByUserIDAndName(userID uint, name string) (*models.Job, error) {
	var job models.Job
	err := r.db.
		Where("user_id = ? AND name = ? AND complete = ?", userID, name, false).
		Order("created_at DESC").
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// ListByUserID returns all of the user's jobs, newest first.
func (r *JobRepository) ListByUserID(userID uint) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, err
}
