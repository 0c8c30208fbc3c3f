package repository

import (
	"microblog/internal/models"

	"gorm.io/gorm"
)

// PostRepository is the data access layer for posts, including the
// feed queries.
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a post repository.
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *PostRepository) WithTx(tx *gorm.DB) *PostRepository {
	return &PostRepository{db: tx}
}

// Create inserts a post.
func (r *PostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID loads a post with its author.
func (r *PostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.Preload("User").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FollowedFeed returns posts authored by the user or by anyone the
// user follows, newest first. A single membership predicate keeps the
// result free of duplicates even under a pathological self-follow.
func (r *PostRepository) FollowedFeed(userID uint, offset, limit int) ([]models.Post, int64, error) {
	followed := r.db.Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)

	query := r.db.Model(&models.Post{}).
		Where("user_id IN (?) OR user_id = ?", followed, userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// OwnFeed returns the user's authored posts, newest first.
func (r *PostRepository) OwnFeed(userID uint, offset, limit int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// GlobalFeed returns all posts, newest first.
func (r *PostRepository) GlobalFeed(offset, limit int) ([]models.Post, int64, error) {
	var total int64
	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.db.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

// ListByUserAscending returns all of a user's posts oldest first, for
// the export job.
func (r *PostRepository) ListByUserAscending(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&posts).Error
	return posts, err
}

// CountByUserID counts a user's posts.
func (r *PostRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// GetByIDs loads posts by id, newest first.
func (r *PostRepository) GetByIDs(ids []uint) ([]models.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var posts []models.Post
	err := r.db.Preload("User").
		Where("id IN ?", ids).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}
