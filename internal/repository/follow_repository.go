package repository

import (
	"microblog/internal/models"

	"gorm.io/gorm"
)

// FollowRepository is the data access layer for follow edges.
type FollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a follow repository.
func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Follow adds the edge follower -> followed. Adding an existing edge
// is a no-op. Self-follow prevention is a caller obligation.
func (r *FollowRepository) Follow(followerID, followedID uint) error {
	exists, err := r.IsFollowing(followerID, followedID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.db.Create(&models.Follow{FollowerID: followerID, FollowedID: followedID}).Error
}

// Unfollow removes the edge if present; removing a missing edge is a
// no-op.
func (r *FollowRepository) Unfollow(followerID, followedID uint) error {
	return r.db.
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether the edge follower -> followed exists.
func (r *FollowRepository) IsFollowing(followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

// FollowerCount counts users following the given user.
func (r *FollowRepository) FollowerCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}

// FollowingCount counts users the given user follows.
func (r *FollowRepository) FollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
