package service

import (
	"microblog/internal/models"
	"microblog/internal/repository"
)

// FollowService enforces the social-action preconditions around the
// idempotent follow-edge operations.
type FollowService struct {
	userRepo   *repository.UserRepository
	followRepo *repository.FollowRepository
}

// NewFollowService creates a follow service.
func NewFollowService(userRepo *repository.UserRepository, followRepo *repository.FollowRepository) *FollowService {
	return &FollowService{userRepo: userRepo, followRepo: followRepo}
}

// Follow makes the current user follow the named user. Self-follow is
// rejected here; double-follow is a no-op.
func (s *FollowService) Follow(currentUserID uint, username string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if target.ID == currentUserID {
		return nil, ErrSelfFollow
	}
	if err := s.followRepo.Follow(currentUserID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

// Unfollow makes the current user stop following the named user.
// Unfollowing a non-followed user is a no-op.
func (s *FollowService) Unfollow(currentUserID uint, username string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if target.ID == currentUserID {
		return nil, ErrSelfFollow
	}
	if err := s.followRepo.Unfollow(currentUserID, target.ID); err != nil {
		return nil, err
	}
	return target, nil
}

// IsFollowing reports whether follower follows the user with the given
// id.
func (s *FollowService) IsFollowing(followerID, followedID uint) (bool, error) {
	return s.followRepo.IsFollowing(followerID, followedID)
}

// Profile returns a user by username together with follower counts.
func (s *FollowService) Profile(username string) (*models.User, int64, int64, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, 0, 0, ErrUserNotFound
	}

	followers, err := s.followRepo.FollowerCount(user.ID)
	if err != nil {
		return nil, 0, 0, err
	}
	following, err := s.followRepo.FollowingCount(user.ID)
	if err != nil {
		return nil, 0, 0, err
	}
	return user, followers, following, nil
}
