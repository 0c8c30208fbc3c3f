package service

import (
	"context"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/search"

	"gorm.io/gorm"
)

// AdminService performs administrative user management.
type AdminService struct {
	db       *gorm.DB
	userRepo *repository.UserRepository
	postRepo *repository.PostRepository
	hook     *search.Hook
}

// NewAdminService creates an admin service.
func NewAdminService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	postRepo *repository.PostRepository,
	hook *search.Hook,
) *AdminService {
	return &AdminService{
		db:       db,
		userRepo: userRepo,
		postRepo: postRepo,
		hook:     hook,
	}
}

// DeleteUser removes a user together with everything they own. The
// sqlite driver does not enforce the schema's cascade tags, so owned
// rows are deleted through gorm in one transaction; posts go row by
// row so the search hook drops them from the index on commit.
func (s *AdminService) DeleteUser(ctx context.Context, userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	posts, err := s.postRepo.ListByUserAscending(user.ID)
	if err != nil {
		return err
	}

	return s.hook.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		for i := range posts {
			if err := tx.Delete(&posts[i]).Error; err != nil {
				return err
			}
		}
		if err := tx.
			Where("follower_id = ? OR followed_id = ?", user.ID, user.ID).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("sender_id = ? OR recipient_id = ?", user.ID, user.ID).
			Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Job{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
