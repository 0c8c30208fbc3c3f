package service

import (
	"context"
	"fmt"

	"microblog/internal/models"
	"microblog/internal/repository"
	"microblog/internal/search"

	"gorm.io/gorm"
)

// PostService implements the feed aggregator: posting, the three feed
// views and full-text search.
type PostService struct {
	db       *gorm.DB
	postRepo *repository.PostRepository
	userRepo *repository.UserRepository
	hook     *search.Hook
	indexer  search.Indexer
}

// NewPostService creates a post service.
func NewPostService(
	db *gorm.DB,
	postRepo *repository.PostRepository,
	userRepo *repository.UserRepository,
	hook *search.Hook,
	indexer search.Indexer,
) *PostService {
	return &PostService{
		db:       db,
		postRepo: postRepo,
		userRepo: userRepo,
		hook:     hook,
		indexer:  indexer,
	}
}

// pageBounds clamps a 1-based page and converts it to an offset.
// Out-of-range pages resolve to an empty result, never an error.
func pageBounds(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 25
	}
	return (page - 1) * perPage, perPage
}

// CreatePost stores a new post. The mutation runs inside the search
// hook's transaction so the body is mirrored into the index on commit.
func (s *PostService) CreatePost(ctx context.Context, userID uint, body string) (*models.Post, error) {
	post := &models.Post{Body: body, UserID: userID}

	err := s.hook.Transaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.postRepo.WithTx(tx).Create(post)
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return s.postRepo.GetByID(post.ID)
}

// FollowedFeed returns the posts of the user and everyone they follow,
// newest first.
func (s *PostService) FollowedFeed(userID uint, page, perPage int) ([]models.Post, int64, error) {
	offset, limit := pageBounds(page, perPage)
	return s.postRepo.FollowedFeed(userID, offset, limit)
}

// OwnFeed returns the named user's authored posts, newest first.
func (s *PostService) OwnFeed(username string, page, perPage int) ([]models.Post, int64, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, 0, ErrUserNotFound
	}
	offset, limit := pageBounds(page, perPage)
	return s.postRepo.OwnFeed(user.ID, offset, limit)
}

// GlobalFeed returns all posts for the explore view, newest first.
func (s *PostService) GlobalFeed(page, perPage int) ([]models.Post, int64, error) {
	offset, limit := pageBounds(page, perPage)
	return s.postRepo.GlobalFeed(offset, limit)
}

// Search runs a full-text query and returns matching posts, newest
// first.
func (s *PostService) Search(ctx context.Context, query string, page, perPage int) ([]models.Post, int64, error) {
	ids, err := s.indexer.Search(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("search index: %w", err)
	}

	total := int64(len(ids))
	offset, limit := pageBounds(page, perPage)
	if offset >= len(ids) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}

	posts, err := s.postRepo.GetByIDs(ids[offset:end])
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
