package dto

import (
	"time"

	"microblog/internal/models"
)

// CreatePostRequest is the posting payload.
type CreatePostRequest struct {
	Body string `json:"body" binding:"required,max=140"`
}

// PostResponse is the public view of a post.
type PostResponse struct {
	ID        uint      `json:"id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPostResponse maps a post model to its public view.
func NewPostResponse(post *models.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Body:      post.Body,
		Author:    post.User.Username,
		UserID:    post.UserID,
		CreatedAt: post.CreatedAt,
	}
}

// NewPostResponses maps a slice of post models.
func NewPostResponses(posts []models.Post) []PostResponse {
	responses := make([]PostResponse, len(posts))
	for i := range posts {
		responses[i] = NewPostResponse(&posts[i])
	}
	return responses
}
