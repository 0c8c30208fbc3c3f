package dto

import (
	"time"

	"microblog/internal/models"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,username"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        UserInfo `json:"user"`
}

// ResetPasswordRequestRequest asks for a password reset token.
type ResetPasswordRequestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest sets a new password with a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// UpdateProfileRequest edits the current user's profile.
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,username"`
	AboutMe  *string `json:"about_me" binding:"omitempty,max=140"`
}

// UserInfo is the public view of a user.
type UserInfo struct {
	ID       uint       `json:"id"`
	Username string     `json:"username"`
	Email    string     `json:"email,omitempty"`
	AboutMe  string     `json:"about_me"`
	IsAdmin  bool       `json:"is_admin"`
	LastSeen *time.Time `json:"last_seen,omitempty"`
}

// NewUserInfo maps a user model to its public view.
func NewUserInfo(user *models.User) UserInfo {
	return UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		AboutMe:  user.AboutMe,
		IsAdmin:  user.IsAdmin,
		LastSeen: user.LastSeen,
	}
}

// ProfileResponse is a user profile with social counts.
type ProfileResponse struct {
	User           UserInfo `json:"user"`
	FollowerCount  int64    `json:"follower_count"`
	FollowingCount int64    `json:"following_count"`
	IsFollowing    bool     `json:"is_following"`
}
