package handler

import (
	"errors"
	"fmt"

	"microblog/internal/dto"
	"microblog/internal/middleware"
	"microblog/internal/service"
	"microblog/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler serves profiles and the follow actions.
type UserHandler struct {
	followService *service.FollowService
}

// NewUserHandler creates a user handler.
func NewUserHandler(followService *service.FollowService) *UserHandler {
	return &UserHandler{followService: followService}
}

// Profile returns a user's profile with social counts.
func (h *UserHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	user, followers, following, err := h.followService.Profile(username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	isFollowing := false
	if currentUserID, exists := middleware.GetUserID(c); exists && currentUserID != user.ID {
		isFollowing, err = h.followService.IsFollowing(currentUserID, user.ID)
		if err != nil {
			utils.InternalError(c, err.Error())
			return
		}
	}

	utils.SuccessResponse(c, dto.ProfileResponse{
		User:           dto.NewUserInfo(user),
		FollowerCount:  followers,
		FollowingCount: following,
		IsFollowing:    isFollowing,
	})
}

// Follow makes the current user follow the named user.
func (h *UserHandler) Follow(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	username := c.Param("username")

	target, err := h.followService.Follow(userID, username)
	if err != nil {
		h.followError(c, err)
		return
	}

	utils.SuccessWithMessage(c, fmt.Sprintf("you are following %s", target.Username), nil)
}

// Unfollow makes the current user stop following the named user.
func (h *UserHandler) Unfollow(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	username := c.Param("username")

	target, err := h.followService.Unfollow(userID, username)
	if err != nil {
		h.followError(c, err)
		return
	}

	utils.SuccessWithMessage(c, fmt.Sprintf("you unfollowed %s", target.Username), nil)
}

func (h *UserHandler) followError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrSelfFollow):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalError(c, err.Error())
	}
}
