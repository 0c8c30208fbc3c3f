package handler

import (
	"errors"
	"strconv"

	"microblog/internal/dto"
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin surface.
type AdminHandler struct {
	adminService *service.AdminService
	userRepo     *repository.UserRepository
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(adminService *service.AdminService, userRepo *repository.UserRepository) *AdminHandler {
	return &AdminHandler{adminService: adminService, userRepo: userRepo}
}

// ListUsers returns all users, newest first.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page := pageParam(c)
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "25"))
	if err != nil || perPage < 1 {
		perPage = 25
	}

	users, total, err := h.userRepo.List((page-1)*perPage, perPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	responses := make([]dto.UserInfo, len(users))
	for i := range users {
		responses[i] = dto.NewUserInfo(&users[i])
	}

	utils.PaginatedResponse(c, responses, total, page, perPage)
}

// DeleteUser removes a user account and everything it owns.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "invalid user id")
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "user deleted", nil)
}
