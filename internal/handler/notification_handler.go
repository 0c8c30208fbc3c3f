package handler

import (
	"strconv"

	"microblog/internal/dto"
	"microblog/internal/middleware"
	"microblog/internal/repository"
	"microblog/internal/utils"

	"github.com/gin-gonic/gin"
)

// NotificationHandler lets the UI layer poll for asynchronous events
// such as job progress and unread message counts.
type NotificationHandler struct {
	notificationRepo *repository.NotificationRepository
}

// NewNotificationHandler creates a notification handler.
func NewNotificationHandler(notificationRepo *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepo: notificationRepo}
}

// List returns the current user's notifications newer than the since
// parameter, in chronological order.
func (h *NotificationHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	since := 0.0
	if raw := c.Query("since"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.BadRequest(c, "invalid since parameter")
			return
		}
		since = parsed
	}

	notifications, err := h.notificationRepo.ListByUserID(userID, since)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, dto.NewNotificationResponses(notifications))
}
