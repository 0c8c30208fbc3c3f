package handler

import (
	"errors"

	"microblog/internal/config"
	"microblog/internal/dto"
	"microblog/internal/middleware"
	"microblog/internal/service"
	"microblog/internal/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler serves private messaging.
type MessageHandler struct {
	messageService *service.MessageService
	cfg            *config.Config
}

// NewMessageHandler creates a message handler.
func NewMessageHandler(messageService *service.MessageService, cfg *config.Config) *MessageHandler {
	return &MessageHandler{messageService: messageService, cfg: cfg}
}

// Send delivers a private message to the named user.
func (h *MessageHandler) Send(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	username := c.Param("username")

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	message, err := h.messageService.Send(userID, username, req.Body)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "message sent", dto.MessageResponse{
		ID:        message.ID,
		Body:      message.Body,
		SenderID:  message.SenderID,
		CreatedAt: message.CreatedAt,
	})
}

// Inbox returns the current user's received messages, newest first,
// and moves the read marker.
func (h *MessageHandler) Inbox(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	page := pageParam(c)
	perPage := h.cfg.Pagination.MessagesPerPage

	messages, total, err := h.messageService.Received(userID, page, perPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, dto.NewMessageResponses(messages), total, page, perPage)
}

// UnreadCount returns the number of unread messages.
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	count, err := h.messageService.UnreadCount(userID)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"count": count})
}
