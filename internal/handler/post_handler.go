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

// PostHandler serves posting, the feed views and search.
type PostHandler struct {
	postService *service.PostService
	cfg         *config.Config
}

// NewPostHandler creates a post handler.
func NewPostHandler(postService *service.PostService, cfg *config.Config) *PostHandler {
	return &PostHandler{postService: postService, cfg: cfg}
}

// CreatePost stores a new post by the current user.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), userID, req.Body)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "post added", dto.NewPostResponse(post))
}

// Feed returns the current user's followed feed.
func (h *PostHandler) Feed(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	page := pageParam(c)
	perPage := h.cfg.Pagination.PostsPerPage

	posts, total, err := h.postService.FollowedFeed(userID, page, perPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, dto.NewPostResponses(posts), total, page, perPage)
}

// Explore returns the global feed.
func (h *PostHandler) Explore(c *gin.Context) {
	page := pageParam(c)
	perPage := h.cfg.Pagination.PostsPerPage

	posts, total, err := h.postService.GlobalFeed(page, perPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, dto.NewPostResponses(posts), total, page, perPage)
}

// UserPosts returns the named user's own posts.
func (h *PostHandler) UserPosts(c *gin.Context) {
	username := c.Param("username")
	page := pageParam(c)
	perPage := h.cfg.Pagination.PostsPerPage

	posts, total, err := h.postService.OwnFeed(username, page, perPage)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			utils.NotFound(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, dto.NewPostResponses(posts), total, page, perPage)
}

// Search runs a full-text query over post bodies.
func (h *PostHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		utils.BadRequest(c, "missing query parameter q")
		return
	}
	page := pageParam(c)
	perPage := h.cfg.Pagination.PostsPerPage

	posts, total, err := h.postService.Search(c.Request.Context(), query, page, perPage)
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, dto.NewPostResponses(posts), total, page, perPage)
}
