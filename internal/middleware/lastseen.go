package middleware

import (
	"time"

	"microblog/internal/repository"

	"github.com/gin-gonic/gin"
)

// LastSeenMiddleware refreshes the authenticated user's last-seen
// timestamp. Runs after AuthMiddleware.
func LastSeenMiddleware(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, exists := GetUserID(c); exists {
			// Best effort; a failed write must not break the request.
			_ = userRepo.UpdateLastSeen(userID, time.Now())
		}
		c.Next()
	}
}
