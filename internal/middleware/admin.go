package middleware

import (
	"microblog/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware rejects non-admin sessions.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			utils.Forbidden(c, "admin access required")
			c.Abort()
			return
		}
		c.Next()
	}
}
