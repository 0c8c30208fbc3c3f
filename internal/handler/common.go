package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParam reads the 1-based page query parameter.
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
