package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"trackd/internal/shared/errors"
)

// uintParam parses a positive integer path parameter.
func uintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return 0, errors.NewValidationError("invalid " + name)
	}
	return uint(v), nil
}

// pagination reads page/page_size query parameters with sane bounds.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "25"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 25
	}
	return page, pageSize
}
