package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetIDParam parses the ":id" path parameter as a positive primary key.
func GetIDParam(ctx *gin.Context) (uint, error) {
	idStr := ctx.Param("id")

	if idStr == "" {
		return 0, errors.New("ID not found")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil || id == 0 {
		return 0, errors.New("Invalid ID")
	}

	return uint(id), nil
}

// FormOrQuery returns the urlencoded/multipart form value for key, falling
// back to the query string.
func FormOrQuery(ctx *gin.Context, key string) string {
	if v, ok := ctx.GetPostForm(key); ok {
		return v
	}

	return ctx.Query(key)
}
