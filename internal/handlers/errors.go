package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bagoloot/bagoloot/db"
	"github.com/gin-gonic/gin"
)

// respondWriteError maps a failed insert, replace or delete to a status
// code. Anything that is neither a missing row nor a key conflict is an
// unexpected persistence failure.
func respondWriteError(ctx *gin.Context, err error, resource string) {
	_ = ctx.Error(err)

	switch {
	case errors.Is(err, db.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, db.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": resource + " already exists"})
	default:
		slog.Error("Database write failed", "resource", resource, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// requireReference writes a 400 and returns false unless a row of model
// with the given id exists.
func requireReference(ctx *gin.Context, model interface{}, id uint, field string) bool {
	exists, err := db.Exists(model, id)

	if err != nil {
		_ = ctx.Error(err)
		slog.Error("Failed to check reference", "field", field, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return false
	}

	if !exists {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "fields": gin.H{field: "exists"}})
		return false
	}

	return true
}
