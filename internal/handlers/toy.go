package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/bagoloot/bagoloot/db"
	"github.com/bagoloot/bagoloot/internal/models"
	"github.com/bagoloot/bagoloot/internal/types"
	"github.com/bagoloot/bagoloot/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListToys returns all toys, or only those owned by childId when given.
func ListToys(ctx *gin.Context) {
	query := db.DB.Order("id")

	if childIDStr := ctx.Query("childId"); childIDStr != "" {
		childID, err := strconv.ParseUint(childIDStr, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid childId"})
			return
		}
		query = query.Where("child_id = ?", childID)
	}

	toys := []models.Toy{}

	if err := query.Find(&toys).Error; err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve toys"})
		return
	}

	ctx.JSON(http.StatusOK, toys)
}

func GetToy(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var toy models.Toy

	if err := db.DB.First(&toy, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Toy not found"})
		} else {
			_ = ctx.Error(err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve toy"})
		}
		return
	}

	ctx.JSON(http.StatusOK, toy)
}

func CreateToy(ctx *gin.Context) {
	var toy models.Toy

	if err := ctx.ShouldBindJSON(&toy); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}

	// The owner is referenced by key only.
	toy.Child = nil

	if !requireReference(ctx, &models.Child{}, toy.ChildID, "childId") {
		return
	}

	if err := db.Insert(&toy, toy.ID); err != nil {
		respondWriteError(ctx, err, "Toy")
		return
	}

	BroadcastRefresh(types.ResourceToy, types.ActionCreated, toy.ID)

	ctx.Header("Location", fmt.Sprintf("/api/toy/%d", toy.ID))
	ctx.JSON(http.StatusCreated, toy)
}

func ReplaceToy(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var toy models.Toy

	if err := ctx.ShouldBindJSON(&toy); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}

	if toy.ID != id {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ID in path does not match ID in body"})
		return
	}

	toy.Child = nil

	if !requireReference(ctx, &models.Child{}, toy.ChildID, "childId") {
		return
	}

	if err := db.Replace(&toy, id); err != nil {
		respondWriteError(ctx, err, "Toy")
		return
	}

	BroadcastRefresh(types.ResourceToy, types.ActionReplaced, id)

	ctx.Status(http.StatusNoContent)
}

func DeleteToy(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var toy models.Toy

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&toy, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return db.ErrNotFound
			}
			return err
		}

		result := tx.Delete(&models.Toy{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return db.ErrNotFound
		}

		return nil
	})

	if err != nil {
		respondWriteError(ctx, err, "Toy")
		return
	}

	BroadcastRefresh(types.ResourceToy, types.ActionDeleted, id)

	ctx.JSON(http.StatusOK, toy)
}
