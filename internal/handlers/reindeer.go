package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bagoloot/bagoloot/db"
	"github.com/bagoloot/bagoloot/internal/models"
	"github.com/bagoloot/bagoloot/internal/types"
	"github.com/bagoloot/bagoloot/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListReindeer returns every reindeer with the children who like it.
func ListReindeer(ctx *gin.Context) {
	var reindeer []models.Reindeer

	if err := db.DB.Preload("Fans.Child").Order("id").Find(&reindeer).Error; err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reindeer"})
		return
	}

	response := make([]types.ReindeerResponse, 0, len(reindeer))

	for _, r := range reindeer {
		response = append(response, types.NewReindeerResponse(r))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetReindeer(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reindeer models.Reindeer

	if err := db.DB.Preload("Fans.Child").First(&reindeer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Reindeer not found"})
		} else {
			_ = ctx.Error(err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reindeer"})
		}
		return
	}

	ctx.JSON(http.StatusOK, types.NewReindeerResponse(reindeer))
}

func CreateReindeer(ctx *gin.Context) {
	var reindeer models.Reindeer

	if err := ctx.ShouldBindJSON(&reindeer); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}

	if err := db.Insert(&reindeer, reindeer.ID); err != nil {
		respondWriteError(ctx, err, "Reindeer")
		return
	}

	BroadcastRefresh(types.ResourceReindeer, types.ActionCreated, reindeer.ID)

	ctx.Header("Location", fmt.Sprintf("/api/reindeer/%d", reindeer.ID))
	ctx.JSON(http.StatusCreated, types.NewReindeerResponse(reindeer))
}

func ReplaceReindeer(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reindeer models.Reindeer

	if err := ctx.ShouldBindJSON(&reindeer); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}

	if reindeer.ID != id {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ID in path does not match ID in body"})
		return
	}

	if err := db.Replace(&reindeer, id); err != nil {
		respondWriteError(ctx, err, "Reindeer")
		return
	}

	BroadcastRefresh(types.ResourceReindeer, types.ActionReplaced, id)

	ctx.Status(http.StatusNoContent)
}

// DeleteReindeer removes the reindeer and every favorite link to it.
func DeleteReindeer(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reindeer models.Reindeer

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Fans.Child").First(&reindeer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return db.ErrNotFound
			}
			return err
		}

		if err := tx.Where("reindeer_id = ?", id).Delete(&models.FavoriteReindeer{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Reindeer{}, id).Error
	})

	if err != nil {
		respondWriteError(ctx, err, "Reindeer")
		return
	}

	BroadcastRefresh(types.ResourceReindeer, types.ActionDeleted, id)

	ctx.JSON(http.StatusOK, types.NewReindeerResponse(reindeer))
}
