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

func ListFavorites(ctx *gin.Context) {
	favorites := []models.FavoriteReindeer{}

	if err := db.DB.Preload("Child").Preload("Reindeer").Order("id").Find(&favorites).Error; err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favorites"})
		return
	}

	ctx.JSON(http.StatusOK, favorites)
}

func GetFavorite(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var favorite models.FavoriteReindeer

	if err := db.DB.Preload("Child").Preload("Reindeer").First(&favorite, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
		} else {
			_ = ctx.Error(err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve favorite"})
		}
		return
	}

	ctx.JSON(http.StatusOK, favorite)
}

// bindFavorite binds the body and checks that both ends of the link exist.
func bindFavorite(ctx *gin.Context) (models.FavoriteReindeer, bool) {
	var favorite models.FavoriteReindeer

	if err := ctx.ShouldBindJSON(&favorite); err != nil {
		utils.RespondBindError(ctx, err)
		return favorite, false
	}

	favorite.Child = nil
	favorite.Reindeer = nil

	if !requireReference(ctx, &models.Child{}, favorite.ChildID, "childId") {
		return favorite, false
	}

	if !requireReference(ctx, &models.Reindeer{}, favorite.ReindeerID, "reindeerId") {
		return favorite, false
	}

	return favorite, true
}

func CreateFavorite(ctx *gin.Context) {
	favorite, ok := bindFavorite(ctx)

	if !ok {
		return
	}

	if err := db.Insert(&favorite, favorite.ID); err != nil {
		respondWriteError(ctx, err, "Favorite")
		return
	}

	BroadcastRefresh(types.ResourceFavorite, types.ActionCreated, favorite.ID)

	ctx.Header("Location", fmt.Sprintf("/api/favorite/%d", favorite.ID))
	ctx.JSON(http.StatusCreated, favorite)
}

func ReplaceFavorite(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	favorite, ok := bindFavorite(ctx)

	if !ok {
		return
	}

	if favorite.ID != id {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ID in path does not match ID in body"})
		return
	}

	if err := db.Replace(&favorite, id); err != nil {
		respondWriteError(ctx, err, "Favorite")
		return
	}

	BroadcastRefresh(types.ResourceFavorite, types.ActionReplaced, id)

	ctx.Status(http.StatusNoContent)
}

func DeleteFavorite(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var favorite models.FavoriteReindeer

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Child").Preload("Reindeer").First(&favorite, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return db.ErrNotFound
			}
			return err
		}

		result := tx.Delete(&models.FavoriteReindeer{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return db.ErrNotFound
		}

		return nil
	})

	if err != nil {
		respondWriteError(ctx, err, "Favorite")
		return
	}

	BroadcastRefresh(types.ResourceFavorite, types.ActionDeleted, id)

	ctx.JSON(http.StatusOK, favorite)
}
