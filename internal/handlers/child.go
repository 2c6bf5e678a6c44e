package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bagoloot/bagoloot/db"
	"github.com/bagoloot/bagoloot/internal/models"
	"github.com/bagoloot/bagoloot/internal/types"
	"github.com/bagoloot/bagoloot/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateChildToyRequest struct {
	ChildName string `json:"childName" binding:"required,notblank,max=255"`
	ToyName   string `json:"toyName" binding:"required,notblank,max=255"`
}

// ListChildren returns every child with its toys. delivered=1 or
// delivered=0 filters on the flag; any other value is ignored. name keeps
// children whose name contains the given text.
func ListChildren(ctx *gin.Context) {
	query := db.DB.Preload("Toys").Order("id")

	switch ctx.Query("delivered") {
	case "1":
		query = query.Where("delivered = ?", 1)
	case "0":
		query = query.Where("delivered = ?", 0)
	}

	var children []models.Child

	if err := query.Find(&children).Error; err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve children"})
		return
	}

	if name, ok := ctx.GetQuery("name"); ok {
		filtered := children[:0]
		for _, child := range children {
			if strings.Contains(child.Name, name) {
				filtered = append(filtered, child)
			}
		}
		children = filtered
	}

	if children == nil {
		children = []models.Child{}
	}

	ctx.JSON(http.StatusOK, children)
}

func GetChild(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var child models.Child

	if err := db.DB.Preload("Toys").First(&child, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Child not found"})
		} else {
			_ = ctx.Error(err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve child"})
		}
		return
	}

	ctx.JSON(http.StatusOK, child)
}

func CreateChild(ctx *gin.Context) {
	var child models.Child

	if err := ctx.ShouldBindJSON(&child); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}

	// Toys and favorites are created through their own endpoints.
	child.Toys = nil
	child.Favorites = nil

	if err := db.Insert(&child, child.ID); err != nil {
		respondWriteError(ctx, err, "Child")
		return
	}

	child.Toys = []models.Toy{}

	BroadcastRefresh(types.ResourceChild, types.ActionCreated, child.ID)

	ctx.Header("Location", fmt.Sprintf("/api/child/%d", child.ID))
	ctx.JSON(http.StatusCreated, child)
}

// CreateChildWithToy inserts a child and one toy it owns in a single
// transaction. The toy's foreign key is taken from the child's generated
// key after the child row is written.
func CreateChildWithToy(ctx *gin.Context) {
	var req CreateChildToyRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}

	child := models.Child{Name: req.ChildName}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&child).Error; err != nil {
			return err
		}

		toy := models.Toy{Name: req.ToyName, ChildID: child.ID}

		if err := tx.Create(&toy).Error; err != nil {
			return err
		}

		child.Toys = []models.Toy{toy}

		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = fmt.Errorf("%w: %v", db.ErrConflict, err)
		}
		respondWriteError(ctx, err, "Child")
		return
	}

	slog.Debug("Created child with toy", "child_id", child.ID, "toy_id", child.Toys[0].ID)

	BroadcastRefresh(types.ResourceChild, types.ActionCreated, child.ID)

	ctx.Header("Location", fmt.Sprintf("/api/child/%d", child.ID))
	ctx.JSON(http.StatusCreated, child)
}

// ReplaceChild overwrites every column of the child. Toys are not touched.
func ReplaceChild(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var child models.Child

	if err := ctx.ShouldBindJSON(&child); err != nil {
		utils.RespondBindError(ctx, err)
		return
	}

	if child.ID != id {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "ID in path does not match ID in body"})
		return
	}

	if err := db.Replace(&child, id); err != nil {
		respondWriteError(ctx, err, "Child")
		return
	}

	BroadcastRefresh(types.ResourceChild, types.ActionReplaced, id)

	ctx.Status(http.StatusNoContent)
}

// DeleteChild removes the child together with its toys and favorite
// reindeer links and returns the deleted child.
func DeleteChild(ctx *gin.Context) {
	id, err := utils.GetIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var child models.Child

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Toys").First(&child, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return db.ErrNotFound
			}
			return err
		}

		if err := tx.Where("child_id = ?", id).Delete(&models.FavoriteReindeer{}).Error; err != nil {
			return err
		}

		if err := tx.Where("child_id = ?", id).Delete(&models.Toy{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Child{}, id).Error
	})

	if err != nil {
		respondWriteError(ctx, err, "Child")
		return
	}

	BroadcastRefresh(types.ResourceChild, types.ActionDeleted, id)

	ctx.JSON(http.StatusOK, child)
}
