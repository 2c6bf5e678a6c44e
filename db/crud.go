package db

import (
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Insert creates the row for value only; associations are never written.
// When the insert fails and a row with the given primary key already exists
// the error is ErrConflict.
func Insert(value interface{}, id uint) error {
	err := DB.Omit(clause.Associations).Create(value).Error

	if err == nil {
		return nil
	}

	exists, existsErr := Exists(value, id)

	if existsErr != nil {
		slog.Error("Failed to check for conflicting row", "id", id, "error", existsErr)
	} else if exists {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}

	return fmt.Errorf("failed to insert: %w", err)
}

// Replace overwrites every column of the row with the given primary key.
// Associations are left untouched. The result distinguishes a vanished row
// (ErrNotFound) from a write rejected by a uniqueness constraint while the
// row still exists (ErrConflict).
func Replace(value interface{}, id uint) error {
	result := DB.Model(value).
		Where("id = ?", id).
		Select("*").
		Omit(clause.Associations).
		Updates(value)

	if result.Error != nil {
		exists, existsErr := Exists(value, id)
		if existsErr != nil {
			return result.Error
		}
		if !exists {
			return ErrNotFound
		}
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %v", ErrConflict, result.Error)
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		// Some drivers report zero affected rows for an unchanged row.
		exists, err := Exists(value, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
	}

	return nil
}
