package database

import (
	"context"
	"homefinder/internal/apperrors"
	"homefinder/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteResult is the outcome of AddFavorite. Created is false when the pair already existed.
type FavoriteResult struct {
	Favorite models.Favorite
	Created  bool
}

// AddFavorite bookmarks a property for a user. The insert is a single
// insert-if-absent against the (user_id, property_id) unique index, so
// concurrent duplicates cannot both land.
func (gdb *GormDB) AddFavorite(ctx context.Context, userID, propertyID int64) (*FavoriteResult, error) {
	if userID == 0 || propertyID == 0 {
		return nil, apperrors.Validation("user_id and property_id are required")
	}

	result := &FavoriteResult{}
	err := gdb.transaction(ctx, "adding favorite", func(tx *gorm.DB) error {
		if err := gdb.checkReferences(tx, userRef(&userID), propertyRef(&propertyID)); err != nil {
			return err
		}

		fav := models.Favorite{UserID: userID, PropertyID: propertyID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			result.Favorite = fav
			result.Created = true
			return nil
		}

		return tx.Where("user_id = ? AND property_id = ?", userID, propertyID).First(&result.Favorite).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListFavoriteProperties returns the properties a user has favorited, in the order they were added.
// An unknown user simply has no favorites.
func (gdb *GormDB) ListFavoriteProperties(ctx context.Context, userID int64) ([]models.Property, error) {
	properties := []models.Property{}
	err := gdb.transaction(ctx, "listing favorites", func(tx *gorm.DB) error {
		return tx.Preload("Type").
			Select("properties.*").
			Joins("JOIN favorites ON favorites.property_id = properties.property_id").
			Where("favorites.user_id = ?", userID).
			Order("favorites.favorite_id").
			Find(&properties).Error
	})
	if err != nil {
		return nil, err
	}
	return properties, nil
}
