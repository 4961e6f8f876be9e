package database

import (
	"context"
	"homefinder/internal/apperrors"
	"homefinder/internal/models"

	"gorm.io/gorm"
)

// SeedPropertyTypes inserts the fixed type vocabulary when the table is empty.
// It reports whether rows were inserted; an already seeded table is a skip, not an error.
// Meant to run once at startup: the count-then-insert is not guarded against concurrent callers.
func (gdb *GormDB) SeedPropertyTypes(ctx context.Context) (bool, error) {
	seeded := false
	err := gdb.transaction(ctx, "seeding property types", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.PropertyType{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		types := make([]models.PropertyType, 0, len(models.DefaultPropertyTypes))
		for _, name := range models.DefaultPropertyTypes {
			types = append(types, models.PropertyType{Name: name})
		}
		if err := tx.Create(&types).Error; err != nil {
			return err
		}
		seeded = true
		return nil
	})
	return seeded, err
}

// ListPropertyTypes returns the vocabulary in insertion order
func (gdb *GormDB) ListPropertyTypes(ctx context.Context) ([]models.PropertyType, error) {
	types := []models.PropertyType{}
	if err := gdb.db.WithContext(ctx).Order("type_id").Find(&types).Error; err != nil {
		return nil, apperrors.Internal("listing property types", err)
	}
	return types, nil
}
