package database

import (
	"context"
	"homefinder/internal/models"

	"gorm.io/gorm"
)

// TypeStat counts listings per property type. Untyped or dangling types have a nil name.
type TypeStat struct {
	TypeID   *int64  `json:"type_id"`
	TypeName *string `json:"type_name"`
	Count    int64   `json:"count"`
}

// Stats summarizes table sizes
type Stats struct {
	Users           int64      `json:"users"`
	Properties      int64      `json:"properties"`
	PropertyImages  int64      `json:"property_images"`
	Favorites       int64      `json:"favorites"`
	ContactRequests int64      `json:"contact_requests"`
	ByType          []TypeStat `json:"by_type"`
}

// GetStats returns row counts and the per-type listing distribution
func (gdb *GormDB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByType: []TypeStat{}}
	err := gdb.transaction(ctx, "collecting stats", func(tx *gorm.DB) error {
		counts := []struct {
			model any
			dest  *int64
		}{
			{&models.User{}, &stats.Users},
			{&models.Property{}, &stats.Properties},
			{&models.PropertyImage{}, &stats.PropertyImages},
			{&models.Favorite{}, &stats.Favorites},
			{&models.ContactRequest{}, &stats.ContactRequests},
		}
		for _, c := range counts {
			if err := tx.Model(c.model).Count(c.dest).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Property{}).
			Select("properties.type_id AS type_id, property_types.type_name AS type_name, COUNT(*) AS count").
			Joins("LEFT JOIN property_types ON property_types.type_id = properties.type_id").
			Group("properties.type_id, property_types.type_name").
			Order("properties.type_id").
			Scan(&stats.ByType).Error
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}
