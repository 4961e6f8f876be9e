package database

import (
	"context"
	"homefinder/internal/apperrors"
	"homefinder/internal/filters"
	"homefinder/internal/models"
	"strings"

	"gorm.io/gorm"
)

// CreateProperty validates and stores a new listing. created_at is stamped by the store.
func (gdb *GormDB) CreateProperty(ctx context.Context, in models.PropertyInput) (*models.Property, error) {
	if err := validatePropertyInput(in); err != nil {
		return nil, err
	}

	p := &models.Property{
		Title:        *in.Title,
		Description:  in.Description,
		Price:        in.Price.Round(2),
		Location:     *in.Location,
		NumBedrooms:  *in.NumBedrooms,
		NumBathrooms: *in.NumBathrooms,
		NumGarage:    *in.NumGarage,
		ImageURL:     in.ImageURL,
		OwnerID:      in.OwnerID,
		TypeID:       in.TypeID,
	}

	err := gdb.transaction(ctx, "creating property", func(tx *gorm.DB) error {
		if err := gdb.checkReferences(tx, userRef(in.OwnerID), typeRef(in.TypeID)); err != nil {
			return err
		}
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return loadProperty(tx, p.ID, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func validatePropertyInput(in models.PropertyInput) error {
	var missing []string
	if in.Title == nil {
		missing = append(missing, "title")
	}
	if in.Price == nil {
		missing = append(missing, "price")
	}
	if in.Location == nil {
		missing = append(missing, "location")
	}
	if in.NumBedrooms == nil {
		missing = append(missing, "num_bedrooms")
	}
	if in.NumBathrooms == nil {
		missing = append(missing, "num_bathrooms")
	}
	if in.NumGarage == nil {
		missing = append(missing, "num_garage")
	}
	if len(missing) > 0 {
		return apperrors.Validation("Missing field: %s", strings.Join(missing, ", "))
	}

	if in.Price.IsNegative() {
		return apperrors.Validation("price must not be negative")
	}
	if *in.NumBedrooms < 0 || *in.NumBathrooms < 0 || *in.NumGarage < 0 {
		return apperrors.Validation("room counts must not be negative")
	}
	return nil
}

// loadProperty reads a property with its type joined
func loadProperty(tx *gorm.DB, id int64, dest *models.Property) error {
	return tx.Preload("Type").Where("property_id = ?", id).First(dest).Error
}

// GetProperty retrieves a property by ID with its type joined
func (gdb *GormDB) GetProperty(ctx context.Context, id int64) (*models.Property, error) {
	var p models.Property
	err := gdb.transaction(ctx, "loading property", func(tx *gorm.DB) error {
		if err := loadProperty(tx, id, &p); err != nil {
			if isNotFound(err) {
				return apperrors.NotFound("Property")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProperties returns every property matching all active criteria, in storage order.
func (gdb *GormDB) ListProperties(ctx context.Context, f filters.PropertyFilters) ([]models.Property, error) {
	properties := []models.Property{}
	err := gdb.transaction(ctx, "listing properties", func(tx *gorm.DB) error {
		q := tx.Preload("Type")
		for _, pred := range f.Predicates() {
			q = q.Where(pred.Column+" "+pred.Op+" ?", pred.Value)
		}
		return q.Order("property_id").Find(&properties).Error
	})
	if err != nil {
		return nil, err
	}
	return properties, nil
}

// UpdateProperty overwrites only the fields present in patch. Field-level rules are not
// re-applied; values are only coerced to their column types.
func (gdb *GormDB) UpdateProperty(ctx context.Context, id int64, patch models.PropertyPatch) (*models.Property, error) {
	columns, err := propertyColumns(patch)
	if err != nil {
		return nil, err
	}

	var p models.Property
	err = gdb.transaction(ctx, "updating property", func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).First(&p).Error; err != nil {
			if isNotFound(err) {
				return apperrors.NotFound("Property")
			}
			return err
		}

		refs := []reference{}
		if v, ok := columns["user_id"].(int64); ok {
			refs = append(refs, userRef(&v))
		}
		if v, ok := columns["type_id"].(int64); ok {
			refs = append(refs, typeRef(&v))
		}
		if err := gdb.checkReferences(tx, refs...); err != nil {
			return err
		}

		if len(columns) > 0 {
			if err := tx.Model(&models.Property{}).Where("property_id = ?", id).Updates(columns).Error; err != nil {
				return err
			}
		}
		p = models.Property{}
		return loadProperty(tx, id, &p)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProperty removes a property together with its images, favorites and contact requests.
func (gdb *GormDB) DeleteProperty(ctx context.Context, id int64) error {
	return gdb.transaction(ctx, "deleting property", func(tx *gorm.DB) error {
		var p models.Property
		if err := tx.Where("property_id = ?", id).First(&p).Error; err != nil {
			if isNotFound(err) {
				return apperrors.NotFound("Property")
			}
			return err
		}

		// Dependents first
		dependents := []any{&models.PropertyImage{}, &models.Favorite{}, &models.ContactRequest{}}
		for _, model := range dependents {
			if err := tx.Where("property_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		return tx.Where("property_id = ?", id).Delete(&models.Property{}).Error
	})
}
