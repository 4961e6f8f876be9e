package database

import (
	"fmt"
	"homefinder/internal/apperrors"
	"homefinder/internal/models"

	"gorm.io/gorm"
)

// reference is a foreign key value about to be written.
type reference struct {
	entity string
	model  any
	column string
	id     *int64
}

func userRef(id *int64) reference {
	return reference{entity: "User", model: &models.User{}, column: "user_id", id: id}
}

func typeRef(id *int64) reference {
	return reference{entity: "Property type", model: &models.PropertyType{}, column: "type_id", id: id}
}

func propertyRef(id *int64) reference {
	return reference{entity: "Property", model: &models.Property{}, column: "property_id", id: id}
}

// checkReferences enforces the strict foreign-key policy inside tx.
// In permissive mode any value is accepted, matching the legacy behavior.
func (gdb *GormDB) checkReferences(tx *gorm.DB, refs ...reference) error {
	if !gdb.strictRefs {
		return nil
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		var count int64
		if err := tx.Model(ref.model).Where(ref.column+" = ?", *ref.id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.NotFound(fmt.Sprintf("%s %d", ref.entity, *ref.id))
		}
	}
	return nil
}
