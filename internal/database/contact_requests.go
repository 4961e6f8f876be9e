package database

import (
	"context"
	"homefinder/internal/apperrors"
	"homefinder/internal/models"

	"gorm.io/gorm"
)

// CreateContactRequest stores an inquiry about a property. requested_at is stamped by the store.
func (gdb *GormDB) CreateContactRequest(ctx context.Context, in models.ContactRequestInput) (*models.ContactRequest, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" || in.PropertyID == nil || *in.PropertyID == 0 {
		return nil, apperrors.Validation("Missing required fields")
	}

	req := &models.ContactRequest{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Message:    in.Message,
		PropertyID: *in.PropertyID,
	}
	err := gdb.transaction(ctx, "creating contact request", func(tx *gorm.DB) error {
		if err := gdb.checkReferences(tx, propertyRef(in.PropertyID)); err != nil {
			return err
		}
		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ListContactRequests returns the inquiries for an existing property, oldest first.
func (gdb *GormDB) ListContactRequests(ctx context.Context, propertyID int64) ([]models.ContactRequest, error) {
	requests := []models.ContactRequest{}
	err := gdb.transaction(ctx, "listing contact requests", func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Property{}).Where("property_id = ?", propertyID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.NotFound("Property")
		}
		return tx.Where("property_id = ?", propertyID).Order("request_id").Find(&requests).Error
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}
