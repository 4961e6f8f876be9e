package database

import (
	"context"
	"fmt"
	"homefinder/internal/apperrors"
	"homefinder/internal/models"

	"gorm.io/gorm"
)

// CreateUser registers a user. Email is unique; a duplicate fails with Conflict and writes nothing.
func (gdb *GormDB) CreateUser(ctx context.Context, name, email string) (*models.User, error) {
	if name == "" || email == "" {
		return nil, apperrors.Validation("Name and email are required")
	}

	user := &models.User{Name: name, Email: email}
	err := gdb.transaction(ctx, "creating user", func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.Conflict(fmt.Sprintf("Email %s is already registered", email), err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUser retrieves a user by ID
func (gdb *GormDB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := gdb.db.WithContext(ctx).Where("user_id = ?", id).First(&user).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.NotFound("User")
		}
		return nil, apperrors.Internal("loading user", err)
	}
	return &user, nil
}

// ListUsers retrieves all users in creation order
func (gdb *GormDB) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := gdb.db.WithContext(ctx).Order("user_id").Find(&users).Error; err != nil {
		return nil, apperrors.Internal("listing users", err)
	}
	return users, nil
}
