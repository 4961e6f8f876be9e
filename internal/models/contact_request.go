package models

import "time"

// ContactRequest is an inquiry sent to the publisher of a listing.
type ContactRequest struct {
	ID          int64     `gorm:"column:request_id;primaryKey;autoIncrement" json:"request_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Email       string    `gorm:"type:varchar(255);not null" json:"email"`
	Phone       *string   `gorm:"type:varchar(50)" json:"phone"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	PropertyID  int64     `gorm:"column:property_id;not null;index" json:"property_id"`
	RequestedAt time.Time `gorm:"not null;autoCreateTime" json:"requested_at"`
}

// TableName specifies the table name
func (ContactRequest) TableName() string {
	return "contact_requests"
}

// ContactRequestInput carries the fields of a new inquiry.
type ContactRequestInput struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      *string `json:"phone"`
	Message    string  `json:"message"`
	PropertyID *int64  `json:"property_id"`
}
