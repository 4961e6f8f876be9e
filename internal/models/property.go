package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property is a listing published by a user.
type Property struct {
	ID          int64           `gorm:"column:property_id;primaryKey;autoIncrement" json:"property_id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description *string         `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;index" json:"price"`
	Location    string          `gorm:"type:varchar(255);not null" json:"location"`

	// Filter attributes
	NumBedrooms  int `gorm:"column:num_bedrooms;not null;index" json:"num_bedrooms"`
	NumBathrooms int `gorm:"column:num_bathrooms;not null" json:"num_bathrooms"`
	NumGarage    int `gorm:"column:num_garage;not null" json:"num_garage"`

	ImageURL *string `gorm:"column:image_url;type:text" json:"image_url"`

	// References are plain columns; existence is checked by the integrity policy, not the schema.
	OwnerID *int64        `gorm:"column:user_id;index" json:"user_id"`
	TypeID  *int64        `gorm:"column:type_id;index" json:"type_id"`
	Type    *PropertyType `gorm:"foreignKey:TypeID;references:ID" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// TableName returns the table name for Property
func (Property) TableName() string {
	return "properties"
}

// TypeName returns the joined type name, or nil when the type is unset or dangling.
func (p *Property) TypeName() *string {
	if p.Type == nil {
		return nil
	}
	name := p.Type.Name
	return &name
}

// PropertyInput carries the fields of a new listing. Nil means the field was not supplied.
type PropertyInput struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Location     *string          `json:"location"`
	NumBedrooms  *int             `json:"num_bedrooms"`
	NumBathrooms *int             `json:"num_bathrooms"`
	NumGarage    *int             `json:"num_garage"`
	ImageURL     *string          `json:"image_url"`
	OwnerID      *int64           `json:"user_id"`
	TypeID       *int64           `json:"type_id"`
}

// PropertyPatch maps column names to replacement values. Keys outside the updatable set are ignored.
type PropertyPatch map[string]any
