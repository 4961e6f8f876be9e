package models

// PropertyImage is an additional image of a property. Only storage and cascade are defined for it.
type PropertyImage struct {
	ID         int64  `gorm:"column:image_id;primaryKey;autoIncrement" json:"image_id"`
	PropertyID int64  `gorm:"column:property_id;not null;index" json:"property_id"`
	ImageURL   string `gorm:"column:image_url;type:text;not null" json:"image_url"`
}

// TableName specifies the table name for PropertyImage
func (PropertyImage) TableName() string {
	return "property_images"
}
