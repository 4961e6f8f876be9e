package models

// Favorite is a user's bookmark of a listing. (user_id, property_id) is unique.
type Favorite struct {
	ID         int64 `gorm:"column:favorite_id;primaryKey;autoIncrement" json:"favorite_id"`
	UserID     int64 `gorm:"column:user_id;not null;uniqueIndex:idx_favorites_user_property,priority:1" json:"user_id"`
	PropertyID int64 `gorm:"column:property_id;not null;uniqueIndex:idx_favorites_user_property,priority:2;index" json:"property_id"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}
