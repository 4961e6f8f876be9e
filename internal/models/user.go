package models

// User owns listings and favorites.
type User struct {
	ID    int64  `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Email string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}
