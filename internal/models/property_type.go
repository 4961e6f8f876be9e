package models

// PropertyType is an entry of the fixed listing-type vocabulary.
type PropertyType struct {
	ID   int64  `gorm:"column:type_id;primaryKey;autoIncrement" json:"type_id"`
	Name string `gorm:"column:type_name;type:varchar(100);not null" json:"type_name"`
}

// TableName specifies the table name
func (PropertyType) TableName() string {
	return "property_types"
}

// DefaultPropertyTypes is the seeded vocabulary, in insertion order.
var DefaultPropertyTypes = []string{
	"House",
	"Apartment",
	"Condo",
	"Townhouse",
	"Land",
	"Commercial",
}
