// Package projection renders stored entities into the records returned to clients and
// mirrored into the search index.
package projection

import (
	"encoding/json"
	"homefinder/internal/models"
	"time"

	"github.com/shopspring/decimal"
)

// PropertyRecord is the outward shape of a listing. Price is a fixed-point decimal
// number with two places; created_at is RFC 3339 in UTC.
type PropertyRecord struct {
	PropertyID   int64       `json:"property_id"`
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	Price        json.Number `json:"price"`
	Location     string      `json:"location"`
	NumBedrooms  int         `json:"num_bedrooms"`
	NumBathrooms int         `json:"num_bathrooms"`
	NumGarage    int         `json:"num_garage"`
	ImageURL     *string     `json:"image_url"`
	UserID       *int64      `json:"user_id"`
	TypeID       *int64      `json:"type_id"`
	TypeName     *string     `json:"type_name"`
	CreatedAt    string      `json:"created_at"`
}

// Property projects a single listing
func Property(p *models.Property) PropertyRecord {
	return PropertyRecord{
		PropertyID:   p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Price:        Price(p.Price),
		Location:     p.Location,
		NumBedrooms:  p.NumBedrooms,
		NumBathrooms: p.NumBathrooms,
		NumGarage:    p.NumGarage,
		ImageURL:     p.ImageURL,
		UserID:       p.OwnerID,
		TypeID:       p.TypeID,
		TypeName:     p.TypeName(),
		CreatedAt:    Timestamp(p.CreatedAt),
	}
}

// Properties projects a list, never returning nil
func Properties(ps []models.Property) []PropertyRecord {
	records := make([]PropertyRecord, 0, len(ps))
	for i := range ps {
		records = append(records, Property(&ps[i]))
	}
	return records
}

// Price renders an amount with exactly two decimal places
func Price(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// Timestamp renders a time in RFC 3339 UTC
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// UserRecord is the outward shape of a user
type UserRecord struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// Users projects users, never returning nil
func Users(us []models.User) []UserRecord {
	records := make([]UserRecord, 0, len(us))
	for _, u := range us {
		records = append(records, User(u))
	}
	return records
}

func User(u models.User) UserRecord {
	return UserRecord{UserID: u.ID, Name: u.Name, Email: u.Email}
}

// TypeRecord is one entry of the property type vocabulary
type TypeRecord struct {
	TypeID   int64  `json:"type_id"`
	TypeName string `json:"type_name"`
}

func Types(ts []models.PropertyType) []TypeRecord {
	records := make([]TypeRecord, 0, len(ts))
	for _, t := range ts {
		records = append(records, TypeRecord{TypeID: t.ID, TypeName: t.Name})
	}
	return records
}

// ContactRequestRecord is the outward shape of an inquiry
type ContactRequestRecord struct {
	RequestID   int64   `json:"request_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	Message     string  `json:"message"`
	PropertyID  int64   `json:"property_id"`
	RequestedAt string  `json:"requested_at"`
}

func ContactRequests(rs []models.ContactRequest) []ContactRequestRecord {
	records := make([]ContactRequestRecord, 0, len(rs))
	for _, r := range rs {
		records = append(records, ContactRequestRecord{
			RequestID:   r.ID,
			Name:        r.Name,
			Email:       r.Email,
			Phone:       r.Phone,
			Message:     r.Message,
			PropertyID:  r.PropertyID,
			RequestedAt: Timestamp(r.RequestedAt),
		})
	}
	return records
}
