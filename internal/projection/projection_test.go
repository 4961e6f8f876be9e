package projection

import (
	"encoding/json"
	"homefinder/internal/models"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyRecordJSON(t *testing.T) {
	typeID := int64(2)
	p := models.Property{
		ID:           7,
		Title:        "Flat",
		Price:        decimal.RequireFromString("150000"),
		Location:     "Downtown",
		NumBedrooms:  2,
		NumBathrooms: 1,
		TypeID:       &typeID,
		Type:         &models.PropertyType{ID: 2, Name: "Apartment"},
		CreatedAt:    time.Date(2024, 3, 1, 10, 30, 0, 0, time.FixedZone("CET", 3600)),
	}

	data, err := json.Marshal(Property(&p))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"property_id": 7,
		"title": "Flat",
		"description": null,
		"price": 150000.00,
		"location": "Downtown",
		"num_bedrooms": 2,
		"num_bathrooms": 1,
		"num_garage": 0,
		"image_url": null,
		"user_id": null,
		"type_id": 2,
		"type_name": "Apartment",
		"created_at": "2024-03-01T09:30:00Z"
	}`, string(data))
	assert.Contains(t, string(data), `"price":150000.00`)
}

func TestPriceKeepsTwoPlaces(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"99.9", "99.90"},
		{"1234.567", "1234.57"},
		{"0.1", "0.10"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, json.Number(tt.want), Price(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestPropertyRecordDanglingType(t *testing.T) {
	typeID := int64(99)
	rec := Property(&models.Property{ID: 1, TypeID: &typeID})
	assert.Equal(t, &typeID, rec.TypeID)
	assert.Nil(t, rec.TypeName)
}

func TestEmptyListsAreNotNil(t *testing.T) {
	assert.NotNil(t, Properties(nil))
	assert.NotNil(t, Users(nil))
	assert.NotNil(t, Types(nil))
	assert.NotNil(t, ContactRequests(nil))

	data, err := json.Marshal(Properties(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
