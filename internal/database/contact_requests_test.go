package database

import (
	"context"
	"homefinder/internal/apperrors"
	"homefinder/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContactRequest(t *testing.T) {
	gdb := setupTestDB(t, Options{})
	ctx := context.Background()
	p := mustCreateProperty(t, gdb, propertyInput("Cabin", 2))

	req, err := gdb.CreateContactRequest(ctx, models.ContactRequestInput{
		Name:       "Bob",
		Email:      "bob@example.com",
		Phone:      strPtr("555-0100"),
		Message:    "Is it still available?",
		PropertyID: idPtr(p.ID),
	})
	require.NoError(t, err)
	assert.NotZero(t, req.ID)
	assert.Equal(t, p.ID, req.PropertyID)
	assert.False(t, req.RequestedAt.IsZero())

	list, err := gdb.ListContactRequests(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "555-0100", *list[0].Phone)
	assert.Equal(t, "Is it still available?", list[0].Message)
}

func TestCreateContactRequestValidation(t *testing.T) {
	valid := models.ContactRequestInput{Name: "Bob", Email: "bob@example.com", Message: "Hi", PropertyID: idPtr(1)}

	tests := []struct {
		name   string
		mutate func(in *models.ContactRequestInput)
	}{
		{"missing name", func(in *models.ContactRequestInput) { in.Name = "" }},
		{"missing email", func(in *models.ContactRequestInput) { in.Email = "" }},
		{"missing message", func(in *models.ContactRequestInput) { in.Message = "" }},
		{"missing property", func(in *models.ContactRequestInput) { in.PropertyID = nil }},
		{"zero property", func(in *models.ContactRequestInput) { in.PropertyID = idPtr(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb := setupTestDB(t, Options{})
			in := valid
			tt.mutate(&in)

			_, err := gdb.CreateContactRequest(context.Background(), in)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Equal(t, "Missing required fields", err.Error())
			assert.Zero(t, countRows(t, gdb, &models.ContactRequest{}, ""))
		})
	}
}

func TestListContactRequestsUnknownProperty(t *testing.T) {
	gdb := setupTestDB(t, Options{})

	_, err := gdb.ListContactRequests(context.Background(), 3)
	assert.True(t, apperrors.IsNotFound(err))
}
