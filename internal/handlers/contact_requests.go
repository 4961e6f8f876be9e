package handlers

import (
	"homefinder/internal/models"
	"homefinder/internal/projection"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateContactRequest sends an inquiry about a property
func (h *Handler) CreateContactRequest(c *gin.Context) {
	var in models.ContactRequestInput
	if !bindJSON(c, &in) {
		return
	}

	if _, err := h.store.CreateContactRequest(c.Request.Context(), in); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Contact request sent successfully"})
}

// ListContactRequests returns the inquiries of a property
func (h *Handler) ListContactRequests(c *gin.Context) {
	id, ok := pathID(c, "id", "Property")
	if !ok {
		return
	}

	requests, err := h.store.ListContactRequests(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection.ContactRequests(requests))
}
