package handlers

import (
	"homefinder/internal/projection"
	"net/http"

	"github.com/gin-gonic/gin"
)

type addFavoriteRequest struct {
	UserID     int64 `json:"user_id"`
	PropertyID int64 `json:"property_id"`
}

// AddFavorite bookmarks a property. Favoriting twice is reported, not an error.
func (h *Handler) AddFavorite(c *gin.Context) {
	var req addFavoriteRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.store.AddFavorite(c.Request.Context(), req.UserID, req.PropertyID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !result.Created {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Already in favorites"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"favorite_id": result.Favorite.ID,
		"property_id": result.Favorite.PropertyID,
	})
}

// ListFavorites returns the properties a user has favorited
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := pathID(c, "user_id", "User")
	if !ok {
		return
	}

	properties, err := h.store.ListFavoriteProperties(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection.Properties(properties))
}
