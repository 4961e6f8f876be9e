package handlers

import (
	"homefinder/internal/filters"
	"homefinder/internal/models"
	"homefinder/internal/projection"
	"homefinder/internal/search"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListPropertyTypes returns the type vocabulary
func (h *Handler) ListPropertyTypes(c *gin.Context) {
	types, err := h.store.ListPropertyTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection.Types(types))
}

// CreateProperty publishes a listing
func (h *Handler) CreateProperty(c *gin.Context) {
	var in models.PropertyInput
	if !bindJSON(c, &in) {
		return
	}

	property, err := h.store.CreateProperty(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	h.mirror(property)

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Property created",
		"property_id": property.ID,
	})
}

// ListProperties returns listings matching the query criteria.
// Criteria that fail to parse are ignored.
func (h *Handler) ListProperties(c *gin.Context) {
	f := filters.FromQuery(c.Request.URL.Query())

	properties, err := h.store.ListProperties(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection.Properties(properties))
}

// GetProperty returns a single listing
func (h *Handler) GetProperty(c *gin.Context) {
	id, ok := pathID(c, "id", "Property")
	if !ok {
		return
	}

	property, err := h.store.GetProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projection.Property(property))
}

// UpdateProperty applies a partial field map to a listing
func (h *Handler) UpdateProperty(c *gin.Context) {
	id, ok := pathID(c, "id", "Property")
	if !ok {
		return
	}
	patch, ok := bindPatch(c)
	if !ok {
		return
	}

	property, err := h.store.UpdateProperty(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	h.mirror(property)

	c.JSON(http.StatusOK, gin.H{"message": "Property updated"})
}

// DeleteProperty removes a listing and its dependents
func (h *Handler) DeleteProperty(c *gin.Context) {
	id, ok := pathID(c, "id", "Property")
	if !ok {
		return
	}

	if err := h.store.DeleteProperty(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	if h.indexer != nil {
		if err := h.indexer.DeleteProperty(id); err != nil {
			slog.Warn("search: failed to remove property from index", "property_id", id, "error", err)
			h.mirrorFailed("delete")
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

// SearchProperties runs a keyword query against the search index
func (h *Handler) SearchProperties(c *gin.Context) {
	if h.indexer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Search is not enabled"})
		return
	}

	params := search.FilterParams{
		Query:   c.Query("q"),
		Filters: filters.FromQuery(c.Request.URL.Query()),
	}
	if limit, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && limit > 0 {
		params.Limit = limit
	}
	if offset, err := strconv.ParseInt(c.Query("offset"), 10, 64); err == nil && offset > 0 {
		params.Offset = offset
	}

	records, err := h.indexer.FilterSearch(params)
	if err != nil {
		slog.Error("search: query failed", "query", params.Query, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, records)
}

// mirror pushes the stored listing to the search index. Failures never fail the write.
func (h *Handler) mirror(p *models.Property) {
	if h.indexer == nil {
		return
	}
	if err := h.indexer.IndexProperty(projection.Property(p)); err != nil {
		slog.Warn("search: failed to index property", "property_id", p.ID, "error", err)
		h.mirrorFailed("index")
	}
}

func (h *Handler) mirrorFailed(operation string) {
	if h.metrics != nil {
		h.metrics.MirrorFailed(operation)
	}
}
