package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"homefinder/internal/apperrors"
	"homefinder/internal/database"
	"homefinder/internal/filters"
	"homefinder/internal/metrics"
	"homefinder/internal/models"
	"homefinder/internal/projection"
	"homefinder/internal/ratelimit"
	"homefinder/internal/search"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Store is the listing store the handlers serve from
type Store interface {
	CreateUser(ctx context.Context, name, email string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListPropertyTypes(ctx context.Context) ([]models.PropertyType, error)
	CreateProperty(ctx context.Context, in models.PropertyInput) (*models.Property, error)
	GetProperty(ctx context.Context, id int64) (*models.Property, error)
	ListProperties(ctx context.Context, f filters.PropertyFilters) ([]models.Property, error)
	UpdateProperty(ctx context.Context, id int64, patch models.PropertyPatch) (*models.Property, error)
	DeleteProperty(ctx context.Context, id int64) error
	AddFavorite(ctx context.Context, userID, propertyID int64) (*database.FavoriteResult, error)
	ListFavoriteProperties(ctx context.Context, userID int64) ([]models.Property, error)
	CreateContactRequest(ctx context.Context, in models.ContactRequestInput) (*models.ContactRequest, error)
	ListContactRequests(ctx context.Context, propertyID int64) ([]models.ContactRequest, error)
	GetStats(ctx context.Context) (*database.Stats, error)
}

// Indexer mirrors listings into the search index
type Indexer interface {
	IndexProperty(record projection.PropertyRecord) error
	DeleteProperty(id int64) error
	FilterSearch(params search.FilterParams) ([]projection.PropertyRecord, error)
}

// Handler serves the listing API
type Handler struct {
	store   Store
	indexer Indexer
	limiter *ratelimit.RateLimiter
	metrics *metrics.Metrics
}

// Options wires the optional collaborators. A nil Indexer disables search;
// a nil Limiter disables write rate limiting.
type Options struct {
	Indexer Indexer
	Limiter *ratelimit.RateLimiter
	Metrics *metrics.Metrics
}

// NewHandler creates a new listing handler
func NewHandler(store Store, opts Options) *Handler {
	return &Handler{
		store:   store,
		indexer: opts.Indexer,
		limiter: opts.Limiter,
		metrics: opts.Metrics,
	}
}

// Register mounts the listing routes on r
func (h *Handler) Register(r gin.IRouter) {
	write := h.writeLimit()

	r.POST("/users", write, h.CreateUser)
	r.GET("/users", h.ListUsers)
	r.GET("/users/:id", h.GetUser)

	r.GET("/properties/types", h.ListPropertyTypes)
	r.GET("/properties/search", h.SearchProperties)
	r.POST("/properties", write, h.CreateProperty)
	r.GET("/properties", h.ListProperties)
	r.GET("/properties/:id", h.GetProperty)
	r.PUT("/properties/:id", write, h.UpdateProperty)
	r.DELETE("/properties/:id", write, h.DeleteProperty)
	r.GET("/properties/:id/contact-requests", h.ListContactRequests)

	r.POST("/favorites", write, h.AddFavorite)
	r.GET("/favorites/:user_id", h.ListFavorites)

	r.POST("/contact-requests", write, h.CreateContactRequest)
}

func (h *Handler) writeLimit() gin.HandlerFunc {
	if h.limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return h.limiter.Middleware()
}

// respondError writes err with the status of its kind. Internal details are logged, not returned.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("unexpected error", err)
	}

	if appErr.Kind == apperrors.KindInternal {
		slog.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", requestID(c),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(appErr.HTTPStatus(), gin.H{"error": appErr.Message})
}

// pathID parses an integer path parameter. Anything else is reported as a missing resource.
func pathID(c *gin.Context, param, resource string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
		return 0, false
	}
	return id, true
}

// bindJSON decodes the request body into dst, answering 400 when it is not valid JSON
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// bindPatch decodes a JSON object keeping numbers as json.Number
func bindPatch(c *gin.Context) (models.PropertyPatch, bool) {
	var patch models.PropertyPatch
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&patch); err != nil || patch == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}
	return patch, true
}
