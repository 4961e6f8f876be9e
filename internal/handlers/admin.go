package handlers

import (
	"context"
	"homefinder/internal/database"
	"homefinder/internal/ratelimit"
	"homefinder/internal/scheduler"
	"homefinder/internal/search"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatsStore provides the table counts shown on the admin surface
type StatsStore interface {
	GetStats(ctx context.Context) (*database.Stats, error)
}

// SearchStatus reports the health of the search mirror
type SearchStatus interface {
	BreakerStatus() search.BreakerStatus
}

// AdminHandler handles admin-related requests
type AdminHandler struct {
	store        StatsStore
	scheduler    *scheduler.Scheduler
	limiter      *ratelimit.RateLimiter
	searchStatus SearchStatus
}

// NewAdminHandler creates a new admin handler. sched is nil when search is disabled.
func NewAdminHandler(store StatsStore, sched *scheduler.Scheduler, limiter *ratelimit.RateLimiter) *AdminHandler {
	return &AdminHandler{
		store:     store,
		scheduler: sched,
		limiter:   limiter,
	}
}

// WithSearchStatus adds the mirror breaker state to the stats output
func (h *AdminHandler) WithSearchStatus(status SearchStatus) *AdminHandler {
	h.searchStatus = status
	return h
}

// Register mounts the health check and the /admin routes on r
func (h *AdminHandler) Register(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)

	admin := r.Group("/admin")
	{
		admin.GET("/stats", h.GetStats)
		admin.POST("/search/reindex", h.TriggerReindex)
		admin.GET("/ratelimit", h.GetRateLimitStats)
	}
}

func (h *AdminHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// GetStats returns system statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.store.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	searchStats := gin.H{"enabled": h.scheduler != nil}
	if h.scheduler != nil {
		searchStats["last_reindex"] = h.scheduler.LastRun()
	}
	if h.searchStatus != nil {
		searchStats["breaker"] = h.searchStatus.BreakerStatus()
	}

	c.JSON(http.StatusOK, gin.H{
		"tables": stats,
		"search": searchStats,
	})
}

// TriggerReindex rebuilds the search index from the store
func (h *AdminHandler) TriggerReindex(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Search is not enabled",
		})
		return
	}

	slog.Info("admin: manual reindex requested")

	if err := h.scheduler.RunNow(c.Request.Context()); err != nil {
		slog.Error("admin: manual reindex failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  "Reindex failed",
			"result": h.scheduler.LastRun(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search index rebuilt",
		"result":  h.scheduler.LastRun(),
	})
}

// GetRateLimitStats returns the write budget of the calling client
func (h *AdminHandler) GetRateLimitStats(c *gin.Context) {
	if h.limiter == nil {
		c.JSON(http.StatusOK, ratelimit.Stats{Enabled: false})
		return
	}
	c.JSON(http.StatusOK, h.limiter.GetStats(c.ClientIP()))
}
