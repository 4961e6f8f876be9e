package handlers

import (
	"context"
	"homefinder/internal/config"
	"homefinder/internal/scheduler"
	"homefinder/internal/search"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, serverOptions{})

	w := srv.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, w)["status"])
}

type statsResponse struct {
	Tables struct {
		Users      int64 `json:"users"`
		Properties int64 `json:"properties"`
		ByType     []struct {
			TypeName *string `json:"type_name"`
			Count    int64   `json:"count"`
		} `json:"by_type"`
	} `json:"tables"`
	Search struct {
		Enabled bool                  `json:"enabled"`
		Breaker *search.BreakerStatus `json:"breaker"`
	} `json:"search"`
}

func TestAdminStats(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	srv.createUser(t, "ana@example.com")
	srv.createProperty(t, validProperty("Cottage", 3))

	w := srv.do(t, http.MethodGet, "/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[statsResponse](t, w)

	assert.Equal(t, int64(1), body.Tables.Users)
	assert.Equal(t, int64(1), body.Tables.Properties)
	require.Len(t, body.Tables.ByType, 1)
	assert.Equal(t, "House", *body.Tables.ByType[0].TypeName)
	assert.False(t, body.Search.Enabled)
	assert.Nil(t, body.Search.Breaker)
}

type fixedStatus search.BreakerStatus

func (s fixedStatus) BreakerStatus() search.BreakerStatus { return search.BreakerStatus(s) }

func TestAdminStatsSearchBreaker(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	router := gin.New()
	NewAdminHandler(srv.store, nil, nil).
		WithSearchStatus(fixedStatus{Open: true, ConsecutiveFailures: 5, TotalFailures: 7}).
		Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[statsResponse](t, w)
	require.NotNil(t, body.Search.Breaker)
	assert.True(t, body.Search.Breaker.Open)
	assert.Equal(t, 7, body.Search.Breaker.TotalFailures)
}

func TestTriggerReindex(t *testing.T) {
	srv := newTestServer(t, serverOptions{})
	w := srv.do(t, http.MethodPost, "/admin/search/reindex", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	calls := 0
	sched := scheduler.NewScheduler(config.SchedulerConfig{}, func(ctx context.Context) (int, error) {
		calls++
		return 3, nil
	})
	srv = newTestServer(t, serverOptions{scheduler: sched})

	w = srv.do(t, http.MethodPost, "/admin/search/reindex", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, calls)

	body := decode[map[string]any](t, w)
	result := body["result"].(map[string]any)
	assert.Equal(t, float64(3), result["indexed"])
}
