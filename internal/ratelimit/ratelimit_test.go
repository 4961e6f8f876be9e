package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(perMinute, perHour, perDay int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(perMinute, perHour, perDay, true)
	rl.now = clock.now
	return rl, clock
}

func TestAllowRequestMinuteWindow(t *testing.T) {
	rl, clock := newTestLimiter(2, 0, 0)

	assert.True(t, rl.AllowRequest("a"))
	assert.True(t, rl.AllowRequest("a"))
	assert.False(t, rl.AllowRequest("a"))
	assert.True(t, rl.AllowRequest("b"), "budgets are per client")

	clock.advance(61 * time.Second)
	assert.True(t, rl.AllowRequest("a"))
}

func TestAllowRequestHourWindow(t *testing.T) {
	rl, clock := newTestLimiter(10, 3, 0)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.AllowRequest("a"))
		clock.advance(2 * time.Minute)
	}
	assert.False(t, rl.AllowRequest("a"))

	clock.advance(time.Hour)
	assert.True(t, rl.AllowRequest("a"))
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	rl := NewRateLimiter(1, 1, 1, false)
	for i := 0; i < 5; i++ {
		assert.True(t, rl.AllowRequest("a"))
	}
	assert.False(t, rl.GetStats("a").Enabled)
}

func TestGetStats(t *testing.T) {
	rl, _ := newTestLimiter(5, 50, 500)
	rl.AllowRequest("a")
	rl.AllowRequest("a")

	stats := rl.GetStats("a")
	assert.True(t, stats.Enabled)
	assert.Equal(t, 2, stats.RequestsLastMinute)
	assert.Equal(t, 3, stats.RemainingThisMinute)
	assert.Equal(t, 48, stats.RemainingThisHour)

	rl.Reset()
	assert.Zero(t, rl.GetStats("a").RequestsLastDay)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl, _ := newTestLimiter(1, 0, 0)

	router := gin.New()
	router.POST("/things", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/things", nil))
	assert.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/things", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "Rate limit exceeded")
}
