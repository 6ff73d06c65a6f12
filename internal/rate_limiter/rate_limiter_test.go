package rate_limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

func TestRateLimiter_SlidingWindow(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(2, time.Minute, clock.Now)

	assert.True(t, rl.IsAllowed("a"))
	assert.True(t, rl.IsAllowed("a"))
	assert.False(t, rl.IsAllowed("a"))
	assert.Equal(t, 0, rl.GetRemainingRequests("a"))
	assert.True(t, rl.IsAllowed("b"))

	clock.now = clock.now.Add(61 * time.Second)
	assert.Equal(t, 2, rl.GetRemainingRequests("a"))
	assert.True(t, rl.IsAllowed("a"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(5, time.Minute, clock.Now)
	rl.IsAllowed("a")

	clock.now = clock.now.Add(2 * time.Minute)
	rl.cleanup()

	assert.Empty(t, rl.requests)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rl := newRateLimiter(1, time.Minute, time.Now)
	router := gin.New()
	router.GET("/resolve", Middleware(rl), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/resolve", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, send().Code)

	w := send()
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestClientKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{name: "forwarded public", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, expected: "203.0.113.7"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.2"}, expected: "198.51.100.2"},
		{name: "private with agent", headers: map[string]string{"X-Real-IP": "192.168.1.4", "User-Agent": "scanner"}, expected: "192.168.1.4:scanner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				c.Request.Header.Set(k, v)
			}

			assert.Equal(t, tt.expected, ClientKey(c))
		})
	}
}
