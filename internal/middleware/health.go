package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	Backend     string    `json:"backend"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthChecker serves the health endpoint and caches the answer briefly.
type HealthChecker struct {
	mu            sync.Mutex
	backend       string
	version       string
	pinger        Pinger
	startTime     time.Time
	cacheDuration time.Duration
	last          *HealthStatus
	lastCode      int
}

func NewHealthChecker(backend, version string, pinger Pinger) *HealthChecker {
	return &HealthChecker{
		backend:       backend,
		version:       version,
		pinger:        pinger,
		startTime:     time.Now(),
		cacheDuration: 5 * time.Second,
	}
}

func (h *HealthChecker) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.last != nil && time.Since(h.last.LastChecked) < h.cacheDuration {
			c.JSON(h.lastCode, h.last)
			return
		}

		status := &HealthStatus{
			Status:      "ok",
			Backend:     h.backend,
			LastChecked: time.Now(),
			Uptime:      time.Since(h.startTime).Round(time.Second).String(),
			Version:     h.version,
		}
		code := http.StatusOK
		if h.pinger != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := h.pinger.PingContext(ctx); err != nil {
				status.Status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}

		h.last, h.lastCode = status, code
		c.JSON(code, status)
	}
}
