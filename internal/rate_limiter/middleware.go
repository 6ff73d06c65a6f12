package rate_limiter

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var privatePrefixes = []string{
	"10.",
	"172.16.", "172.17.", "172.18.", "172.19.",
	"172.20.", "172.21.", "172.22.", "172.23.",
	"172.24.", "172.25.", "172.26.", "172.27.",
	"172.28.", "172.29.", "172.30.", "172.31.",
	"192.168.",
	"127.",
	"169.254.",
	"::1",
	"fc00::",
	"fe80::",
}

// Middleware rejects clients that exceed the limiter with 429.
func Middleware(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ClientKey(c)
		if rl.IsAllowed(key) {
			c.Next()
			return
		}

		resetAt := time.Now().Add(rl.Window()).Format(time.RFC3339)
		remaining := rl.GetRemainingRequests(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt)
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":     "Too many requests, try again later",
			"remaining": remaining,
			"reset_at":  resetAt,
		})
	}
}

// ClientKey identifies the caller by forwarded address. Clients behind a
// private address are further split by user agent.
func ClientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if i := strings.Index(clientIP, ","); i >= 0 {
		clientIP = clientIP[:i]
	}
	clientIP = strings.TrimSpace(clientIP)

	if isPrivateIP(clientIP) {
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}

	return clientIP
}

func isPrivateIP(ip string) bool {
	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}
