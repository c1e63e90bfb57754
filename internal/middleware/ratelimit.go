package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hirepath/payroll-api/internal/logger"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter holds the configuration for per-client rate limiting. The
// calculator endpoint is recomputed on every keystroke by the front-end, so
// the default allowance is deliberately generous.
type RateLimiter struct {
	// limiters stores rate limiters per client
	limiters sync.Map
	// rate is the number of requests per second allowed
	rate int
	// burst is the maximum burst size
	burst int
	// cleanupInterval is how often to clean up old limiters
	cleanupInterval time.Duration
}

// limiterEntry holds a rate limiter and its last access time
type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// DefaultRateLimiter is applied globally to the API.
var DefaultRateLimiter = NewRateLimiter(20, 40)

// NewRateLimiter creates a new rate limiter with the specified rate and burst
func NewRateLimiter(requestsPerSecond, burst int) *RateLimiter {
	rl := &RateLimiter{
		rate:            requestsPerSecond,
		burst:           burst,
		cleanupInterval: 5 * time.Minute,
	}

	go rl.cleanup()

	return rl
}

// cleanup removes limiters that haven't been accessed recently
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		rl.limiters.Range(func(key, value interface{}) bool {
			if entry, ok := value.(*limiterEntry); ok {
				if now.Sub(entry.lastAccess) > 10*time.Minute {
					rl.limiters.Delete(key)
				}
			}
			return true
		})
	}
}

// getLimiter returns the rate limiter for a specific client key
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	if val, ok := rl.limiters.Load(key); ok {
		entry := val.(*limiterEntry)
		entry.lastAccess = time.Now()
		return entry.limiter
	}

	entry := &limiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(rl.rate), rl.burst),
		lastAccess: time.Now(),
	}

	// LoadOrStore handles the race where another goroutine created it first
	actual, _ := rl.limiters.LoadOrStore(key, entry)
	return actual.(*limiterEntry).limiter
}

// getClientIdentifier returns a unique identifier for the client
func getClientIdentifier(c *gin.Context) string {
	// In test environments the client IP arrives via X-Forwarded-For
	if forwardedFor := c.GetHeader("X-Forwarded-For"); forwardedFor != "" {
		return fmt.Sprintf("ip:%s", forwardedFor)
	}

	clientIP := c.ClientIP()
	if clientIP == "" {
		clientIP = "unknown"
	}
	return fmt.Sprintf("ip:%s", clientIP)
}

// Middleware returns a Gin middleware handler for rate limiting
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Health checks are never rate limited
		if c.Request.URL.Path == "/health" || c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		clientID := getClientIdentifier(c)
		limiter := rl.getLimiter(clientID)

		if !limiter.Allow() {
			if logger.Log != nil {
				logger.Log.Warn("Rate limit exceeded",
					zap.String("client_id", clientID),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
			}

			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.rate))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")

			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests. Please try again later.",
				"retry_after": 1,
			})
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.rate))

		c.Next()
	}
}
