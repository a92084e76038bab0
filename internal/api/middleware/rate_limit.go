package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"voting-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// RateLimiter counts a hit on key and reports whether it is within limit.
type RateLimiter interface {
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type RateLimitMiddleware struct {
	limiter RateLimiter
}

// NewRateLimitMiddleware returns a middleware set; a nil limiter disables limiting.
func NewRateLimitMiddleware(limiter RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// RateLimit limits authenticated callers per user and route.
func (rm *RateLimitMiddleware) RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			response.Abort(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "")
			return
		}

		key := fmt.Sprintf("rate_limit:%v:%s", userID, c.FullPath())
		rm.check(c, key, requests, window)
	}
}

// RateLimitIP creates a rate limiting middleware for public routes based on IP address
func (rm *RateLimitMiddleware) RateLimitIP(requests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit_ip:%s:%s", c.ClientIP(), c.FullPath())
		rm.check(c, key, requests, window)
	}
}

func (rm *RateLimitMiddleware) check(c *gin.Context, key string, requests int, window time.Duration) {
	if rm.limiter == nil || requests <= 0 {
		c.Next()
		return
	}

	allowed, err := rm.limiter.CheckRateLimit(c.Request.Context(), key, requests, window)
	if err != nil {
		// Fail open while redis is unavailable
		slog.Warn("Rate limit check failed, allowing request", "key", key, "error", err)
		c.Next()
		return
	}

	if !allowed {
		response.Abort(c, http.StatusTooManyRequests, response.ErrCodeRateLimited,
			fmt.Sprintf("Too many requests. Limit: %d per %v", requests, window))
		return
	}

	c.Next()
}
