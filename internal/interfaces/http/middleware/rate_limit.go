package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	redisdb "github.com/techempire/storefront/internal/infrastructure/database/redis"
)

// RateLimiter counts requests per client
type RateLimiter interface {
	Allow(ctx context.Context, key string) (redisdb.Decision, error)
}

// RateLimit limits requests per client IP using a fixed window
func RateLimit(limiter RateLimiter, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		decision, err := limiter.Allow(ctx, c.ClientIP())
		if err != nil {
			// Fail open when Redis is unavailable
			logger.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(decision.ResetIn).Unix(), 10))

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(decision.ResetIn.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Слишком много запросов, попробуйте позже",
				"retry_after": int(decision.ResetIn.Seconds()),
			})
			return
		}

		c.Next()
	}
}
