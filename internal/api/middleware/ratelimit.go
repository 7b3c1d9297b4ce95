package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter enforces a per-IP requests-per-minute cap backed by Redis,
// one counter key per IP per minute window.
type RateLimiter struct {
	client *redis.Client
	limit  int
}

func NewRateLimiter(client *redis.Client, perMinute int) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  perMinute,
	}
}

// Limit fails open: if Redis is unreachable the request proceeds.
func (l *RateLimiter) Limit() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if l.limit <= 0 {
			ctx.Next()
			return
		}

		key := fmt.Sprintf("siaksi:ratelimit:%s:%d", ctx.ClientIP(), time.Now().Unix()/60)

		count, err := l.client.Incr(ctx.Request.Context(), key).Result()
		if err != nil {
			zap.L().Warn("rate limiter unavailable", zap.Error(err))
			ctx.Next()
			return
		}
		if count == 1 {
			l.client.Expire(ctx.Request.Context(), key, time.Minute)
		}

		if count > int64(l.limit) {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		ctx.Next()
	}
}
