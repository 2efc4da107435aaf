package middleware

import (
	"time"

	"video-app/pkg/config"
	"video-app/pkg/logger"
	"video-app/pkg/redis"

	"github.com/gin-gonic/gin"
)

// MiddlewareProvider exposes the rate limiting middlewares the router mounts.
type MiddlewareProvider interface {
	GlobalRateLimit() gin.HandlerFunc
	LoginRateLimit() gin.HandlerFunc
}

type middleware struct {
	global gin.HandlerFunc
	login  gin.HandlerFunc
}

// NewMiddleware builds the rate limiters. Login attempts are counted in Redis
// when a client is given so that every API instance shares the quota.
func NewMiddleware(cfg *config.Config, redisClient *redis.Client) MiddlewareProvider {
	global := ChainRateLimiters(
		NewMemoryRateLimiter(cfg.RateLimit.GlobalPerHour, time.Hour),
		NewMemoryRateLimiter(cfg.RateLimit.GlobalPerDay, 24*time.Hour),
	)

	var login RateLimiter
	if redisClient != nil {
		login = NewRedisRateLimiter(redisClient, "login", cfg.RateLimit.LoginPerMinute, time.Minute)
	} else {
		logger.Debug("redis not configured, login rate limit is per instance")
		login = NewMemoryRateLimiter(cfg.RateLimit.LoginPerMinute, time.Minute)
	}

	return &middleware{
		global: RateLimit(global),
		login:  RateLimit(login),
	}
}

func (m *middleware) GlobalRateLimit() gin.HandlerFunc {
	return m.global
}

func (m *middleware) LoginRateLimit() gin.HandlerFunc {
	return m.login
}
