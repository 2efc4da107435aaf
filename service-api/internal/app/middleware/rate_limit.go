package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"video-app/pkg/logger"
	"video-app/pkg/redis"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const msgTooManyRequests = "Too many requests"

// RateLimiter controls how frequently a caller may perform an action.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// memoryRateLimiter tracks request rates per key (typically an IP address) with expiration.
type memoryRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryRateLimiter allows up to requests events per window for each key.
// Idle keys are forgotten once a full window has passed.
func NewMemoryRateLimiter(requests int, window time.Duration) RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Second
	}

	return &memoryRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Every(window / time.Duration(requests)),
		burst:    requests,
		ttl:      window,
		now:      time.Now,
	}
}

func (l *memoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	if key == "" {
		key = "unknown"
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	v := l.getVisitorLocked(key, now)
	l.gcLocked(now)

	return v.limiter.AllowN(now, 1), nil
}

func (l *memoryRateLimiter) getVisitorLocked(key string, now time.Time) *visitor {
	if v, ok := l.visitors[key]; ok {
		v.lastSeen = now
		return v
	}

	v := &visitor{limiter: rate.NewLimiter(l.limit, l.burst), lastSeen: now}
	l.visitors[key] = v
	return v
}

func (l *memoryRateLimiter) gcLocked(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
}

// redisRateLimiter is a fixed window counter shared by every API instance.
type redisRateLimiter struct {
	client   *redis.Client
	prefix   string
	requests int64
	window   time.Duration
}

// NewRedisRateLimiter allows up to requests events per window for each key,
// counted in Redis under prefix.
func NewRedisRateLimiter(client *redis.Client, prefix string, requests int, window time.Duration) RateLimiter {
	return &redisRateLimiter{
		client:   client,
		prefix:   prefix,
		requests: int64(requests),
		window:   window,
	}
}

func (l *redisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.client.IncrWindow(ctx, fmt.Sprintf("ratelimit:%s:%s", l.prefix, key), l.window)
	if err != nil {
		return false, err
	}
	return count <= l.requests, nil
}

// chainedRateLimiter admits a request only when every limiter admits it.
type chainedRateLimiter []RateLimiter

// ChainRateLimiters combines limiters, e.g. an hourly and a daily quota.
func ChainRateLimiters(limiters ...RateLimiter) RateLimiter {
	return chainedRateLimiter(limiters)
}

func (c chainedRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	for _, l := range c {
		allowed, err := l.Allow(ctx, key)
		if err != nil || !allowed {
			return allowed, err
		}
	}
	return true, nil
}

// RateLimit rejects requests over the limit with 429, keyed by client IP.
// Limiter failures let the request through.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Error(err, "rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if !allowed {
			logger.Warnf("rate limit exceeded for %s on %s", c.ClientIP(), c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": msgTooManyRequests})
			return
		}

		c.Next()
	}
}
