package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"video-app/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimiter(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	l := NewMemoryRateLimiter(5, time.Minute).(*memoryRateLimiter)
	l.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		allowed, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d", i+1)
	}

	allowed, _ := l.Allow(ctx, "1.2.3.4")
	assert.False(t, allowed)

	// other keys are independent
	allowed, _ = l.Allow(ctx, "5.6.7.8")
	assert.True(t, allowed)

	// one token refills every window/requests
	now = now.Add(12 * time.Second)
	allowed, _ = l.Allow(ctx, "1.2.3.4")
	assert.True(t, allowed)
	allowed, _ = l.Allow(ctx, "1.2.3.4")
	assert.False(t, allowed)
}

func TestMemoryRateLimiter_ForgetsIdleKeys(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewMemoryRateLimiter(1, time.Minute).(*memoryRateLimiter)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "a")
	now = now.Add(2 * time.Minute)
	_, _ = l.Allow(context.Background(), "b")

	assert.NotContains(t, l.visitors, "a")
	assert.Contains(t, l.visitors, "b")
}

func TestRedisRateLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewFromClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	l := NewRedisRateLimiter(client, "login", 5, time.Minute)

	for i := 0; i < 5; i++ {
		allowed, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, allowed)

	mr.FastForward(time.Minute)

	allowed, err = l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, allowed)
}

type stubLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (s *stubLimiter) Allow(context.Context, string) (bool, error) {
	s.calls++
	return s.allowed, s.err
}

func TestChainRateLimiters(t *testing.T) {
	ctx := context.Background()

	first, second := &stubLimiter{allowed: true}, &stubLimiter{allowed: false}
	allowed, err := ChainRateLimiters(first, second).Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, allowed)

	first, second = &stubLimiter{allowed: false}, &stubLimiter{allowed: true}
	allowed, _ = ChainRateLimiters(first, second).Allow(ctx, "k")
	assert.False(t, allowed)
	assert.Zero(t, second.calls)

	allowed, _ = ChainRateLimiters(&stubLimiter{allowed: true}, &stubLimiter{allowed: true}).Allow(ctx, "k")
	assert.True(t, allowed)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		limiter    *stubLimiter
		wantStatus int
	}{
		{name: "allowed", limiter: &stubLimiter{allowed: true}, wantStatus: http.StatusOK},
		{name: "limited", limiter: &stubLimiter{allowed: false}, wantStatus: http.StatusTooManyRequests},
		{name: "limiter down", limiter: &stubLimiter{err: errors.New("redis down")}, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/auth/login", RateLimit(tt.limiter), func(c *gin.Context) { c.Status(http.StatusOK) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusTooManyRequests {
				assert.JSONEq(t, `{"error":"Too many requests"}`, rec.Body.String())
			}
		})
	}
}
