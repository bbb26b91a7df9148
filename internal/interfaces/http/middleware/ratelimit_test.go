package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMemoryRateLimiter_Allow(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := NewMemoryRateLimiter(2, time.Minute)
	defer rl.Stop()
	now := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	ctx := context.Background()

	ok, remaining, err := rl.Allow(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, remaining, _ = rl.Allow(ctx, "a")
	assert.True(t, ok)
	assert.Zero(t, remaining)

	ok, _, _ = rl.Allow(ctx, "a")
	assert.False(t, ok, "third request in the window")

	ok, _, _ = rl.Allow(ctx, "b")
	assert.True(t, ok, "keys are counted separately")

	now = now.Add(time.Minute)
	ok, remaining, _ = rl.Allow(ctx, "a")
	assert.True(t, ok, "new window")
	assert.Equal(t, 1, remaining)
}

func TestMemoryRateLimiter_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := NewMemoryRateLimiter(1, 10*time.Millisecond)
	rl.Stop()
	rl.Stop()
}

func TestRateLimit_Middleware(t *testing.T) {
	rl := NewMemoryRateLimiter(1, time.Minute)
	defer rl.Stop()

	tenantID := uuid.New()
	router := gin.New()
	router.Use(RequestID(), TenantMiddleware(TenantMiddlewareConfig{HeaderEnabled: true}), RateLimit(rl, nil))
	router.GET("/api/v1/invoices", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(tenant string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
		req.Header.Set(TenantHeader, tenant)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := call(tenantID.String())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = call(tenantID.String())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "ERR_RATE_LIMITED", errorCode(t, w))

	assert.Equal(t, http.StatusOK, call(uuid.NewString()).Code, "other tenant")
}

func TestRateLimit_RedisUnavailableFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	rl := NewRedisRateLimiter(client, 1, time.Minute, "")
	_, _, err := rl.Allow(context.Background(), "ip:127.0.0.1")
	require.Error(t, err)

	router := gin.New()
	router.Use(RateLimit(rl, nil))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}
