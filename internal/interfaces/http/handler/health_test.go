package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		h := NewHealthHandler("1.2.3")
		h.AddCheck("database", func(context.Context) error { return nil })

		c, w := newTestContext(http.MethodGet, "/health")
		h.Health(c)

		resp := decode[HealthResponse](t, w, http.StatusOK)
		assert.Equal(t, "healthy", resp.Status)
		assert.Equal(t, "1.2.3", resp.Version)
		assert.Equal(t, map[string]string{"database": "healthy"}, resp.Checks)
	})

	t.Run("failing dependency", func(t *testing.T) {
		h := NewHealthHandler("1.2.3")
		h.AddCheck("database", func(context.Context) error { return nil })
		h.AddCheck("redis", func(context.Context) error { return errors.New("connection refused") })

		c, w := newTestContext(http.MethodGet, "/health")
		h.Health(c)

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp APIResponse[HealthResponse]
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "unhealthy", resp.Data.Status)
		assert.Equal(t, "healthy", resp.Data.Checks["database"])
		assert.Contains(t, resp.Data.Checks["redis"], "connection refused")
	})

	t.Run("checks honour the timeout", func(t *testing.T) {
		h := NewHealthHandler("1.2.3")
		h.timeout = 0
		h.AddCheck("slow", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})

		c, w := newTestContext(http.MethodGet, "/health")
		h.Health(c)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
