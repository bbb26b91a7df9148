package middleware

import (
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestResourceFromRoute(t *testing.T) {
	tests := map[string]string{
		"/api/v1/invoices/:id/payments": "invoices",
		"/api/v2/reports/open-items":    "reports",
		"/api/v1":                       "root",
		"/health":                       "health",
		"":                              "root",
	}
	for route, want := range tests {
		assert.Equal(t, want, resourceFromRoute(route), route)
	}
}

func TestProfiling_SetsLabels(t *testing.T) {
	router := gin.New()
	router.Use(Profiling())
	router.GET("/api/v1/invoices/:id", func(c *gin.Context) {
		route, ok := pprof.Label(c.Request.Context(), "route")
		assert.True(t, ok)
		assert.Equal(t, "/api/v1/invoices/:id", route)
		resource, _ := pprof.Label(c.Request.Context(), "resource")
		assert.Equal(t, "invoices", resource)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/7", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
