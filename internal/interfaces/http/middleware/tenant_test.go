package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func tenantRouter(cfg TenantMiddlewareConfig, jwtTenant string) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if jwtTenant != "" {
			c.Set(JWTTenantIDKey, jwtTenant)
		}
		c.Next()
	})
	router.Use(TenantMiddleware(cfg))
	handler := func(c *gin.Context) {
		id, ok := GetTenantID(c)
		if !ok {
			c.String(http.StatusOK, "none")
			return
		}
		c.String(http.StatusOK, id.String())
	}
	router.GET("/api/v1/customers", handler)
	router.GET("/health", handler)
	return router
}

func TestTenantMiddleware(t *testing.T) {
	tokenTenant := uuid.New()
	other := uuid.New()
	headerMode := TenantMiddlewareConfig{HeaderEnabled: true}

	tests := []struct {
		name     string
		cfg      TenantMiddlewareConfig
		jwt      string
		header   string
		path     string
		wantCode int
		wantBody string
	}{
		{"token tenant", DefaultTenantConfig(), tokenTenant.String(), "", "/api/v1/customers", http.StatusOK, tokenTenant.String()},
		{"matching header", DefaultTenantConfig(), tokenTenant.String(), tokenTenant.String(), "/api/v1/customers", http.StatusOK, tokenTenant.String()},
		{"conflicting header", DefaultTenantConfig(), tokenTenant.String(), other.String(), "/api/v1/customers", http.StatusForbidden, ""},
		{"header ignored without header mode", DefaultTenantConfig(), "", other.String(), "/api/v1/customers", http.StatusBadRequest, ""},
		{"header mode", headerMode, "", other.String(), "/api/v1/customers", http.StatusOK, other.String()},
		{"token wins in header mode", headerMode, tokenTenant.String(), "", "/api/v1/customers", http.StatusOK, tokenTenant.String()},
		{"missing", headerMode, "", "", "/api/v1/customers", http.StatusBadRequest, ""},
		{"malformed", headerMode, "", "acme", "/api/v1/customers", http.StatusBadRequest, ""},
		{"nil uuid", headerMode, "", uuid.Nil.String(), "/api/v1/customers", http.StatusBadRequest, ""},
		{"skipped path", DefaultTenantConfig(), "", "", "/health", http.StatusOK, "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(TenantHeader, tt.header)
			}
			w := httptest.NewRecorder()
			tenantRouter(tt.cfg, tt.jwt).ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
		})
	}
}
