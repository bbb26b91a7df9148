package middleware

import (
	"net/http"
	"strings"

	"github.com/faktura/backend/internal/infrastructure/logger"
	"github.com/faktura/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantIDKey stores the resolved tenant UUID in gin.Context
const TenantIDKey = "tenant_id"

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	// HeaderEnabled accepts X-Tenant-ID when no token claims are present.
	// Only deployments without authentication should enable it.
	HeaderEnabled bool
	SkipPaths     []string
}

// DefaultTenantConfig returns the configuration for authenticated deployments
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		SkipPaths: []string{"/health", "/api/v1/health"},
	}
}

// TenantMiddleware resolves the tenant of the request. The token claim wins;
// an X-Tenant-ID header that names another tenant is refused.
func TenantMiddleware(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range cfg.SkipPaths {
			if path == p {
				c.Next()
				return
			}
		}
		if isSwaggerPath(path) {
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader(TenantHeader))
		raw := GetJWTTenantID(c)
		switch {
		case raw != "":
			if header != "" && !strings.EqualFold(header, raw) {
				abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, "Tenant header does not match the token")
				return
			}
		case cfg.HeaderEnabled:
			raw = header
		}
		if raw == "" {
			abortWithError(c, http.StatusBadRequest, dto.ErrCodeTenantMissing, "Tenant identification required")
			return
		}

		tenantID, err := uuid.Parse(raw)
		if err != nil || tenantID == uuid.Nil {
			abortWithError(c, http.StatusBadRequest, dto.ErrCodeBadRequest, "Invalid tenant ID format")
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), tenantID.String()))
		c.Next()
	}
}

// GetTenantID returns the tenant resolved by TenantMiddleware
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(TenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}
