package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func pong(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

func serve(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	var seen []string
	r.Use(func(c *gin.Context) {
		seen = append(seen, c.Request.URL.Path)
		c.Next()
	})
	r.Register(NewDomainGroup("ping", "/ping").GET("", pong))
	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v1/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, []string{"/api/v1/ping"}, seen)

	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/ping").Code)
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("invoices", "/invoices")
		assert.Equal(t, "invoices", g.Name())
		assert.Equal(t, "/invoices", g.Prefix())
	})

	t.Run("methods", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("items", "/items").
			GET("", pong).
			POST("", pong).
			PUT("/:id", pong).
			PATCH("/:id", pong).
			DELETE("/:id", pong)
		g.RegisterRoutes(engine.Group("/api/v1"))

		for _, tc := range []struct{ method, target string }{
			{http.MethodGet, "/api/v1/items"},
			{http.MethodPost, "/api/v1/items"},
			{http.MethodPut, "/api/v1/items/1"},
			{http.MethodPatch, "/api/v1/items/1"},
			{http.MethodDelete, "/api/v1/items/1"},
		} {
			assert.Equal(t, http.StatusOK, serve(engine, tc.method, tc.target).Code, tc.method+" "+tc.target)
		}
	})

	t.Run("group middleware covers subgroups", func(t *testing.T) {
		engine := gin.New()
		calls := 0
		g := NewDomainGroup("companies", "/companies").Use(func(c *gin.Context) {
			calls++
			c.Next()
		})
		g.GET("", pong)
		g.Group("company", "/:id").GET("/settings", pong)
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/companies").Code)
		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/companies/42/settings").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("subgroup middleware stays in the subgroup", func(t *testing.T) {
		engine := gin.New()
		deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }
		g := NewDomainGroup("companies", "/companies").GET("", pong)
		g.Group("company", "/:id").Use(deny).GET("", pong)
		g.RegisterRoutes(engine.Group("/api/v1"))

		assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/companies").Code)
		assert.Equal(t, http.StatusForbidden, serve(engine, http.MethodGet, "/api/v1/companies/42").Code)
	})

	t.Run("routes", func(t *testing.T) {
		g := NewDomainGroup("companies", "/companies").POST("", pong)
		g.Group("company", "/:id").GET("", pong).PUT("/dunning-settings", pong)

		assert.Equal(t, []Route{
			{Method: http.MethodPost, Path: "/api/v1/companies"},
			{Method: http.MethodGet, Path: "/api/v1/companies/:id"},
			{Method: http.MethodPut, Path: "/api/v1/companies/:id/dunning-settings"},
		}, g.Routes("/api/v1"))
	})
}
