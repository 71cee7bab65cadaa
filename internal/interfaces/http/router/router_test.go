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

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewDomainGroup("system", "/system")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/system/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterUse(t *testing.T) {
	engine := gin.New()
	engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	r := NewRouter(engine)
	r.Use(func(c *gin.Context) {
		c.Header("X-API-Middleware", "applied")
		c.Next()
	})

	group := NewDomainGroup("calibration", "/drawings")
	group.GET("/:id/calibrations/active", func(c *gin.Context) {
		c.String(http.StatusOK, "active")
	})

	r.Register(group).Setup()

	t.Run("applies middleware to registered routes", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/drawings/d1/calibrations/active", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "applied", w.Header().Get("X-API-Middleware"))
	})

	t.Run("leaves engine-level routes untouched", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-API-Middleware"))
	})
}

func TestDomainGroupMethods(t *testing.T) {
	tests := []struct {
		method     string
		wantStatus int
		register   func(g *DomainGroup)
	}{
		{"GET", http.StatusOK, func(g *DomainGroup) {
			g.GET("/revisions/:id", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
		}},
		{"POST", http.StatusCreated, func(g *DomainGroup) {
			g.POST("/revisions/:id", func(c *gin.Context) { c.String(http.StatusCreated, "created") })
		}},
		{"PUT", http.StatusOK, func(g *DomainGroup) {
			g.PUT("/revisions/:id", func(c *gin.Context) { c.String(http.StatusOK, "updated") })
		}},
		{"PATCH", http.StatusOK, func(g *DomainGroup) {
			g.PATCH("/revisions/:id", func(c *gin.Context) { c.String(http.StatusOK, "patched") })
		}},
		{"DELETE", http.StatusNoContent, func(g *DomainGroup) {
			g.DELETE("/revisions/:id", func(c *gin.Context) { c.String(http.StatusNoContent, "") })
		}},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			engine := gin.New()
			g := NewDomainGroup("qdocs", "/qdocs")
			tt.register(g)

			api := engine.Group("/api/v1")
			g.RegisterRoutes(api)

			req := httptest.NewRequest(tt.method, "/api/v1/qdocs/revisions/123", nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestDomainGroup(t *testing.T) {
	t.Run("exposes name and prefix", func(t *testing.T) {
		g := NewDomainGroup("signup", "/signup")
		assert.Equal(t, "signup", g.Name())
		assert.Equal(t, "/signup", g.Prefix())
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("signup", "/signup")

		g.Use(func(c *gin.Context) {
			c.Header("X-Group-Middleware", "applied")
			c.Next()
		})
		g.POST("/validate", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("POST", "/api/v1/signup/validate", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "applied", w.Header().Get("X-Group-Middleware"))
	})

	t.Run("registers subgroups recursively", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("calibration", "/calibrations")

		presets := g.Group("presets", "/presets")
		presets.GET("", func(c *gin.Context) {
			c.String(http.StatusOK, "presets list")
		})

		api := engine.Group("/api/v1")
		g.RegisterRoutes(api)

		req := httptest.NewRequest("GET", "/api/v1/calibrations/presets", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "presets list", w.Body.String())
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	calibration := NewDomainGroup("calibration", "/calibrations")
	calibration.GET("/presets", func(c *gin.Context) {
		c.String(http.StatusOK, "presets")
	})

	auth := NewDomainGroup("auth", "/auth")
	auth.POST("/login", func(c *gin.Context) {
		c.String(http.StatusOK, "login")
	})

	r.Register(calibration).Register(auth).Setup()

	req1 := httptest.NewRequest("GET", "/api/v1/calibrations/presets", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "presets", w1.Body.String())

	req2 := httptest.NewRequest("POST", "/api/v1/auth/login", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "login", w2.Body.String())
}

func TestChainedMethodCalls(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	g := NewDomainGroup("revision", "/revisions")
	g.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "get") }).
		POST("", func(c *gin.Context) { c.String(http.StatusOK, "create") }).
		POST("/:id/transition", func(c *gin.Context) { c.String(http.StatusOK, "transition") })

	r.Register(g).Setup()

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/revisions/42"},
		{"POST", "/api/v1/revisions"},
		{"POST", "/api/v1/revisions/42/transition"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "route %s %s should be registered", tt.method, tt.path)
	}
}
