package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bravemath-backend/internal/proxy"
	"bravemath-backend/internal/search"
	"bravemath-backend/internal/shared/config"
	"bravemath-backend/internal/shared/metrics"
	"bravemath-backend/internal/shared/server/middleware"
	"bravemath-backend/internal/shared/server/respond"
)

// RouterDeps carries everything the router wires together.
type RouterDeps struct {
	Config  config.Config
	Search  *search.Handler
	Proxy   *proxy.Handler
	Limiter *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
// Proxied file routes sit behind the rate limiter; catalog reads do not.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(),
		metrics.Middleware(),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.Search.RegisterRoutes(api)

	limited := r.Group("/", middleware.RateLimit(middleware.RateLimitConfig{
		Limiter:  deps.Limiter,
		IPHeader: deps.Config.ClientIPHeader,
	}))
	deps.Proxy.RegisterRoutes(limited)

	// Unrouted paths answer with the proxy capability document.
	r.NoRoute(deps.Proxy.Capabilities)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
