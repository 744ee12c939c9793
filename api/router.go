// Package api assembles the HTTP surface: middleware, versioned routes,
// metrics and media serving.
package api

import (
	"net/http"
	"slices"
	"strings"

	v1 "github.com/alisoliman/recipe-app-api/api/v1"
	"github.com/alisoliman/recipe-app-api/config"
	"github.com/alisoliman/recipe-app-api/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// NewRouter builds the gin engine. media is served under cfg.MediaURL when
// it is non-nil and the URL is a local path.
func NewRouter(cfg *config.Config, deps v1.Dependencies, media http.FileSystem) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Metrics(),
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		cors.New(corsConfig(cfg.CORSOrigins)),
	)

	// System endpoints (no rate limiting)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if media != nil && strings.HasPrefix(cfg.MediaURL, "/") {
		router.StaticFS(strings.TrimSuffix(cfg.MediaURL, "/"), media)
	}

	apiV1 := router.Group("/api/v1")
	if cfg.RateLimit > 0 {
		apiV1.Use(middleware.RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)))
	}
	v1.RegisterRoutes(apiV1, deps)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id"},
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
