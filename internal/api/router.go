package api

import (
	"io/fs"

	"github.com/chixitown/site/internal/analytics"
	"github.com/chixitown/site/internal/config"
	"github.com/chixitown/site/internal/content"
	apperrors "github.com/chixitown/site/internal/errors"
	"github.com/chixitown/site/internal/frontend"
	"github.com/chixitown/site/internal/middleware"
	"github.com/chixitown/site/internal/monitoring"
	"github.com/chixitown/site/internal/security"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the collaborators the router wires together. Store and
// Static are optional; without them the feed and static routes are not mounted.
type Dependencies struct {
	Service  *analytics.Service
	Env      func() (analytics.Env, error)
	Store    *content.Store
	Site     config.Site
	Static   fs.FS
	Metrics  *monitoring.Metrics
	Logger   *monitoring.Logger
	Security security.SecurityConfig
}

// NewRouter builds the gin engine with middleware and all routes
func NewRouter(deps Dependencies) *gin.Engine {
	h := NewHandlers(deps)

	r := gin.New()
	if len(deps.Security.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(deps.Security.TrustedProxies); err != nil {
			deps.Logger.Warn("Invalid trusted proxies", "error", err)
		}
	}

	r.Use(monitoring.RequestIDMiddleware())
	r.Use(monitoring.MonitoringMiddleware(deps.Metrics, deps.Logger))
	r.Use(apperrors.RecoveryHandler())
	r.Use(security.SecurityHeadersMiddleware(deps.Security))
	r.Use(middleware.Compression(middleware.DefaultCompressionConfig()))

	api := r.Group("/api", security.CORS(deps.Security))
	api.Any("/va-summary", h.Summary)

	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)
	r.GET("/metrics/prometheus", gin.WrapH(deps.Metrics.PrometheusHandler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.Store != nil {
		r.GET("/rss.xml", h.RSS)
		r.GET("/atom.xml", h.Atom)
		r.GET("/:collection/atom.xml", h.CollectionAtom)
	}

	if deps.Static != nil {
		r.NoRoute(frontend.NewStaticHandler(deps.Static))
	} else {
		r.NoRoute(h.NotFound)
	}

	return r
}
