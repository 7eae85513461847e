// Package handler is the serverless entry point for /api/va-summary.
package handler

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/chixitown/site/internal/api"
	"github.com/chixitown/site/internal/config"
	"github.com/chixitown/site/internal/monitoring"
	"github.com/gin-gonic/gin"
)

var engine http.Handler = newEngine()

func newEngine() http.Handler {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Invalid configuration, using defaults", "error", err)
		cfg = &config.Config{GinMode: gin.ReleaseMode, UpstreamTimeout: 5 * time.Second}
	}
	gin.SetMode(cfg.GinMode)

	logger := monitoring.NewLoggerTo(os.Stdout, monitoring.ParseLevel(cfg.LogLevel))
	deps := api.NewDependencies(cfg, config.DefaultSite(), logger)
	deps.Store = nil

	return api.NewRouter(deps)
}

// Handler serves a single request
func Handler(w http.ResponseWriter, r *http.Request) {
	engine.ServeHTTP(w, r)
}
