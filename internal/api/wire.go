package api

import (
	"github.com/chixitown/site/internal/adapters"
	"github.com/chixitown/site/internal/analytics"
	"github.com/chixitown/site/internal/config"
	"github.com/chixitown/site/internal/content"
	"github.com/chixitown/site/internal/monitoring"
	"github.com/chixitown/site/internal/security"
)

// NewDependencies wires the production collaborators from cfg. The content
// store is created empty; callers decide when to load it. Static is left unset.
// Unset origin and proxy lists fall back to DefaultSecurityConfig.
func NewDependencies(cfg *config.Config, site config.Site, logger *monitoring.Logger) Dependencies {
	metrics := monitoring.NewMetrics()
	adapter := adapters.NewVercelAdapter(cfg.VercelAPIBaseURL, cfg.UpstreamTimeout,
		adapters.WithMonitoring(metrics, logger))

	sec := security.DefaultSecurityConfig()
	if len(cfg.AllowedOrigins) > 0 {
		sec.AllowedOrigins = cfg.AllowedOrigins
	}
	if len(cfg.TrustedProxies) > 0 {
		sec.TrustedProxies = cfg.TrustedProxies
	}
	sec.EnableHSTS = cfg.EnableHSTS

	return Dependencies{
		Service:  analytics.NewService(adapter),
		Env:      analytics.EnvFromOS,
		Store:    content.NewStore(cfg.ContentDir, site.Collections, content.WithMonitoring(metrics, logger)),
		Site:     site,
		Metrics:  metrics,
		Logger:   logger,
		Security: sec,
	}
}
