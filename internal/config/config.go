package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the service configuration read from the environment
type Config struct {
	// HTTP server
	Port    int    `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"release"`

	// Content and static assets
	ContentDir   string `envconfig:"CONTENT_DIR" default:"./src/content"`
	StaticDir    string `envconfig:"STATIC_DIR" default:"./public"`
	SiteConfig   string `envconfig:"SITE_CONFIG" default:"./site.yaml"`
	WatchContent bool   `envconfig:"WATCH_CONTENT" default:"false"`

	// Upstream analytics API
	VercelAPIBaseURL string        `envconfig:"VERCEL_API_BASE_URL" default:"https://api.vercel.com"`
	UpstreamTimeout  time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"5s"`

	// Observability
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Security
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
	EnableHSTS     bool     `envconfig:"ENABLE_HSTS" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", c.UpstreamTimeout)
	}
	u, err := url.Parse(c.VercelAPIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("VERCEL_API_BASE_URL must be an absolute URL, got %q", c.VercelAPIBaseURL)
	}
	if c.ContentDir == "" {
		return fmt.Errorf("CONTENT_DIR is required")
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
